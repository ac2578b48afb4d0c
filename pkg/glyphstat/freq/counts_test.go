package freq

import (
	"errors"
	"testing"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

func recordsFromTokens(tokens []string) []token.Record {
	records := make([]token.Record, len(tokens))
	for i, tok := range tokens {
		records[i] = token.Record{Text: tok, Folio: "1r", Line: 1, Position: i + 1}
	}
	return records
}

// sampleTokens is the 14-token proof-of-concept corpus.
var sampleTokens = []string{
	"zot", "zot", "zot", "zot",
	"qokedy", "qokedy",
	"cheedy", "unclear", "ixaiin", "tokeey", "n", "end", "of", "sample",
}

func TestUnigramCountsSample(t *testing.T) {
	d, err := UnigramCounts(recordsFromTokens(sampleTokens))
	if err != nil {
		t.Fatalf("UnigramCounts: %v", err)
	}

	if d.Total() != 14 {
		t.Errorf("Total = %d, want 14", d.Total())
	}
	if d.Distinct() != 10 {
		t.Errorf("Distinct = %d, want 10", d.Distinct())
	}
	if got := d.Count("zot"); got != 4 {
		t.Errorf("Count(zot) = %d, want 4", got)
	}
	if got := d.Count("qokedy"); got != 2 {
		t.Errorf("Count(qokedy) = %d, want 2", got)
	}
	for _, tok := range []string{"cheedy", "unclear", "ixaiin", "tokeey", "n", "end", "of", "sample"} {
		if got := d.Count(tok); got != 1 {
			t.Errorf("Count(%s) = %d, want 1", tok, got)
		}
	}
}

func TestUnigramCountsSumEqualsInput(t *testing.T) {
	cases := [][]string{
		{"a"},
		{"a", "a", "a"},
		{"a", "b", "c", "b", "a"},
		sampleTokens,
	}
	for _, tokens := range cases {
		d, err := UnigramCountsFromTokens(tokens)
		if err != nil {
			t.Fatalf("UnigramCountsFromTokens(%v): %v", tokens, err)
		}
		var sum int64
		for _, tok := range d.Tokens() {
			sum += d.Count(tok)
		}
		if sum != int64(len(tokens)) {
			t.Errorf("sum of counts = %d, want %d", sum, len(tokens))
		}
	}
}

func TestUnigramCountsEmpty(t *testing.T) {
	if _, err := UnigramCounts(nil); !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := UnigramCountsFromTokens(nil); !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNgramCountsDoesNotCrossLineBoundaries(t *testing.T) {
	records := []token.Record{
		{Text: "a", Folio: "1r", Line: 1, Position: 1},
		{Text: "b", Folio: "1r", Line: 1, Position: 2},
		{Text: "c", Folio: "1r", Line: 2, Position: 1},
		{Text: "d", Folio: "1r", Line: 2, Position: 2},
	}

	d, err := NgramCounts(records, 2)
	if err != nil {
		t.Fatalf("NgramCounts: %v", err)
	}

	if got := d.Count("a b"); got != 1 {
		t.Errorf("Count(a b) = %d, want 1", got)
	}
	if got := d.Count("c d"); got != 1 {
		t.Errorf("Count(c d) = %d, want 1", got)
	}
	// "b c" spans two lines and was never written as a pair
	if got := d.Count("b c"); got != 0 {
		t.Errorf("Count(b c) = %d, want 0", got)
	}
}

func TestNgramCountsDoesNotCrossFolioBoundaries(t *testing.T) {
	records := []token.Record{
		{Text: "a", Folio: "1r", Line: 1, Position: 1},
		{Text: "b", Folio: "1v", Line: 1, Position: 1},
	}

	d, err := NgramCounts(records, 2)
	if err != nil {
		t.Fatalf("NgramCounts: %v", err)
	}
	if d.Total() != 0 {
		t.Errorf("expected no bigrams across folios, got %d", d.Total())
	}
}

func TestNgramCountsInvalidN(t *testing.T) {
	records := recordsFromTokens([]string{"a", "b"})
	if _, err := NgramCounts(records, 0); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for n=0, got %v", err)
	}
	if _, err := NgramCounts(nil, 2); !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestRankedTieBreakByFirstOccurrence(t *testing.T) {
	d, err := UnigramCountsFromTokens([]string{"late", "early", "late", "early", "first", "first"})
	if err != nil {
		t.Fatalf("UnigramCountsFromTokens: %v", err)
	}

	ranked := d.Ranked()
	want := []string{"late", "early", "first"}
	for i, tok := range want {
		if ranked[i].Token != tok {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Token, tok)
		}
	}
}
