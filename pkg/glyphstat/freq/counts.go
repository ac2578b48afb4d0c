package freq

import (
	"fmt"
	"strings"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// NgramSeparator joins the tokens of an n-gram window into a single key.
const NgramSeparator = " "

// UnigramCounts counts token occurrences across the given records.
func UnigramCounts(records []token.Record) (*Distribution, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("unigram counts: %w", internalerr.ErrEmptyCorpus)
	}
	d := NewDistribution()
	for _, rec := range records {
		d.Add(rec.Text)
	}
	return d, nil
}

// UnigramCountsFromTokens counts occurrences over bare token strings.
func UnigramCountsFromTokens(tokens []string) (*Distribution, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("unigram counts: %w", internalerr.ErrEmptyCorpus)
	}
	d := NewDistribution()
	for _, tok := range tokens {
		d.Add(tok)
	}
	return d, nil
}

// NgramCounts counts contiguous n-token windows, joined by NgramSeparator.
// A window never spans two different folio or line identifiers: counting
// across line breaks manufactures n-grams that were never written, so the
// boundary check is part of the contract, not an optimization.
func NgramCounts(records []token.Record, n int) (*Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ngram counts: n must be positive, got %d: %w", n, internalerr.ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ngram counts: %w", internalerr.ErrEmptyCorpus)
	}

	d := NewDistribution()
	for i := 0; i+n <= len(records); i++ {
		window := records[i : i+n]
		if crossesBoundary(window) {
			continue
		}
		parts := make([]string, n)
		for j, rec := range window {
			parts[j] = rec.Text
		}
		d.Add(strings.Join(parts, NgramSeparator))
	}
	return d, nil
}

func crossesBoundary(window []token.Record) bool {
	for i := 1; i < len(window); i++ {
		if window[i].Folio != window[0].Folio || window[i].Line != window[0].Line {
			return true
		}
	}
	return false
}
