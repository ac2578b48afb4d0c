// Package glyphstat is the analysis facade: it composes the frequency,
// comparison and segmentation packages into whole-corpus reports that the
// CLI serializes as JSON.
package glyphstat

import (
	"fmt"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/compare"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// Report is the descriptive-statistics summary of one corpus.
type Report struct {
	Lines          int                `json:"lines"`
	Tokens         int64              `json:"tokens"`
	DistinctTokens int                `json:"distinct_tokens"`
	Entropy        float64            `json:"unigram_entropy"`
	ZipfSlope      float64            `json:"zipf_slope"`
	HapaxRatio     float64            `json:"hapax_ratio"`
	TopUnigrams    []freq.TokenCount  `json:"top_unigrams"`
	TopBigrams     []freq.TokenCount  `json:"top_bigrams"`
	TopTrigrams    []freq.TokenCount  `json:"top_trigrams"`
	Collocations   []freq.Collocation `json:"top_collocations"`
}

// Analyze computes the full report over token records. Every underlying
// statistic validates its own preconditions; the first failure aborts the
// report.
func Analyze(records []token.Record, topK int) (Report, error) {
	uni, err := freq.UnigramCounts(records)
	if err != nil {
		return Report{}, err
	}
	bi, err := freq.NgramCounts(records, 2)
	if err != nil {
		return Report{}, err
	}
	tri, err := freq.NgramCounts(records, 3)
	if err != nil {
		return Report{}, err
	}

	entropy, err := freq.ShannonEntropy(uni)
	if err != nil {
		return Report{}, err
	}
	slope, err := freq.ZipfSlope(uni)
	if err != nil {
		return Report{}, err
	}
	hapax, err := freq.HapaxRatio(uni)
	if err != nil {
		return Report{}, err
	}
	collocs, err := freq.Collocations(records, topK)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Lines:          countLines(records),
		Tokens:         uni.Total(),
		DistinctTokens: uni.Distinct(),
		Entropy:        entropy,
		ZipfSlope:      slope,
		HapaxRatio:     hapax,
		TopUnigrams:    uni.Top(topK),
		TopBigrams:     bi.Top(topK),
		TopTrigrams:    tri.Top(topK),
		Collocations:   collocs,
	}, nil
}

func countLines(records []token.Record) int {
	type lineKey struct {
		folio string
		line  int
	}
	seen := make(map[lineKey]struct{})
	for _, rec := range records {
		seen[lineKey{rec.Folio, rec.Line}] = struct{}{}
	}
	return len(seen)
}

// CompareAgainst scores the corpus against one reference token sequence.
// A zero epsilon selects the recommended value for the shared vocabulary,
// computed from a throwaway union of both corpora.
func CompareAgainst(corpus []token.Record, reference []string, epsilon float64) (compare.Result, error) {
	corpusTokens := token.Texts(corpus)
	if epsilon == 0 {
		da, err := freq.UnigramCountsFromTokens(corpusTokens)
		if err != nil {
			return compare.Result{}, fmt.Errorf("corpus: %w", err)
		}
		db, err := freq.UnigramCountsFromTokens(reference)
		if err != nil {
			return compare.Result{}, fmt.Errorf("reference: %w", err)
		}
		epsilon = compare.RecommendedEpsilon(compare.BuildVocabulary(da, db).Size())
	}
	return compare.CompareCorpora(corpusTokens, reference, epsilon)
}
