package freq

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// Collocation is an adjacent token pair scored by pointwise mutual
// information against the unigram frequencies.
type Collocation struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Count int64   `json:"count"`
	PMI   float64 `json:"pmi"`
}

// collocSmoothing keeps PMI finite for pairs whose members are rare.
const collocSmoothing = 1.0

// Collocations ranks adjacent token pairs by PMI:
//
//	PMI(a,b) = log((c_ab + ε) * N / ((c_a + ε)(c_b + ε)))
//
// where c_ab is the bigram count, c_a and c_b the unigram counts, N the
// total token count and ε a smoothing constant. Bigrams are formed with
// the same line/folio boundary rule as NgramCounts. Ordering is
// deterministic: PMI descending, then count descending, then pair text.
func Collocations(records []token.Record, limit int) ([]Collocation, error) {
	uni, err := UnigramCounts(records)
	if err != nil {
		return nil, err
	}
	bi, err := NgramCounts(records, 2)
	if err != nil {
		return nil, err
	}
	if bi.Total() == 0 {
		return nil, fmt.Errorf("collocations: no adjacent pairs within line boundaries: %w",
			internalerr.ErrInsufficientData)
	}

	n := float64(uni.Total())
	out := make([]Collocation, 0, bi.Distinct())
	for _, tc := range bi.Ranked() {
		parts := strings.SplitN(tc.Token, NgramSeparator, 2)
		a, b := parts[0], parts[1]
		num := (float64(tc.Count) + collocSmoothing) * n
		den := (float64(uni.Count(a)) + collocSmoothing) * (float64(uni.Count(b)) + collocSmoothing)
		out = append(out, Collocation{
			A:     a,
			B:     b,
			Count: tc.Count,
			PMI:   math.Log(num / den),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PMI != out[j].PMI {
			return out[i].PMI > out[j].PMI
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
