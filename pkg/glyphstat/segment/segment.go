// Package segment detects structural discontinuities across an ordered
// partition of a corpus, typically one segment per manuscript folio.
// All operations are pure batch transforms: the caller supplies segments
// in their true manuscript order and gets order-preserving results back.
package segment

import (
	"fmt"
	"sort"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/compare"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// Segment is one ordinal unit of the corpus with its tokens in reading
// order.
type Segment struct {
	Folio  string   `json:"folio"`
	Tokens []string `json:"-"`
}

// ByFolio partitions token records by folio, ordered by manuscript folio
// order. It is a convenience for the common case; callers with their own
// ordering can build segments directly.
func ByFolio(records []token.Record) []Segment {
	grouped := make(map[string][]string)
	var folios []string
	for _, rec := range records {
		if _, ok := grouped[rec.Folio]; !ok {
			folios = append(folios, rec.Folio)
		}
		grouped[rec.Folio] = append(grouped[rec.Folio], rec.Text)
	}
	sort.SliceStable(folios, func(i, j int) bool {
		return token.Less(folios[i], folios[j])
	})

	segments := make([]Segment, len(folios))
	for i, f := range folios {
		segments[i] = Segment{Folio: f, Tokens: grouped[f]}
	}
	return segments
}

// Stats summarizes one segment.
type Stats struct {
	Folio          string            `json:"folio"`
	TokenCount     int               `json:"token_count"`
	UniqueTokens   int               `json:"unique_tokens"`
	TypeTokenRatio float64           `json:"type_token_ratio"`
	TopTokens      []freq.TokenCount `json:"top_tokens"`
}

// Statistics computes per-segment summaries in input order, one Stats per
// segment. topK bounds the frequency table carried on each record.
func Statistics(segments []Segment, topK int) ([]Stats, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("segment statistics: %w", internalerr.ErrEmptyCorpus)
	}

	out := make([]Stats, len(segments))
	for i, seg := range segments {
		d, err := freq.UnigramCountsFromTokens(seg.Tokens)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", seg.Folio, err)
		}
		out[i] = Stats{
			Folio:          seg.Folio,
			TokenCount:     int(d.Total()),
			UniqueTokens:   d.Distinct(),
			TypeTokenRatio: float64(d.Distinct()) / float64(d.Total()),
			TopTokens:      d.Top(topK),
		}
	}
	return out, nil
}

// Shift measures the discontinuity across one boundary between adjacent
// segments: divergence of the frequency shapes plus raw vocabulary
// overlap.
type Shift struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Divergence float64 `json:"divergence_score"`
	Jaccard    float64 `json:"jaccard_similarity"`
}

// AdjacentShifts scores every consecutive segment pair in the given
// order. The result has exactly len(segments)-1 entries.
func AdjacentShifts(segments []Segment, epsilon float64) ([]Shift, error) {
	if len(segments) < 2 {
		return nil, fmt.Errorf("adjacent shifts: need at least 2 segments, got %d: %w",
			len(segments), internalerr.ErrInsufficientData)
	}

	shifts := make([]Shift, 0, len(segments)-1)
	for i := 0; i+1 < len(segments); i++ {
		a, b := segments[i], segments[i+1]
		res, err := compare.CompareCorpora(a.Tokens, b.Tokens, epsilon)
		if err != nil {
			return nil, fmt.Errorf("boundary %q/%q: %w", a.Folio, b.Folio, err)
		}
		shifts = append(shifts, Shift{
			From:       a.Folio,
			To:         b.Folio,
			Divergence: res.Divergence,
			Jaccard:    jaccard(a.Tokens, b.Tokens),
		})
	}
	return shifts, nil
}

// MostSignificantBoundary returns the shift with the highest divergence.
// Equal scores resolve to the earliest boundary in sequence order.
func MostSignificantBoundary(shifts []Shift) (Shift, error) {
	if len(shifts) == 0 {
		return Shift{}, fmt.Errorf("most significant boundary: %w", internalerr.ErrEmptyCorpus)
	}

	best := shifts[0]
	for _, s := range shifts[1:] {
		if s.Divergence > best.Divergence {
			best = s
		}
	}
	return best, nil
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, tok := range a {
		setA[tok] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, tok := range b {
		setB[tok] = struct{}{}
	}

	var inter int
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
