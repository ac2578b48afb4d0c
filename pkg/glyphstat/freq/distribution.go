package freq

import "sort"

// Distribution maps tokens to occurrence counts. It remembers the order in
// which tokens were first observed so that rank-based statistics can break
// frequency ties deterministically instead of leaning on map iteration.
type Distribution struct {
	counts map[string]int64
	first  map[string]int
	order  []string
	total  int64
}

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{
		counts: make(map[string]int64),
		first:  make(map[string]int),
	}
}

// Add records one occurrence of a token.
func (d *Distribution) Add(tok string) {
	if tok == "" {
		return
	}
	if _, ok := d.counts[tok]; !ok {
		d.first[tok] = len(d.order)
		d.order = append(d.order, tok)
	}
	d.counts[tok]++
	d.total++
}

// Count returns the occurrence count for a token, 0 if absent.
func (d *Distribution) Count(tok string) int64 {
	return d.counts[tok]
}

// Total returns the number of observed token occurrences.
func (d *Distribution) Total() int64 {
	return d.total
}

// Distinct returns the number of distinct tokens.
func (d *Distribution) Distinct() int {
	return len(d.counts)
}

// Tokens returns the distinct tokens in first-occurrence order.
func (d *Distribution) Tokens() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Probability returns count/total for a token, 0 if absent.
func (d *Distribution) Probability(tok string) float64 {
	if d.total == 0 {
		return 0
	}
	return float64(d.counts[tok]) / float64(d.total)
}

// TokenCount is one entry of a ranked frequency table.
type TokenCount struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// Ranked returns tokens by descending count. Ties are broken by
// first-occurrence order, which makes the ranking stable across runs.
func (d *Distribution) Ranked() []TokenCount {
	out := make([]TokenCount, 0, len(d.order))
	for _, tok := range d.order {
		out = append(out, TokenCount{Token: tok, Count: d.counts[tok]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the k highest-ranked entries, fewer if the vocabulary is
// smaller.
func (d *Distribution) Top(k int) []TokenCount {
	ranked := d.Ranked()
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
