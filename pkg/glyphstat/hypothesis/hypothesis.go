// Package hypothesis generates lightweight, rule-based conjectures about
// token families: shared affixes and recurring internal substrings that
// may indicate morphemes. It calls no external services and makes no
// claim beyond what the counts support.
package hypothesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// Affix is a shared prefix or suffix with its support count.
type Affix struct {
	Affix string `json:"affix"`
	Count int    `json:"count"`
}

// Evidence collects the observations a hypothesis rests on.
type Evidence struct {
	Prefix     *Affix   `json:"prefix,omitempty"`
	Suffix     *Affix   `json:"suffix,omitempty"`
	Substrings []string `json:"substrings,omitempty"`
}

// Hypothesis is one conjecture about a token family, with suggested
// follow-up checks and standing caveats.
type Hypothesis struct {
	Family    string   `json:"family"`
	Size      int      `json:"size"`
	Statement string   `json:"hypothesis"`
	Evidence  Evidence `json:"evidence"`
	Checks    []string `json:"suggested_checks"`
	Caveats   []string `json:"caveats"`
}

const (
	minAffixLen   = 2
	maxAffixLen   = 6
	minSubstrLen  = 3
	maxSubstrLen  = 5
	maxSubstrings = 6
)

// Generate builds a hypothesis for a named token family. Affixes need
// support in at least max(2, 25%) of the family, substrings in at least
// max(2, 20%).
func Generate(family string, tokens []string) (Hypothesis, error) {
	if len(tokens) == 0 {
		return Hypothesis{}, fmt.Errorf("hypothesis %q: %w", family, internalerr.ErrEmptyCorpus)
	}

	size := len(tokens)
	affixMin := max(2, size/4)
	substrMin := max(2, size/5)

	prefix, suffix := bestAffixes(tokens, affixMin)
	substrings := commonSubstrings(tokens, substrMin)

	var parts []string
	evidence := Evidence{}
	if suffix != nil {
		parts = append(parts, fmt.Sprintf(
			"Many tokens share the suffix %q (count=%d), suggesting a possible inflectional ending.",
			suffix.Affix, suffix.Count))
		evidence.Suffix = suffix
	}
	if prefix != nil {
		parts = append(parts, fmt.Sprintf(
			"Many tokens share the prefix %q (count=%d), suggesting a possible common root.",
			prefix.Affix, prefix.Count))
		evidence.Prefix = prefix
	}
	if len(substrings) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Frequent internal substrings appear (%s); these may be recurring morphemes or ligature clusters.",
			strings.Join(substrings, ", ")))
		evidence.Substrings = substrings
	}
	if len(parts) == 0 {
		parts = append(parts,
			"No strong common prefix or suffix detected; tokens may be orthographic variants or belong to different morphological classes.")
	}

	return Hypothesis{
		Family:    family,
		Size:      size,
		Statement: strings.Join(parts, " "),
		Evidence:  evidence,
		Checks:    buildChecks(evidence),
		Caveats: []string{
			"Shared spelling can dominate any distributional signal.",
			"Tokenization choices and transcription artifacts may create or split apparent families.",
		},
	}, nil
}

func buildChecks(ev Evidence) []string {
	var checks []string
	if ev.Suffix != nil {
		checks = append(checks, fmt.Sprintf(
			"Compute the proportion of corpus occurrences ending in %q and compare line-final vs line-initial frequencies.",
			ev.Suffix.Affix))
	}
	if ev.Prefix != nil {
		checks = append(checks, fmt.Sprintf(
			"Check co-occurrence of prefix %q with other token classes across folios.",
			ev.Prefix.Affix))
	}
	if len(ev.Substrings) > 0 {
		checks = append(checks,
			"Inspect left/right neighbors of the substrings to test whether they behave like independent morphemes.")
	}
	checks = append(checks,
		"Compare the family's frequencies and contexts against a control corpus.")
	return checks
}

// bestAffixes finds the most supported prefix and suffix across the family.
// Ties resolve to the longer affix, then lexicographically, so the result
// never depends on map iteration order.
func bestAffixes(tokens []string, minCount int) (prefix, suffix *Affix) {
	pre := make(map[string]int)
	suf := make(map[string]int)
	for _, tok := range tokens {
		limit := min(maxAffixLen, len(tok))
		for l := minAffixLen; l <= limit; l++ {
			pre[tok[:l]]++
			suf[tok[len(tok)-l:]]++
		}
	}
	return pickAffix(pre, minCount), pickAffix(suf, minCount)
}

func pickAffix(counts map[string]int, minCount int) *Affix {
	var best *Affix
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := counts[k]
		if c < minCount {
			continue
		}
		if best == nil || c > best.Count || (c == best.Count && len(k) > len(best.Affix)) {
			best = &Affix{Affix: k, Count: c}
		}
	}
	return best
}

// commonSubstrings returns up to maxSubstrings internal substrings with
// enough support, most frequent first.
func commonSubstrings(tokens []string, minCount int) []string {
	counts := make(map[string]int)
	for _, tok := range tokens {
		for l := minSubstrLen; l <= maxSubstrLen; l++ {
			if len(tok) < l {
				continue
			}
			for i := 0; i+l <= len(tok); i++ {
				counts[tok[i:i+l]]++
			}
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		if counts[k] >= minCount {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxSubstrings {
		keys = keys[:maxSubstrings]
	}
	return keys
}
