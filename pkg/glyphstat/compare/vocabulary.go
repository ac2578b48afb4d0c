package compare

import (
	"sort"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
)

// Vocabulary is the shared index space two corpora are projected onto
// before they can be compared. It is built once from the union of the
// corpora's tokens, sorted so every token has a fixed index, and passed
// explicitly to every vector construction. Vocabularies are immutable
// after construction.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// BuildVocabulary returns the sorted union of the given distributions'
// vocabularies.
func BuildVocabulary(dists ...*freq.Distribution) Vocabulary {
	seen := make(map[string]struct{})
	var tokens []string
	for _, d := range dists {
		if d == nil {
			continue
		}
		for _, tok := range d.Tokens() {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)

	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		index[tok] = i
	}
	return Vocabulary{tokens: tokens, index: index}
}

// Size returns the number of tokens in the vocabulary.
func (v Vocabulary) Size() int {
	return len(v.tokens)
}

// Tokens returns the vocabulary in index order.
func (v Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Index returns the fixed index of a token.
func (v Vocabulary) Index(tok string) (int, bool) {
	i, ok := v.index[tok]
	return i, ok
}
