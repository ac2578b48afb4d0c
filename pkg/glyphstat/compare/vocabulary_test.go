package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
)

func TestBuildVocabularySortedUnion(t *testing.T) {
	da, err := freq.UnigramCountsFromTokens([]string{"zot", "chedy", "zot"})
	require.NoError(t, err)
	db, err := freq.UnigramCountsFromTokens([]string{"daiin", "chedy"})
	require.NoError(t, err)

	vocab := BuildVocabulary(da, db)
	require.Equal(t, []string{"chedy", "daiin", "zot"}, vocab.Tokens())
	require.Equal(t, 3, vocab.Size())

	i, ok := vocab.Index("daiin")
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = vocab.Index("absent")
	require.False(t, ok)
}

func TestBuildVocabularyNilDistribution(t *testing.T) {
	d, err := freq.UnigramCountsFromTokens([]string{"a"})
	require.NoError(t, err)

	vocab := BuildVocabulary(nil, d)
	require.Equal(t, []string{"a"}, vocab.Tokens())
}

func TestVocabularyTokensCopy(t *testing.T) {
	d, err := freq.UnigramCountsFromTokens([]string{"a", "b"})
	require.NoError(t, err)
	vocab := BuildVocabulary(d)

	tokens := vocab.Tokens()
	tokens[0] = "mutated"
	require.Equal(t, []string{"a", "b"}, vocab.Tokens())
}
