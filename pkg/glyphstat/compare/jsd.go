package compare

import (
	"fmt"
	"math"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// RecommendedEpsilon returns the suggested smoothing constant for a shared
// vocabulary of the given size: 1/(100·|V|). Smaller values sharpen the
// penalty for vocabulary that only one corpus uses; larger values wash it
// out. The constant materially affects scores for near-disjoint
// vocabularies, which is why epsilon is a required parameter everywhere
// rather than a hidden default.
func RecommendedEpsilon(vocabSize int) float64 {
	if vocabSize <= 0 {
		return 0
	}
	return 1.0 / (100.0 * float64(vocabSize))
}

// ToProbabilityVector projects a frequency distribution onto the shared
// vocabulary: count/total for tokens the corpus contains, epsilon for
// tokens it lacks, renormalized so the vector sums to 1. The vector's
// length always equals the vocabulary size.
func ToProbabilityVector(d *freq.Distribution, vocab Vocabulary, epsilon float64) ([]float64, error) {
	if epsilon <= 0 {
		return nil, fmt.Errorf("probability vector: epsilon must be strictly positive, got %g: %w",
			epsilon, internalerr.ErrInvalidInput)
	}
	if d == nil || d.Total() == 0 {
		return nil, fmt.Errorf("probability vector: %w", internalerr.ErrDegenerateDistribution)
	}
	if vocab.Size() == 0 {
		return nil, fmt.Errorf("probability vector: empty shared vocabulary: %w",
			internalerr.ErrVocabularyMismatch)
	}

	vec := make([]float64, vocab.Size())
	var sum float64
	for i, tok := range vocab.tokens {
		p := d.Probability(tok)
		if p == 0 {
			p = epsilon
		}
		vec[i] = p
		sum += p
	}
	for i := range vec {
		vec[i] /= sum
	}
	return vec, nil
}

// JensenShannonDivergence computes the symmetric divergence
//
//	JSD(P,Q) = ½·KL(P‖M) + ½·KL(Q‖M), M = ½(P+Q)
//
// using log base 2, which bounds the result to [0,1]. Both vectors must be
// indexed by the same vocabulary; a length mismatch means they were built
// against different index spaces. Identical vectors score exactly 0 and
// the result is symmetric in its arguments.
func JensenShannonDivergence(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, fmt.Errorf("jensen-shannon divergence: vector lengths %d and %d: %w",
			len(p), len(q), internalerr.ErrVocabularyMismatch)
	}
	if len(p) == 0 {
		return 0, fmt.Errorf("jensen-shannon divergence: %w", internalerr.ErrDegenerateDistribution)
	}

	var div float64
	for i := range p {
		m := 0.5 * (p[i] + q[i])
		if p[i] > 0 && m > 0 {
			div += 0.5 * p[i] * math.Log2(p[i]/m)
		}
		if q[i] > 0 && m > 0 {
			div += 0.5 * q[i] * math.Log2(q[i]/m)
		}
	}

	// Rounding can push the sum a hair outside the theoretical bounds.
	if div < 0 {
		div = 0
	}
	if div > 1 {
		div = 1
	}
	return div, nil
}

// Result is the audit trail of one corpus comparison. The token counts and
// vocabulary size explain how much evidence the divergence score rests on.
type Result struct {
	Divergence       float64 `json:"divergence_score"`
	SharedVocabulary int     `json:"shared_vocabulary_size"`
	CorpusATokens    int64   `json:"corpus_a_token_count"`
	CorpusBTokens    int64   `json:"corpus_b_token_count"`
}

// CompareCorpora builds both frequency distributions, projects them onto
// their shared vocabulary with the given epsilon and returns the
// divergence score. Because both corpora are normalized to probabilities
// first, the score is invariant to absolute corpus size; and because
// smoothing keeps every probability positive, two corpora with disjoint
// vocabularies are scored by the shapes of their frequency curves rather
// than pinned to the maximum.
func CompareCorpora(corpusA, corpusB []string, epsilon float64) (Result, error) {
	da, err := freq.UnigramCountsFromTokens(corpusA)
	if err != nil {
		return Result{}, fmt.Errorf("corpus a: %w", err)
	}
	db, err := freq.UnigramCountsFromTokens(corpusB)
	if err != nil {
		return Result{}, fmt.Errorf("corpus b: %w", err)
	}

	vocab := BuildVocabulary(da, db)
	pa, err := ToProbabilityVector(da, vocab, epsilon)
	if err != nil {
		return Result{}, fmt.Errorf("corpus a: %w", err)
	}
	pb, err := ToProbabilityVector(db, vocab, epsilon)
	if err != nil {
		return Result{}, fmt.Errorf("corpus b: %w", err)
	}

	div, err := JensenShannonDivergence(pa, pb)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Divergence:       div,
		SharedVocabulary: vocab.Size(),
		CorpusATokens:    da.Total(),
		CorpusBTokens:    db.Total(),
	}, nil
}
