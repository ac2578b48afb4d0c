package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrEmptyCorpus is returned when a statistic receives zero input records.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDegenerateDistribution is returned when a statistic is mathematically
	// undefined for the given distribution, e.g. entropy of an empty set.
	ErrDegenerateDistribution = errors.New("degenerate distribution")

	// ErrInsufficientData is returned when an input has fewer distinct values
	// than the statistic requires, e.g. a Zipf fit over one token.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrVocabularyMismatch is returned when two probability vectors are
	// compared without a shared index space.
	ErrVocabularyMismatch = errors.New("vocabulary mismatch")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
