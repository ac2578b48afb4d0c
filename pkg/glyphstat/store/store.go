// Package store persists analysis runs so that repeated executions over
// the same corpus stay auditable: which input, which parameters, which
// scores. The core statistics never touch the store; only the CLI layer
// writes to it.
package store

import (
	"context"
	"time"
)

// Store is the interface for persisting and querying analysis runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	SaveMetrics(ctx context.Context, runID string, metrics map[string]float64) error
	GetMetrics(ctx context.Context, runID string) (map[string]float64, error)

	SaveComparison(ctx context.Context, runID string, c Comparison) error
	ListComparisons(ctx context.Context, runID string) ([]Comparison, error)
}

// Run records one pipeline invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Command   string
	Input     string
	Params    map[string]string
}

// Comparison is one corpus-versus-reference divergence row.
type Comparison struct {
	Reference        string
	Divergence       float64
	SharedVocabulary int
	CorpusTokens     int64
	ReferenceTokens  int64
}
