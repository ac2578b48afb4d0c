// Package memstore is an in-memory store.Store used in tests and when no
// database path is configured.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu          sync.RWMutex
	runs        map[string]store.Run
	metrics     map[string]map[string]float64
	comparisons map[string][]store.Comparison
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:        make(map[string]store.Run),
		metrics:     make(map[string]map[string]float64),
		comparisons: make(map[string][]store.Comparison),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run record.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: missing id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns returns runs, most recent id first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, copyRun(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveMetrics stores named metric values for a run.
func (s *Store) SaveMetrics(ctx context.Context, runID string, metrics map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	if s.metrics[runID] == nil {
		s.metrics[runID] = make(map[string]float64, len(metrics))
	}
	for k, v := range metrics {
		s.metrics[runID][k] = v
	}
	return nil
}

// GetMetrics returns all metrics recorded for a run.
func (s *Store) GetMetrics(ctx context.Context, runID string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	out := make(map[string]float64, len(s.metrics[runID]))
	for k, v := range s.metrics[runID] {
		out[k] = v
	}
	return out, nil
}

// SaveComparison appends a comparison row to a run.
func (s *Store) SaveComparison(ctx context.Context, runID string, c store.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	s.comparisons[runID] = append(s.comparisons[runID], c)
	return nil
}

// ListComparisons returns comparison rows in insertion order.
func (s *Store) ListComparisons(ctx context.Context, runID string) ([]store.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	out := make([]store.Comparison, len(s.comparisons[runID]))
	copy(out, s.comparisons[runID])
	return out, nil
}

func copyRun(r store.Run) store.Run {
	out := r
	if r.Params != nil {
		out.Params = make(map[string]string, len(r.Params))
		for k, v := range r.Params {
			out.Params[k] = v
		}
	}
	return out
}
