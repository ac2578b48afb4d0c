package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store/sqlite"
)

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// recordRun opens the run database when a path is set, registers a new
// run and hands it to fn. A missing --db path means no persistence; the
// command still runs.
func recordRun(ctx context.Context, dbPath, command, input string, params map[string]string,
	fn func(ctx context.Context, st store.Store, runID string) error) error {

	if dbPath == "" {
		return fn(ctx, nil, "")
	}

	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open run database %s: %w", dbPath, err)
	}
	defer st.Close()

	runID := store.NewRunID()
	if err := st.SaveRun(ctx, store.Run{
		ID:        runID,
		StartedAt: time.Now().UTC(),
		Command:   command,
		Input:     input,
		Params:    params,
	}); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return fn(ctx, st, runID)
}
