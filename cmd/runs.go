package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store/sqlite"
)

type runJSON struct {
	ID          string             `json:"id"`
	StartedAt   time.Time          `json:"started_at"`
	Command     string             `json:"command"`
	Input       string             `json:"input,omitempty"`
	Params      map[string]string  `json:"params,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Comparisons []store.Comparison `json:"comparisons,omitempty"`
}

func newRunsCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded analysis runs with their metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := sqlite.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			out := make([]runJSON, 0, len(runs))
			for _, r := range runs {
				metrics, err := st.GetMetrics(ctx, r.ID)
				if err != nil {
					return err
				}
				comparisons, err := st.ListComparisons(ctx, r.ID)
				if err != nil {
					return err
				}
				out = append(out, runJSON{
					ID:          r.ID,
					StartedAt:   r.StartedAt,
					Command:     r.Command,
					Input:       r.Input,
					Params:      r.Params,
					Metrics:     metrics,
					Comparisons: comparisons,
				})
			}
			return writeJSON(output, out)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "runs.db", "SQLite run database")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output JSON path (- for stdout)")
	return cmd
}
