package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

func newStatsCmd() *cobra.Command {
	var (
		output string
		topK   int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "stats <tokens.jsonl>",
		Short: "Compute corpus statistics: entropy, Zipf slope, hapax ratio, n-grams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := token.ReadJSONL(args[0])
			if err != nil {
				return err
			}

			report, err := glyphstat.Analyze(records, topK)
			if err != nil {
				return err
			}

			params := map[string]string{"top_k": strconv.Itoa(topK)}
			return recordRun(cmd.Context(), dbPath, "stats", args[0], params,
				func(ctx context.Context, st store.Store, runID string) error {
					if st != nil {
						metrics := map[string]float64{
							"lines":           float64(report.Lines),
							"tokens":          float64(report.Tokens),
							"distinct_tokens": float64(report.DistinctTokens),
							"unigram_entropy": report.Entropy,
							"zipf_slope":      report.ZipfSlope,
							"hapax_ratio":     report.HapaxRatio,
						}
						if err := st.SaveMetrics(ctx, runID, metrics); err != nil {
							return err
						}
					}
					return writeJSON(output, report)
				})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output JSON path (- for stdout)")
	cmd.Flags().IntVar(&topK, "top", 20, "how many top entries to include per table")
	cmd.Flags().StringVar(&dbPath, "db", "", "optional SQLite run database")
	return cmd
}
