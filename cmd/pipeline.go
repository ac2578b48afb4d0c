package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/compare"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/config"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/ingest"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/segment"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

func newPipelineCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "pipeline <transcription.txt>",
		Short: "Run ingest, tokenize, stats, compare and segments in one pass",
		Long: `Runs the full analysis pipeline as configured in a YAML file: normalize
the transcription, expand it into token records, compute corpus statistics,
compare against the configured reference corpora, and analyze per-folio
shifts. All artifacts land in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir %s: %w", outDir, err)
			}

			n := ingest.NewNormalizer()
			n.StripHTML = !cfg.Normalize.KeepHTML
			n.RemoveNumbers = !cfg.Normalize.KeepNumbers
			n.RemoveUncertainty = !cfg.Normalize.KeepUncertainty

			lines, err := ingest.ReadTranscription(args[0], n)
			if err != nil {
				return err
			}
			if err := ingest.WriteLines(filepath.Join(outDir, "lines.jsonl"), lines); err != nil {
				return err
			}

			records := ingest.NewTokenizer().TokenizeLines(lines)
			if err := token.WriteJSONL(filepath.Join(outDir, "tokens.jsonl"), records); err != nil {
				return err
			}

			report, err := glyphstat.Analyze(records, cfg.TopK)
			if err != nil {
				return err
			}
			if err := writeJSON(filepath.Join(outDir, "stats.json"), report); err != nil {
				return err
			}

			var results []comparisonJSON
			tokenizer := ingest.NewTokenizer()
			for _, ref := range cfg.References {
				data, err := os.ReadFile(ref.Path)
				if err != nil {
					return fmt.Errorf("read reference %s: %w", ref.Path, err)
				}
				res, err := glyphstat.CompareAgainst(records, tokenizer.Tokenize(string(data)), cfg.Epsilon)
				if err != nil {
					return fmt.Errorf("reference %s: %w", ref.Name, err)
				}
				results = append(results, comparisonJSON{
					Reference:        ref.Name,
					Divergence:       res.Divergence,
					SharedVocabulary: res.SharedVocabulary,
					CorpusTokens:     res.CorpusATokens,
					ReferenceTokens:  res.CorpusBTokens,
				})
			}
			if len(results) > 0 {
				if err := writeJSON(filepath.Join(outDir, "comparison.json"), results); err != nil {
					return err
				}
			}

			segments := segment.ByFolio(records)
			stats, err := segment.Statistics(segments, cfg.TopK)
			if err != nil {
				return err
			}
			segOut := segmentsJSON{Segments: stats}
			if len(segments) > 1 {
				eps := cfg.Epsilon
				if eps == 0 {
					uni, err := freq.UnigramCounts(records)
					if err != nil {
						return err
					}
					eps = compare.RecommendedEpsilon(uni.Distinct())
				}
				shifts, err := segment.AdjacentShifts(segments, eps)
				if err != nil {
					return err
				}
				boundary, err := segment.MostSignificantBoundary(shifts)
				if err != nil {
					return err
				}
				segOut.Shifts = shifts
				segOut.Boundary = &boundary
			}
			if err := writeJSON(filepath.Join(outDir, "segments.json"), segOut); err != nil {
				return err
			}

			err = recordRun(cmd.Context(), cfg.StorePath, "pipeline", args[0], map[string]string{
				"config": configPath,
				"out":    outDir,
			}, func(ctx context.Context, st store.Store, runID string) error {
				if st == nil {
					return nil
				}
				if err := st.SaveMetrics(ctx, runID, map[string]float64{
					"lines":           float64(report.Lines),
					"tokens":          float64(report.Tokens),
					"distinct_tokens": float64(report.DistinctTokens),
					"unigram_entropy": report.Entropy,
					"zipf_slope":      report.ZipfSlope,
					"hapax_ratio":     report.HapaxRatio,
				}); err != nil {
					return err
				}
				for _, r := range results {
					if err := st.SaveComparison(ctx, runID, store.Comparison{
						Reference:        r.Reference,
						Divergence:       r.Divergence,
						SharedVocabulary: r.SharedVocabulary,
						CorpusTokens:     r.CorpusTokens,
						ReferenceTokens:  r.ReferenceTokens,
					}); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pipeline complete: artifacts in %s\n", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML pipeline configuration")
	cmd.Flags().StringVar(&outDir, "out", "out", "output directory")
	return cmd
}
