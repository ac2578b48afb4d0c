package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the glyphstat command tree. Every subcommand is a thin
// wrapper: read records, call the library, write JSON.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphstat",
		Short: "Descriptive statistics and corpus comparison for manuscript transcriptions",
		Long: `Glyphstat normalizes line-delimited manuscript transcriptions into token
records and computes descriptive statistics (entropy, Zipf slope, hapax
ratio, n-grams), compares token-frequency distributions against reference
corpora via Jensen-Shannon divergence, analyzes per-folio discontinuities,
and generates rule-based hypotheses about token families.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(
		newIngestCmd(),
		newTokenizeCmd(),
		newStatsCmd(),
		newCompareCmd(),
		newSegmentsCmd(),
		newHypothesizeCmd(),
		newPipelineCmd(),
		newRunsCmd(),
	)

	return cmd
}
