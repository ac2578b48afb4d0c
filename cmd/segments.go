package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/compare"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/segment"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

type segmentsJSON struct {
	Segments []segment.Stats `json:"segments"`
	Shifts   []segment.Shift `json:"adjacent_shifts,omitempty"`
	Boundary *segment.Shift  `json:"most_significant_boundary,omitempty"`
}

func newSegmentsCmd() *cobra.Command {
	var (
		output  string
		topK    int
		epsilon float64
	)

	cmd := &cobra.Command{
		Use:   "segments <tokens.jsonl>",
		Short: "Per-folio statistics and adjacent-folio divergence shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := token.ReadJSONL(args[0])
			if err != nil {
				return err
			}

			segments := segment.ByFolio(records)
			stats, err := segment.Statistics(segments, topK)
			if err != nil {
				return err
			}

			out := segmentsJSON{Segments: stats}
			if len(segments) > 1 {
				eps := epsilon
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
				out.Shifts = shifts
				out.Boundary = &boundary
			}

			return writeJSON(output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output JSON path (- for stdout)")
	cmd.Flags().IntVar(&topK, "top", 5, "top tokens to include per segment")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "smoothing epsilon (0 derives from corpus vocabulary)")
	return cmd
}
