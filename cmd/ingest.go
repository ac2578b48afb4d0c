package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/ingest"
)

func newIngestCmd() *cobra.Command {
	var (
		output          string
		keepHTML        bool
		keepNumbers     bool
		keepUncertainty bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <transcription.txt>",
		Short: "Normalize a raw transcription into line records (JSONL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := ingest.NewNormalizer()
			n.StripHTML = !keepHTML
			n.RemoveNumbers = !keepNumbers
			n.RemoveUncertainty = !keepUncertainty

			lines, err := ingest.ReadTranscription(args[0], n)
			if err != nil {
				return err
			}
			if err := ingest.WriteLines(output, lines); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d line records to %s\n", len(lines), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "lines.jsonl", "output JSONL path")
	cmd.Flags().BoolVar(&keepHTML, "keep-html", false, "keep HTML tags instead of stripping them")
	cmd.Flags().BoolVar(&keepNumbers, "keep-numbers", false, "keep numeric sequences")
	cmd.Flags().BoolVar(&keepUncertainty, "keep-uncertainty", false, "keep uncertainty markers")
	return cmd
}
