package cmd

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/ingest"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// tokenRow mirrors token.Record for columnar export.
type tokenRow struct {
	Text     string `parquet:"text"`
	Folio    string `parquet:"folio"`
	Line     int32  `parquet:"line"`
	Position int32  `parquet:"position"`
}

func newTokenizeCmd() *cobra.Command {
	var (
		output      string
		parquetPath string
	)

	cmd := &cobra.Command{
		Use:   "tokenize <lines.jsonl>",
		Short: "Expand normalized lines into per-token records (JSONL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := ingest.ReadLines(args[0])
			if err != nil {
				return err
			}

			records := ingest.NewTokenizer().TokenizeLines(lines)
			if err := token.WriteJSONL(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d token records to %s\n", len(records), output)

			if parquetPath != "" {
				if err := writeParquet(parquetPath, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote parquet export to %s\n", parquetPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tokens.jsonl", "output JSONL path")
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "also export records as a parquet file")
	return cmd
}

func writeParquet(path string, records []token.Record) error {
	rows := make([]tokenRow, len(records))
	for i, rec := range records {
		rows[i] = tokenRow{
			Text:     rec.Text,
			Folio:    rec.Folio,
			Line:     int32(rec.Line),
			Position: int32(rec.Position),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[tokenRow](f)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
