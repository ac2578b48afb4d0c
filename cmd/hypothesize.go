package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/internal/llm"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/freq"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/hypothesis"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

type hypothesisJSON struct {
	hypothesis.Hypothesis
	Review string `json:"review,omitempty"`
}

func newHypothesizeCmd() *cobra.Command {
	var (
		output    string
		minFamily int
		review    bool
	)

	cmd := &cobra.Command{
		Use:   "hypothesize <tokens.jsonl>",
		Short: "Generate rule-based hypotheses about token families (JSONL)",
		Long: `Groups the distinct vocabulary into families by leading glyph pair and
generates affix/substring hypotheses per family. With --review, each
hypothesis is sent to an OpenAI-compatible endpoint (GLYPHSTAT_LLM_BASE_URL,
GLYPHSTAT_LLM_MODEL, GLYPHSTAT_LLM_API_KEY) for a skeptical second opinion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := token.ReadJSONL(args[0])
			if err != nil {
				return err
			}
			uni, err := freq.UnigramCounts(records)
			if err != nil {
				return err
			}

			var client *llm.Client
			if review {
				client = &llm.Client{
					BaseURL: os.Getenv("GLYPHSTAT_LLM_BASE_URL"),
					Model:   os.Getenv("GLYPHSTAT_LLM_MODEL"),
					APIKey:  os.Getenv("GLYPHSTAT_LLM_API_KEY"),
				}
			}

			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			written := 0
			for _, fam := range tokenFamilies(uni.Tokens(), minFamily) {
				hyp, err := hypothesis.Generate(fam.id, fam.tokens)
				if err != nil {
					return err
				}
				out := hypothesisJSON{Hypothesis: hyp}
				if client != nil {
					rev, err := client.ReviewHypothesis(cmd.Context(), hyp)
					if err != nil {
						return fmt.Errorf("review family %s: %w", fam.id, err)
					}
					out.Review = rev
				}
				if err := enc.Encode(out); err != nil {
					return err
				}
				written++
			}

			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d hypotheses to %s\n", written, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "hypotheses.jsonl", "output JSONL path")
	cmd.Flags().IntVar(&minFamily, "min-family", 2, "minimum tokens per family")
	cmd.Flags().BoolVar(&review, "review", false, "send each hypothesis to an LLM reviewer")
	return cmd
}

type family struct {
	id     string
	tokens []string
}

// tokenFamilies groups the distinct vocabulary by leading glyph pair.
// Single-glyph tokens group under their own glyph. Families smaller than
// minSize carry too little signal and are dropped.
func tokenFamilies(tokens []string, minSize int) []family {
	grouped := make(map[string][]string)
	for _, tok := range tokens {
		key := tok
		if len(tok) > 2 {
			key = tok[:2]
		}
		grouped[key] = append(grouped[key], tok)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		if len(grouped[k]) >= minSize {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]family, len(keys))
	for i, k := range keys {
		members := grouped[k]
		sort.Strings(members)
		out[i] = family{id: k, tokens: members}
	}
	return out
}
