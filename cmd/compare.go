package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/ingest"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

type comparisonJSON struct {
	Reference        string  `json:"reference_name"`
	Divergence       float64 `json:"divergence_score"`
	SharedVocabulary int     `json:"shared_vocabulary_size"`
	CorpusTokens     int64   `json:"corpus_a_token_count"`
	ReferenceTokens  int64   `json:"corpus_b_token_count"`
}

func newCompareCmd() *cobra.Command {
	var (
		output     string
		references string
		epsilon    float64
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "compare <tokens.jsonl>",
		Short: "Compare the corpus against reference corpora via Jensen-Shannon divergence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := token.ReadJSONL(args[0])
			if err != nil {
				return err
			}

			refs, err := loadReferences(references)
			if err != nil {
				return err
			}

			var results []comparisonJSON
			for _, ref := range refs {
				res, err := glyphstat.CompareAgainst(records, ref.tokens, epsilon)
				if err != nil {
					return fmt.Errorf("reference %s: %w", ref.name, err)
				}
				results = append(results, comparisonJSON{
					Reference:        ref.name,
					Divergence:       res.Divergence,
					SharedVocabulary: res.SharedVocabulary,
					CorpusTokens:     res.CorpusATokens,
					ReferenceTokens:  res.CorpusBTokens,
				})
			}

			// most similar first
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].Divergence < results[j].Divergence
			})

			params := map[string]string{
				"references": references,
				"epsilon":    strconv.FormatFloat(epsilon, 'g', -1, 64),
			}
			return recordRun(cmd.Context(), dbPath, "compare", args[0], params,
				func(ctx context.Context, st store.Store, runID string) error {
					if st != nil {
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
					}
					return writeJSON(output, results)
				})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output JSON path (- for stdout)")
	cmd.Flags().StringVar(&references, "references", "", "directory of plain-text reference corpora (required)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "smoothing epsilon (0 derives 1/(100*|V|) per pair)")
	cmd.Flags().StringVar(&dbPath, "db", "", "optional SQLite run database")
	_ = cmd.MarkFlagRequired("references")
	return cmd
}

type referenceCorpus struct {
	name   string
	tokens []string
}

// loadReferences tokenizes every regular file in the directory, one
// reference corpus per file, named by its base name without extension.
func loadReferences(dir string) ([]referenceCorpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read references %s: %w", dir, err)
	}

	tokenizer := ingest.NewTokenizer()
	var refs []referenceCorpus
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read reference %s: %w", path, err)
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		refs = append(refs, referenceCorpus{
			name:   name,
			tokens: tokenizer.Tokenize(string(data)),
		})
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("no reference corpora in %s: %w", dir, internalerr.ErrEmptyCorpus)
	}
	return refs, nil
}
