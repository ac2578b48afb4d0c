package ingest

import (
	"strings"
	"unicode"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/token"
)

// Tokenizer splits normalized text into lowercase alphanumeric tokens.
// Anything outside [a-z0-9] acts as a separator.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into lowercased tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Line is one normalized transcription line with its source location.
type Line struct {
	Folio string `json:"folio"`
	Line  int    `json:"line"`
	Raw   string `json:"raw,omitempty"`
	Text  string `json:"text"`
}

// TokenizeLines expands normalized lines into token records with 1-based
// positions. Line and folio identity is preserved on every record so that
// later stages can honor line and folio boundaries.
func (t *Tokenizer) TokenizeLines(lines []Line) []token.Record {
	var records []token.Record
	for _, ln := range lines {
		for i, tok := range t.Tokenize(ln.Text) {
			records = append(records, token.Record{
				Text:     tok,
				Folio:    ln.Folio,
				Line:     ln.Line,
				Position: i + 1,
			})
		}
	}
	return records
}
