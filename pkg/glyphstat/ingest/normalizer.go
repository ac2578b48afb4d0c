package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Transcription conventions mark uncertain or editorial content with a small
// set of sigils. These are stripped during normalization so they never leak
// into token statistics.
var (
	uncertaintyRe = regexp.MustCompile(`[?*†()¶\[\]]`)
	punctRe       = regexp.MustCompile("[.,:;!\"'`/<>]")
	digitsRe      = regexp.MustCompile(`\d+`)
	escapeRe      = regexp.MustCompile(`\\[ntbrf]`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Normalizer turns a raw transcription line into clean lowercase text.
// The zero value applies no cleaning; use NewNormalizer for the defaults
// used across the project.
type Normalizer struct {
	StripHTML         bool
	RemoveNumbers     bool
	RemoveUncertainty bool
}

// NewNormalizer returns a normalizer with all cleaning steps enabled.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		StripHTML:         true,
		RemoveNumbers:     true,
		RemoveUncertainty: true,
	}
}

// Normalize cleans a single line. The result may be empty, in which case
// the line carries no tokens and should be dropped by the caller.
func (n *Normalizer) Normalize(text string) string {
	s := text
	if n.StripHTML {
		s = stripTags(s)
	}
	if n.RemoveUncertainty {
		s = uncertaintyRe.ReplaceAllString(s, "")
	}
	// Hyphens join transcription fragments; split them back into tokens.
	s = strings.ReplaceAll(s, "-", " ")
	s = punctRe.ReplaceAllString(s, "")
	if n.RemoveNumbers {
		s = digitsRe.ReplaceAllString(s, " ")
	}
	s = escapeRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

func stripTags(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
