package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// EVA-style locus markers open a line with the source folio,
// e.g. "<f103v.P.11;T>". The folio carries over to following lines
// until the next marker.
var locusRe = regexp.MustCompile(`^<f(\d+[rv])[^>]*>`)

// ReadTranscription reads a raw transcription file and returns one
// normalized Line per non-empty source line. Lines that normalize to
// nothing are dropped.
func ReadTranscription(path string, n *Normalizer) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var (
		lines []Line
		folio string
	)
	for i, raw := range strings.Split(string(data), "\n") {
		text := raw
		if m := locusRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
			folio = m[1]
			text = strings.TrimSpace(text)[len(m[0]):]
		}
		norm := n.Normalize(text)
		if norm == "" {
			continue
		}
		lines = append(lines, Line{
			Folio: folio,
			Line:  i + 1,
			Raw:   raw,
			Text:  norm,
		})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, internalerr.ErrEmptyCorpus)
	}
	return lines, nil
}

// ReadLines loads normalized lines from a JSONL file.
func ReadLines(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var lines []Line
	for i, raw := range strings.Split(string(data), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var ln Line
		if err := json.Unmarshal([]byte(raw), &ln); err != nil {
			return nil, fmt.Errorf("parse line %d of %s: %w", i+1, path, err)
		}
		lines = append(lines, ln)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, internalerr.ErrEmptyCorpus)
	}
	return lines, nil
}

// WriteLines writes normalized lines as JSONL.
func WriteLines(path string, lines []Line) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ln := range lines {
		if err := enc.Encode(ln); err != nil {
			return fmt.Errorf("encode line: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
