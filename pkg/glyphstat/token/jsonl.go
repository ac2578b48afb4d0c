package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

// ReadJSONL loads token records from a line-delimited JSON file.
// Blank lines are skipped; a malformed line is an error, not a warning,
// because downstream statistics must never run over a silently truncated
// corpus.
func ReadJSONL(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var records []Record
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse line %d of %s: %w", i+1, path, err)
		}
		if rec.Text == "" {
			return nil, fmt.Errorf("line %d of %s: missing text field: %w", i+1, path, internalerr.ErrInvalidInput)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, internalerr.ErrEmptyCorpus)
	}
	return records, nil
}

// WriteJSONL writes records as one JSON object per line.
func WriteJSONL(path string, records []Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
