package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")
	want := []Record{
		{Text: "zot", Folio: "1r", Line: 1, Position: 1},
		{Text: "qokedy", Folio: "1r", Line: 1, Position: 2},
		{Text: "chedy", Folio: "1v", Line: 4, Position: 1},
	}

	if err := WriteJSONL(path, want); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	got, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")
	content := `{"text":"zot","folio":"1r","line":1,"position":1}` + "\n\n" +
		`{"text":"chedy","folio":"1r","line":1,"position":2}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len = %d, want 2", len(records))
	}
}

func TestReadJSONLMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")
	if err := os.WriteFile(path, []byte("{bad\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadJSONL(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestReadJSONLMissingText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")
	if err := os.WriteFile(path, []byte(`{"folio":"1r","line":1,"position":1}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadJSONL(path)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadJSONLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadJSONL(path)
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}
