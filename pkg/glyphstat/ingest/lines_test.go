package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadTranscriptionLocusMarkers(t *testing.T) {
	content := "<f103v.P.1;T> daiin chedy\n" +
		"qokedy ol\n" +
		"<f104r.P.1;T> shedy\n"
	path := writeTemp(t, "transcription.txt", content)

	lines, err := ReadTranscription(path, NewNormalizer())
	if err != nil {
		t.Fatalf("ReadTranscription: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}

	if lines[0].Folio != "103v" || lines[0].Text != "daiin chedy" {
		t.Errorf("line 1 = %s %q, want 103v %q", lines[0].Folio, lines[0].Text, "daiin chedy")
	}
	// folio carries over until the next marker
	if lines[1].Folio != "103v" {
		t.Errorf("line 2 folio = %s, want 103v", lines[1].Folio)
	}
	if lines[2].Folio != "104r" || lines[2].Text != "shedy" {
		t.Errorf("line 3 = %s %q, want 104r %q", lines[2].Folio, lines[2].Text, "shedy")
	}
	if lines[2].Line != 3 {
		t.Errorf("line 3 source line = %d, want 3", lines[2].Line)
	}
}

func TestReadTranscriptionDropsEmptyLines(t *testing.T) {
	path := writeTemp(t, "transcription.txt", "<f1r.P.1;T> daiin\n\n? * !\nchedy\n")

	lines, err := ReadTranscription(path, NewNormalizer())
	if err != nil {
		t.Fatalf("ReadTranscription: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[1].Text != "chedy" {
		t.Errorf("line 2 text = %q, want %q", lines[1].Text, "chedy")
	}
}

func TestReadTranscriptionEmptyCorpus(t *testing.T) {
	path := writeTemp(t, "empty.txt", "\n? ?\n")

	_, err := ReadTranscription(path, NewNormalizer())
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestLinesJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.jsonl")
	want := []Line{
		{Folio: "1r", Line: 1, Raw: "<f1r.P.1;T> Daiin", Text: "daiin"},
		{Folio: "1v", Line: 2, Text: "chedy ol"},
	}

	if err := WriteLines(path, want); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadLinesMalformed(t *testing.T) {
	path := writeTemp(t, "bad.jsonl", "{not json}\n")

	if _, err := ReadLines(path); err == nil {
		t.Error("expected error for malformed JSONL")
	}
}
