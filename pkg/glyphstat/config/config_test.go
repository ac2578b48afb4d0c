package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "epsilon: 0.01\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Epsilon != 0.01 {
		t.Errorf("Epsilon = %f, want 0.01", cfg.Epsilon)
	}
	if cfg.TopK != 20 {
		t.Errorf("TopK = %d, want default 20", cfg.TopK)
	}
}

func TestLoadFull(t *testing.T) {
	content := `
normalize:
  keep_numbers: true
epsilon: 0.002
top_k: 10
references:
  - name: latin
    path: refs/latin.txt
store_path: runs.db
llm:
  base_url: http://localhost:8080/v1
  model: reviewer
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Normalize.KeepNumbers || cfg.Normalize.KeepHTML {
		t.Errorf("Normalize = %+v", cfg.Normalize)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if len(cfg.References) != 1 || cfg.References[0].Name != "latin" {
		t.Errorf("References = %+v", cfg.References)
	}
	if cfg.StorePath != "runs.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.LLM.Model != "reviewer" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Default(), true},
		{"negative epsilon", Config{Epsilon: -0.1, TopK: 5}, false},
		{"zero top_k", Config{TopK: 0}, false},
		{"reference missing path", Config{TopK: 5, References: []Reference{{Name: "latin"}}}, false},
		{"complete reference", Config{TopK: 5, References: []Reference{{Name: "latin", Path: "x.txt"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, internalerr.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
