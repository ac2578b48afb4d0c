package hypothesis

import (
	"errors"
	"strings"
	"testing"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
)

func TestGenerateSharedSuffix(t *testing.T) {
	family := []string{"qokedy", "chedy", "shedy", "okedy"}

	h, err := Generate("edy-family", family)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if h.Family != "edy-family" || h.Size != 4 {
		t.Errorf("family = %s size = %d, want edy-family 4", h.Family, h.Size)
	}
	if h.Evidence.Suffix == nil {
		t.Fatal("expected a suffix in evidence")
	}
	if h.Evidence.Suffix.Affix != "edy" || h.Evidence.Suffix.Count != 4 {
		t.Errorf("suffix = %+v, want edy with count 4", h.Evidence.Suffix)
	}
	if h.Evidence.Prefix != nil {
		t.Errorf("expected no shared prefix, got %+v", h.Evidence.Prefix)
	}
	if len(h.Evidence.Substrings) == 0 || h.Evidence.Substrings[0] != "edy" {
		t.Errorf("substrings = %v, want edy first", h.Evidence.Substrings)
	}
	if !strings.Contains(h.Statement, `"edy"`) {
		t.Errorf("statement does not mention the suffix: %s", h.Statement)
	}
	if len(h.Checks) == 0 || len(h.Caveats) == 0 {
		t.Error("expected suggested checks and caveats")
	}
}

func TestGenerateSharedPrefix(t *testing.T) {
	family := []string{"qokaiin", "qokedy", "qokar", "qokol"}

	h, err := Generate("qok-family", family)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if h.Evidence.Prefix == nil {
		t.Fatal("expected a prefix in evidence")
	}
	if h.Evidence.Prefix.Affix != "qok" || h.Evidence.Prefix.Count != 4 {
		t.Errorf("prefix = %+v, want qok with count 4", h.Evidence.Prefix)
	}
}

func TestGenerateNoSignal(t *testing.T) {
	h, err := Generate("mixed", []string{"ab", "cd", "ef"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if h.Evidence.Prefix != nil || h.Evidence.Suffix != nil || len(h.Evidence.Substrings) != 0 {
		t.Errorf("expected empty evidence, got %+v", h.Evidence)
	}
	if !strings.Contains(h.Statement, "No strong common prefix or suffix") {
		t.Errorf("unexpected statement: %s", h.Statement)
	}
}

func TestGenerateEmptyFamily(t *testing.T) {
	_, err := Generate("empty", nil)
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	family := []string{"okaiin", "otaiin", "okedy", "otedy", "okal", "otal"}

	first, err := Generate("ot-ok", family)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Generate("ot-ok", family)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if again.Statement != first.Statement {
			t.Fatalf("statement changed between runs:\n%s\n%s", first.Statement, again.Statement)
		}
	}
}
