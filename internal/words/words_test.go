package words

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFiltersAndDedupes(t *testing.T) {
	path := writeTemp(t, "words.txt", "PLANET\nmirror\nshort\ntoolong7\nmirror\n# comment\n\nsilver\n")
	p, err := Load(path, 6)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Stats() != 3 {
		t.Errorf("Stats = %d, want 3 (planet, mirror, silver)", p.Stats())
	}
	if !p.Contains("planet") || !p.Contains("MIRROR") {
		t.Error("Contains should match case-insensitively")
	}
	if p.Contains("short") || p.Contains("toolong7") {
		t.Error("wrong-length words must be filtered out")
	}
}

func TestLoadRejectsEmptyVocabulary(t *testing.T) {
	path := writeTemp(t, "words.txt", "cat\ndog\n")
	if _, err := Load(path, 6); err == nil {
		t.Error("expected error for vocabulary with no words of length 6")
	}
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	p, err := Load("", 6)
	if err != nil {
		t.Fatalf("Load with embedded defaults: %v", err)
	}
	if p.Stats() == 0 {
		t.Error("embedded defaults should not be empty")
	}
	if !p.Contains(p.Sample()) {
		t.Error("Sample must return a vocabulary member")
	}
}

func TestMetaLookup(t *testing.T) {
	path := writeTemp(t, "meta.yaml", "Planet:\n  meaning: a celestial body\n  pronunciation: PLAN-it\n")
	m, err := LoadMeta(path)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	info, ok := m.Lookup("planet")
	if !ok {
		t.Fatal("expected metadata for planet")
	}
	if info.Meaning != "a celestial body" || info.Pronunciation != "PLAN-it" {
		t.Errorf("unexpected info: %+v", info)
	}
	if _, ok := m.Lookup("mirror"); ok {
		t.Error("missing entry must report ok=false, not an error")
	}
}

func TestMetaEmptyPath(t *testing.T) {
	m, err := LoadMeta("")
	if err != nil {
		t.Fatalf("LoadMeta(\"\"): %v", err)
	}
	if _, ok := m.Lookup("planet"); ok {
		t.Error("empty meta should know nothing")
	}
}
