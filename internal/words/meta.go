// internal/words/meta.go
//
// Optional per-word metadata (meaning, pronunciation) surfaced on win and
// end messages. Backed by a YAML file; a missing file or missing entry is
// not an error.

package words

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Info carries the metadata known for one word.
type Info struct {
	Pronunciation string `yaml:"pronunciation" json:"pronunciation,omitempty"`
	Meaning       string `yaml:"meaning" json:"meaning,omitempty"`
}

// Meta looks up word metadata.
type Meta struct {
	entries map[string]Info
}

// LoadMeta reads a YAML mapping of word -> {pronunciation, meaning}.
// An empty path yields an empty (but usable) Meta.
func LoadMeta(path string) (*Meta, error) {
	m := &Meta{entries: map[string]Info{}}
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &m.entries); err != nil {
		return nil, err
	}

	// Normalize keys so lookups match normalized guesses.
	norm := make(map[string]Info, len(m.entries))
	for w, info := range m.entries {
		norm[strings.ToLower(strings.TrimSpace(w))] = info
	}
	m.entries = norm
	return m, nil
}

// Lookup returns the metadata for word, if any.
func (m *Meta) Lookup(word string) (Info, bool) {
	info, ok := m.entries[strings.ToLower(word)]
	return info, ok
}
