// internal/words/words.go
//
// Vocabulary provider for the game engine.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the
//     embedded defaults.
//   - Maintain a set for membership lookups and a slice for sampling.
//   - Supply Sample, Contains and Stats.
//
// Constraints:
//   • Words are normalized to lowercase and filtered to the configured
//     length and alphabetic a-z.
//   • The list is deduplicated; load order of first occurrence is kept.

package words

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/wordseek/wordseek/assets"
)

// Provider is a fixed-length, lowercase, deduplicated word set.
type Provider struct {
	length int
	list   []string
	set    map[string]struct{}
}

// Load builds a Provider from the file at path, or from the embedded
// defaults when path is empty. Returns an error if no valid words of the
// requested length survive filtering.
func Load(path string, length int) (*Provider, error) {
	var raw []string
	var err error
	if path != "" {
		raw, err = readWordFile(path)
	} else {
		raw, err = assets.DefaultWords()
	}
	if err != nil {
		return nil, err
	}

	list := lo.Uniq(lo.Filter(raw, func(w string, _ int) bool {
		return len(w) == length && isAlpha(w)
	}))
	if len(list) == 0 {
		return nil, fmt.Errorf("words: no valid words of length %d", length)
	}

	return &Provider{
		length: length,
		list:   list,
		set:    lo.SliceToMap(list, func(w string) (string, struct{}) { return w, struct{}{} }),
	}, nil
}

// readWordFile loads one word per line, lowercased and trimmed.
// Length filtering happens in Load.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w != "" && !strings.HasPrefix(w, "#") {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// Length returns the fixed word length of this vocabulary.
func (p *Provider) Length() int { return p.length }

// Contains reports whether w is in the vocabulary.
func (p *Provider) Contains(w string) bool {
	_, ok := p.set[strings.ToLower(w)]
	return ok
}

// Sample returns a cryptographically random word from the list.
func (p *Provider) Sample() string {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(p.list))))
	return p.list[nBig.Int64()]
}

// Stats returns the number of loaded words.
func (p *Provider) Stats() int { return len(p.list) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
