// Package vocabulary holds the fixed set of words treated as valid English.
//
// A Vocabulary is built once at startup and never mutated afterwards, so a
// single value can be shared by every request handler without locking.
package vocabulary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when a word list yields no entries.
var ErrEmpty = errors.New("vocabulary is empty")

// Set reports whether a normalized token is a known word.
type Set interface {
	Contains(word string) bool
}

type Vocabulary struct {
	words map[string]struct{}
}

// New builds a Vocabulary from the given words. Entries are lowercased and
// trimmed and blank entries are skipped, so membership ignores the case of the
// source list: "Paris" in the list matches the token "paris".
func New(words ...string) *Vocabulary {
	v := &Vocabulary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		v.add(w)
	}
	return v
}

// Load reads a word list with one word per line. Blank lines and lines
// starting with '#' are ignored. Entries are lowercased as in New.
func Load(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	if v.Len() == 0 {
		return nil, ErrEmpty
	}
	return v, nil
}

func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	v, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func (v *Vocabulary) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	v.words[word] = struct{}{}
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[word]
	return ok
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}
