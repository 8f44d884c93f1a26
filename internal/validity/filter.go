// Package validity decides whether user text is a plausible English sentence
// before it is handed to the sentiment classifier.
package validity

import (
	"strings"
	"unicode"

	"sentimentform/internal/vocabulary"
)

const (
	DefaultMinTokens = 2
	DefaultMinRatio  = 0.6
)

// Report is the working behind a verdict.
type Report struct {
	Tokens []string
	Known  int
	Ratio  float64
	Valid  bool
}

// Filter is immutable once built and safe for concurrent use.
type Filter struct {
	vocab     vocabulary.Set
	minTokens int
	minRatio  float64
}

type Option func(*Filter)

func WithMinTokens(n int) Option {
	return func(f *Filter) { f.minTokens = n }
}

func WithMinRatio(r float64) Option {
	return func(f *Filter) { f.minRatio = r }
}

func New(vocab vocabulary.Set, opts ...Option) *Filter {
	f := &Filter{
		vocab:     vocab,
		minTokens: DefaultMinTokens,
		minRatio:  DefaultMinRatio,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Valid reports whether text has at least MinTokens tokens and at least
// MinRatio of them are known words.
func (f *Filter) Valid(text string) bool {
	return f.Check(text).Valid
}

func (f *Filter) Check(text string) Report {
	tokens := Tokenize(text)
	r := Report{Tokens: tokens}

	// zero tokens is rejected before the ratio so MinTokens=0 cannot divide by zero
	if len(tokens) < f.minTokens || len(tokens) == 0 {
		return r
	}

	for _, tok := range tokens {
		if f.vocab.Contains(tok) {
			r.Known++
		}
	}
	r.Ratio = float64(r.Known) / float64(len(tokens))
	r.Valid = r.Ratio >= f.minRatio
	return r
}

// Normalize lowercases text and drops every rune that is neither a word
// character (letter, number, underscore) nor whitespace. Combining marks and
// invalid UTF-8 bytes are dropped.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))
}

func Tokenize(text string) []string {
	return strings.FieldsFunc(Normalize(text), IsSpace)
}

// IsSpace extends unicode.IsSpace with the information separators
// U+001C..U+001F, which also split words.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
