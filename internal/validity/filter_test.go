package validity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sentimentform/internal/vocabulary"
)

func testVocab() *vocabulary.Vocabulary {
	return vocabulary.New("the", "cat", "sat", "on", "mat", "a", "dog", "is", "happy", "i", "love", "it", "hi")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "The CAT", "the cat"},
		{"strips punctuation", "Hello, world!", "hello world"},
		{"keeps underscore and digits", "snake_case 42", "snake_case 42"},
		{"keeps unicode letters", "Ça va très bien", "ça va très bien"},
		{"apostrophes join words", "don't", "dont"},
		{"all punctuation", "?!...;", ""},
		{"keeps whitespace", "a\tb\nc", "a\tb\nc"},
		{"drops invalid utf8", "ca\xfft", "cat"},
		{"drops combining marks", "cafe\u0301 au lait", "cafe au lait"},
		{"keeps non-decimal numbers", "x ½ ² ⅻ", "x ½ ² ⅻ"},
		{"keeps information separators", "a\x1fb\x1cc", "a\x1fb\x1cc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "cat", "sat"}, Tokenize("  The cat -- sat. "))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("!!! ???"))
	assert.Equal(t, []string{"cafe", "au", "lait"}, Tokenize("cafe\u0301 au lait"))
	assert.Equal(t, []string{"x", "½"}, Tokenize("x ½"))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, Tokenize("a\x1cb\x1dc\x1ed\x1fe"))
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\u00a0', '\u2028', '\x1c', '\x1d', '\x1e', '\x1f'} {
		assert.True(t, IsSpace(r), "%U", r)
	}
	for _, r := range []rune{'a', '_', '\x1b', '\u200b', '\u0301'} {
		assert.False(t, IsSpace(r), "%U", r)
	}
}

func TestFilter_Valid(t *testing.T) {
	f := New(testVocab())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \t\n", false},
		{"all punctuation", "?!... ,,, ;;", false},
		{"single known word", "Hi", false},
		{"single word with punctuation", "cat!!!", false},
		{"mostly known", "The cat sat on xyzzy mat", true},
		{"no known words", "xyzzy qwzxy", false},
		{"exactly at threshold", "the cat sat xyzzy qwzxy", true},
		{"just below threshold", "the cat xyzzy qwzxy", false},
		{"all known with punctuation", "I love it!", true},
		{"case insensitive", "THE DOG IS HAPPY", true},
		{"punctuation glued words", "the,cat;sat", false},
		{"separator splits words", "the\x1fcat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Valid(tt.input))
		})
	}
}

func TestFilter_Check(t *testing.T) {
	f := New(testVocab())

	r := f.Check("The cat sat on xyzzy mat")
	assert.True(t, r.Valid)
	assert.Equal(t, 6, len(r.Tokens))
	assert.Equal(t, 5, r.Known)
	assert.InDelta(t, 0.833, r.Ratio, 0.001)

	r = f.Check("Hi")
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"hi"}, r.Tokens)
	assert.Zero(t, r.Known, "short input is rejected before counting")
}

func TestFilter_Options(t *testing.T) {
	strict := New(testVocab(), WithMinRatio(1.0))
	assert.False(t, strict.Valid("The cat sat on xyzzy mat"))
	assert.True(t, strict.Valid("the cat sat"))

	long := New(testVocab(), WithMinTokens(4))
	assert.False(t, long.Valid("the cat sat"))
	assert.True(t, long.Valid("the cat sat on"))
}

func TestFilter_NonDecimalNumbersCountAsTokens(t *testing.T) {
	f := New(testVocab(), WithMinRatio(0.5))

	assert.True(t, f.Valid("hi ½"))
	assert.Equal(t, 2, len(f.Check("hi ½").Tokens))
}

func TestFilter_ZeroMinTokensDoesNotDivideByZero(t *testing.T) {
	f := New(testVocab(), WithMinTokens(0), WithMinRatio(0))

	assert.NotPanics(t, func() {
		assert.False(t, f.Valid(""))
		assert.False(t, f.Valid("..."))
	})
	assert.True(t, f.Valid("xyzzy"))
}

func TestFilter_NeverPanics(t *testing.T) {
	f := New(testVocab())
	inputs := []string{"", "\x00", "\xff\xfe", "🙂🙂 🙂", "​​", "á b́"}

	for _, in := range inputs {
		assert.NotPanics(t, func() { f.Valid(in) }, "%q", in)
	}
}
