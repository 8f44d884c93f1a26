package vocabulary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LowercasesAndSkipsBlank(t *testing.T) {
	v := New("Cat", "  dog ", "", "   ")

	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Contains("cat"))
	assert.True(t, v.Contains("dog"))
	assert.False(t, v.Contains("Cat"), "lookups expect normalized tokens")
}

func TestLoad(t *testing.T) {
	input := "# english words\nthe\n\nCat\n  sat  \nthe\n"

	v, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, v.Len())
	for _, w := range []string{"the", "cat", "sat"} {
		assert.True(t, v.Contains(w), w)
	}
	assert.False(t, v.Contains("# english words"))
}

func TestLoad_MembershipIgnoresListCase(t *testing.T) {
	v, err := Load(strings.NewReader("Paris\nI\nNASA\n"))
	require.NoError(t, err)

	for _, tok := range []string{"paris", "i", "nasa"} {
		assert.True(t, v.Contains(tok), tok)
	}
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(strings.NewReader("\n# nothing here\n\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoad_ReadError(t *testing.T) {
	_, err := Load(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o600))

	v, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
