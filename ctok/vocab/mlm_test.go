package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMLMVocab(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"LoadAssignsLineOrder", testLoadAssignsLineOrder},
		{"LoadMissingFile", testLoadMissingFile},
		{"Lookups", testLookups},
		{"SaveRoundTrip", testSaveRoundTrip},
		{"SaveWithIndexGap", testSaveWithIndexGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func writeVocabFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mlm_vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func testLoadAssignsLineOrder(t *testing.T) {
	path := writeVocabFile(t, "[UNK]\nthe\nof\nand\n")

	m, err := Load(path, "[UNK]")
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size())
	assert.Equal(t, 0, m.TokenToID("[UNK]"))
	assert.Equal(t, 3, m.TokenToID("and"))
	assert.Equal(t, []string{"[UNK]", "the", "of", "and"}, m.Tokens())
}

func testLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "[UNK]")
	assert.ErrorIs(t, err, ErrMissingVocabFile)
}

func testLookups(t *testing.T) {
	m, err := Load(writeVocabFile(t, "[UNK]\nhello\n"), "[UNK]")
	require.NoError(t, err)

	assert.Equal(t, 1, m.TokenToID("hello"))
	assert.Equal(t, 0, m.TokenToID("unseen"), "unknown words resolve to [UNK]")
	assert.Equal(t, "hello", m.IDToToken(1))
	assert.Equal(t, "[UNK]", m.IDToToken(42))

	// Without an unknown token entry lookups report -1.
	noUnk := FromMap(map[string]int{"hello": 0}, "[UNK]")
	assert.Equal(t, -1, noUnk.TokenToID("unseen"))
}

func testSaveRoundTrip(t *testing.T) {
	original := "[UNK]\nthe\nof\n"
	m, err := Load(writeVocabFile(t, original), "[UNK]")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := m.Save(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mlm_vocab.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	// A filename prefix is honored.
	path, err = m.Save(dir, "ckpt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ckpt-mlm_vocab.txt"), path)

	reloaded, err := Load(path, "[UNK]")
	require.NoError(t, err)
	assert.Equal(t, m.Tokens(), reloaded.Tokens())
}

func testSaveWithIndexGap(t *testing.T) {
	// Indices 0 and 2: the gap is reported as a warning but the write
	// proceeds with the tokens in index order.
	m := FromMap(map[string]int{"a": 0, "b": 2}, "[UNK]")

	path, err := m.Save(t.TempDir(), "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}
