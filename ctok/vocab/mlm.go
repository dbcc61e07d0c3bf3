// Package vocab implements the auxiliary word vocabulary consulted by the
// masked-language-model head. It never influences model input: the model
// consumes character id sequences, not word indices.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	internal "github.com/ZanzyTHEbar/character-tokenizer/ctok"
)

// ErrMissingVocabFile is returned when the vocabulary path does not exist.
var ErrMissingVocabFile = errors.New("vocabulary file not found")

// MLM is a word-to-index vocabulary with its reverse mapping. Indices are
// assigned by line order when loaded from disk. Read-only after creation.
type MLM struct {
	index    map[string]int
	inverse  map[int]string
	unkToken string
}

// Load reads a vocabulary file: UTF-8, one token per line, line number is
// the 0-based index. unkToken is the fallback for lookups of unknown words.
func Load(path, unkToken string) (*MLM, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingVocabFile, path)
		}
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer f.Close()

	m := &MLM{
		index:    make(map[string]int),
		inverse:  make(map[int]string),
		unkToken: unkToken,
	}
	scanner := bufio.NewScanner(f)
	i := 0
	for scanner.Scan() {
		token := strings.TrimSuffix(scanner.Text(), "\r")
		m.index[token] = i
		m.inverse[i] = token
		i++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return m, nil
}

// FromMap builds a vocabulary from an explicit token-to-index mapping.
func FromMap(index map[string]int, unkToken string) *MLM {
	m := &MLM{
		index:    make(map[string]int, len(index)),
		inverse:  make(map[int]string, len(index)),
		unkToken: unkToken,
	}
	for token, id := range index {
		m.index[token] = id
		m.inverse[id] = token
	}
	return m
}

// Size returns the number of vocabulary entries.
func (m *MLM) Size() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// TokenToID resolves a word to its index, falling back to the unknown
// token's index, or -1 when even that is absent.
func (m *MLM) TokenToID(token string) int {
	if m != nil {
		if id, ok := m.index[token]; ok {
			return id
		}
		if id, ok := m.index[m.unkToken]; ok {
			return id
		}
	}
	return -1
}

// IDToToken resolves an index to its word, falling back to the unknown
// token string.
func (m *MLM) IDToToken(id int) string {
	if m == nil {
		return ""
	}
	if token, ok := m.inverse[id]; ok {
		return token
	}
	return m.unkToken
}

// Tokens returns all entries ordered by index.
func (m *MLM) Tokens() []string {
	if m == nil {
		return nil
	}
	ids := make([]int, 0, len(m.inverse))
	for id := range m.inverse {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.inverse[id])
	}
	return out
}

// Save writes the vocabulary sorted by index. saveDirectory may also be a
// full file path. Non-consecutive indices are reported as a warning and the
// write proceeds; the gap is not repaired.
func (m *MLM) Save(saveDirectory, filenamePrefix string) (string, error) {
	prefix := filenamePrefix
	if prefix != "" {
		prefix += "-"
	}
	path := prefix + saveDirectory
	if info, err := os.Stat(saveDirectory); err == nil && info.IsDir() {
		path = filepath.Join(saveDirectory, prefix+internal.DefaultMLMVocabFilename)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create vocabulary file: %w", err)
	}
	defer f.Close()

	type entry struct {
		token string
		id    int
	}
	entries := make([]entry, 0, len(m.index))
	for token, id := range m.index {
		entries = append(entries, entry{token, id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	w := bufio.NewWriter(f)
	expected := 0
	for _, e := range entries {
		if e.id != expected {
			slog.Warn("MLM vocabulary indices are not consecutive, vocabulary may be corrupted",
				"path", path,
				"index", e.id,
				"expected", expected)
			expected = e.id
		}
		if _, err := w.WriteString(e.token + "\n"); err != nil {
			return "", fmt.Errorf("failed to write vocabulary file: %w", err)
		}
		expected++
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush vocabulary file: %w", err)
	}
	return path, nil
}
