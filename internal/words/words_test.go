package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	w, err := Parse(" HeLLo ")
	require.NoError(t, err)
	assert.Equal(t, "hello", w.String())

	_, err = Parse("hell")
	assert.ErrorIs(t, err, ErrWordLen)

	_, err = Parse("hell0")
	assert.ErrorIs(t, err, ErrWordChar)

	_, err = Parse("héllo")
	assert.ErrorIs(t, err, ErrWordLen)
}

func TestParseAllReportsIndex(t *testing.T) {
	_, err := ParseAll([]string{"cigar", "rebut", "nope"})
	require.Error(t, err)
	var le *ListError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Index)
	assert.ErrorIs(t, err, ErrWordLen)
}

func TestLoadEmbedded(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)
	h, x := l.Stats()
	assert.NotZero(t, h)
	assert.NotZero(t, x)

	vocab := l.Vocabulary()
	require.Len(t, vocab, h+x)
	assert.Equal(t, l.History[0], vocab[0])
	assert.Equal(t, l.Extra[0], vocab[h])
	assert.Contains(t, vocab, MustParse("lares"))
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "history.json")
	extra := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(hist, []byte(`["cigar","REBUT"]`), 0o644))
	require.NoError(t, os.WriteFile(extra, []byte(`["lares","cigar"]`), 0o644))

	l, err := Load(hist, extra)
	require.NoError(t, err)
	assert.Equal(t, []string{"cigar", "rebut", "lares", "cigar"}, Strings(l.Vocabulary()))
	assert.Equal(t, 0, Index(l.Vocabulary())[MustParse("cigar")])
}

func TestLoadBadEntry(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "history.json")
	require.NoError(t, os.WriteFile(hist, []byte(`["cigar","ci9ar"]`), 0o644))

	_, err := Load(hist, "")
	var le *ListError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "history", le.List)
	assert.Equal(t, 1, le.Index)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)
}
