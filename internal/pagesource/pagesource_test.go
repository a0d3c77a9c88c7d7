package pagesource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSourceOrdersPages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_0010.txt"), []byte("later page"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_0002.txt"), []byte("aab * water\nadal * red"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))

	pages, err := DirSource{Dir: dir}.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, pages[0].Number)
	assert.Equal(t, []string{"aab * water", "adal * red"}, pages[0].Lines)
	assert.Equal(t, 10, pages[1].Number)
}

func TestDirSourceHandlesCRLF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_0001.txt"), []byte("one\r\ntwo"), 0o644))

	pages, err := DirSource{Dir: dir}.Pages()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, pages[0].Lines)
}

func TestDirSourceEmptyDirIsMalformed(t *testing.T) {
	_, err := DirSource{Dir: t.TempDir()}.Pages()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestDirSourceMissingDirIsMalformed(t *testing.T) {
	_, err := DirSource{Dir: filepath.Join(t.TempDir(), "absent")}.Pages()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}
