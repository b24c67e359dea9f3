package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLocalStorage(dir)
	assert.NoError(t, err)

	_, err = NewLocalStorage(filepath.Join(dir, "does-not-exist"))
	assert.Error(t, err)

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = NewLocalStorage(file)
	assert.Error(t, err)
}

func TestLocalStorageList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ftl-scheme.pdf"), []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("txt"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ftl-scheme.pdf", "notes.txt"}, names)
}

func TestLocalStorageDownload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("rest rules"), 0o644))

	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	rc, err := store.Download(context.Background(), "notes.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "rest rules", string(data))

	_, err = store.Download(context.Background(), "missing.txt")
	assert.Error(t, err)
}

func TestLocalStorageDownloadStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("rest rules"), 0o644))

	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	rc, err := store.Download(context.Background(), "../outside/notes.txt")
	require.NoError(t, err)
	rc.Close()
}
