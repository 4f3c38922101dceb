package fetch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Jane</h1>"), 0o644))

	for _, location := range []string{path, "file://" + path} {
		html, err := FileSource{}.PageHTML(context.Background(), location)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Jane</h1>", html)
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{}.PageHTML(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
