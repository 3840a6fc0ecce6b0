package themes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	dir := t.TempDir()

	got, err := Install(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.FileExists(t, filepath.Join(dir, "simple", "templates", "article.html"))
	assert.FileExists(t, filepath.Join(dir, "simple", "static", "css", "main.css"))

	// second install is a no-op
	_, err = Install(dir)
	require.NoError(t, err)
}

func TestInstallEmptyDir(t *testing.T) {
	_, err := Install("")
	require.Error(t, err)
}

func TestTemplatesRenderBundledTheme(t *testing.T) {
	dir := t.TempDir()
	_, err := Install(dir)
	require.NoError(t, err)

	set, err := Templates(filepath.Join(dir, Bundled))
	require.NoError(t, err)

	for _, name := range []string{"index.html", "article.html", "page.html", "category.html", "tag.html"} {
		_, err := Lookup(set, name)
		require.NoError(t, err, name)
	}
	_, err = Lookup(set, "missing.html")
	require.Error(t, err)

	idx, _ := Lookup(set, "index.html")
	var buf bytes.Buffer
	require.NoError(t, idx.Execute(&buf, map[string]any{
		"SITENAME": "Test Site",
		"articles": []struct {
			Title, URL string
			Date       time.Time
			Summary    string
		}{{Title: "Hello", URL: "hello.html", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}},
	}))
	assert.Contains(t, buf.String(), "Test Site")
	assert.Contains(t, buf.String(), "2024-01-02")
}

func TestTemplatesNoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	_, err := Templates(dir)
	require.Error(t, err)
}
