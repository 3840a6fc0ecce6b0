package writer

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScorpionResponse/pelican/internal/settings"
)

func TestWriteFile(t *testing.T) {
	out := t.TempDir()
	w := New(out, settings.Settings{"SITENAME": "Site"})
	tmpl := template.Must(template.New("page").Parse(`{{.SITENAME}}: {{.title}} ({{.output_file}})`))

	require.NoError(t, w.WriteFile("posts/a.html", tmpl, map[string]any{"title": "<A>"}))

	got, err := os.ReadFile(filepath.Join(out, "posts", "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "Site: &lt;A&gt; (posts/a.html)", string(got))
}

func TestWriteFileDirectoryName(t *testing.T) {
	out := t.TempDir()
	w := New(out, nil)
	tmpl := template.Must(template.New("x").Parse(`ok`))

	require.NoError(t, w.WriteFile("about/", tmpl, nil))
	assert.FileExists(t, filepath.Join(out, "about", "index.html"))
}

func TestWriteBytesSkipsUnchanged(t *testing.T) {
	out := t.TempDir()
	w := New(out, nil)

	require.NoError(t, w.WriteBytes("a.txt", []byte("same")))
	require.NoError(t, w.WriteBytes("a.txt", []byte("same")))
	require.NoError(t, w.WriteBytes("a.txt", []byte("different")))

	written, skipped := w.Counts()
	assert.Equal(t, 2, written)
	assert.Equal(t, 1, skipped)
}

func TestTargetRejectsEscape(t *testing.T) {
	w := New(t.TempDir(), nil)
	_, err := w.Target("../outside.html")
	require.Error(t, err)
	_, err = w.Target("")
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, old, old))

	out := t.TempDir()
	w := New(out, nil)
	require.NoError(t, w.CopyFile(src, "images/logo.png"))
	require.NoError(t, w.CopyFile(src, "images/logo.png"))

	got, err := os.ReadFile(filepath.Join(out, "images", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))
	written, skipped := w.Counts()
	assert.Equal(t, 1, written)
	assert.Equal(t, 1, skipped)
}
