package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
)

func TestResolve_EmptyContentPathIsConfigError(t *testing.T) {
	_, err := Resolve("", t.TempDir(), "out", "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestResolve_StripsTrailingSeparatorAndMakesAbsolute(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	theme := filepath.Join(root, "theme")
	require.NoError(t, os.Mkdir(theme, 0o755))

	got, err := Resolve(root+string(os.PathSeparator), theme, filepath.Join(root, "output"), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(root), got.Content)
	assert.True(t, filepath.IsAbs(got.Theme))
	assert.True(t, filepath.IsAbs(got.Output))
}

func TestResolve_ThemeFallsBackToBundled(t *testing.T) {
	root := t.TempDir()
	bundled := filepath.Join(root, "bundled")
	require.NoError(t, os.MkdirAll(filepath.Join(bundled, "simple"), 0o755))

	got, err := Resolve(root, "simple", filepath.Join(root, "out"), bundled)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(bundled, "simple"), got.Theme)
}

func TestResolve_UnknownThemeIsConfigError(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(root, "does-not-exist", filepath.Join(root, "out"), filepath.Join(root, "bundled"))

	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Contains(t, err.Error(), "Impossible to find the theme does-not-exist")
}

func TestCanonical_FollowsSymlinksOfExistingPrefix(t *testing.T) {
	root := t.TempDir()
	realDir := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	link := filepath.Join(root, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	realRoot, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)

	got, err := Canonical(link)
	require.NoError(t, err)
	assert.Equal(t, realRoot, got)

	got, err = Canonical(filepath.Join(link, "not", "yet"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realRoot, "not", "yet"), got)
}

func TestResolve_ContentSymlinkIsCanonical(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	src := filepath.Join(root, "out", "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	link := filepath.Join(root, "contentlink")
	if err := os.Symlink(src, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := Resolve(link, root, filepath.Join(root, "out"), "")
	require.NoError(t, err)

	assert.Equal(t, src, got.Content)
	assert.True(t, Within(got.Content, got.Output))
}

func TestWithin(t *testing.T) {
	tests := []struct {
		path, root string
		want       bool
	}{
		{"/a/b", "/a/b", true},
		{"/a/b/output", "/a/b", true},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
		{"/x/y", "/a/b", false},
		{"/a/b/..foo", "/a/b", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Within(filepath.FromSlash(tt.path), filepath.FromSlash(tt.root)), "%s in %s", tt.path, tt.root)
	}
}
