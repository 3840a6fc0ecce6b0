package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanEraseOutput(t *testing.T) {
	tests := []struct {
		name            string
		content, output string
		want            bool
	}{
		{"separate trees", "/site/content", "/site/output", true},
		{"output inside content", "/a/b", "/a/b/output", false},
		{"content inside output", "/a/b/output/src", "/a/b/output", false},
		{"same directory", "/a/b", "/a/b", false},
		{"shared name prefix only", "/a/content", "/a/content-out", true},
		{"empty output", "/a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEraseOutput(filepath.FromSlash(tt.content), filepath.FromSlash(tt.output)))
		})
	}
}

func TestCleanOutputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.html"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html"), nil, 0o644))

	require.NoError(t, CleanOutputDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, CleanOutputDir(filepath.Join(dir, "missing")))
}
