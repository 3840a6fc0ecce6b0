package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"False", true},
		{0, false},
		{2, true},
		{0.0, false},
		{[]any{}, false},
		{[]string{"x"}, true},
		{map[string]any{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truthy(tt.value), "%#v", tt.value)
	}
}

func TestAccessors(t *testing.T) {
	s := Settings{
		"STR":   "value",
		"NUM":   42,
		"FLOAT": 1.5,
		"LIST":  []any{"md", "html"},
		"CSV":   " md , rst ,,",
		"DUR":   "250ms",
		"SECS":  2,
	}

	assert.Equal(t, "value", s.String("STR"))
	assert.Equal(t, "42", s.String("NUM"))
	assert.Equal(t, "", s.String("MISSING"))
	assert.Equal(t, 42, s.Int("NUM", 0))
	assert.Equal(t, 7, s.Int("STR", 7))
	assert.Equal(t, []string{"md", "html"}, s.Strings("LIST"))
	assert.Equal(t, []string{"md", "rst"}, s.Strings("CSV"))
	assert.Nil(t, s.Strings("MISSING"))
	assert.Equal(t, 250*time.Millisecond, s.Duration("DUR", time.Second))
	assert.Equal(t, 2*time.Second, s.Duration("SECS", time.Second))
	assert.Equal(t, 1500*time.Millisecond, s.Duration("FLOAT", time.Second))
	assert.Equal(t, time.Second, s.Duration("MISSING", time.Second))
}

func TestClone_IsolatesNestedValues(t *testing.T) {
	s := Settings{
		"LIST": []string{"a"},
		"MAP":  map[string]any{"k": []any{"v"}},
	}

	c := s.Clone()
	c["LIST"].([]string)[0] = "changed"
	c["MAP"].(map[string]any)["k"].([]any)[0] = "changed"
	c["NEW"] = true

	assert.Equal(t, "a", s["LIST"].([]string)[0])
	assert.Equal(t, "v", s["MAP"].(map[string]any)["k"].([]any)[0])
	assert.NotContains(t, s, "NEW")
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PELICAN_TEST_SITENAME", "From Env")
	file := filepath.Join(dir, "pelican.yaml")
	content := `SITENAME: ${PELICAN_TEST_SITENAME}
PATH: content
OUTPUT_PATH: /abs/output
THEME: themes/custom
PDF_GENERATOR: true
MARKUP: [md]
lowercase_ignored: 1
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	s, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "From Env", s.String("SITENAME"))
	assert.Equal(t, filepath.Join(dir, "content"), s.String(KeyPath))
	assert.Equal(t, "/abs/output", s.String(KeyOutputPath))
	assert.Equal(t, filepath.Join(dir, "themes/custom"), s.String(KeyTheme))
	assert.True(t, s.Bool(KeyPDFGenerator))
	assert.Equal(t, []string{"md"}, s.Strings(KeyMarkup))
	assert.NotContains(t, s, "lowercase_ignored")
	assert.Equal(t, "{slug}.html", s.String(KeyArticleURL))
}

func TestLoad_MissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_InvalidYAMLIsConfigError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("PATH: [unclosed"), 0o644))

	_, err := Load(file)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}
