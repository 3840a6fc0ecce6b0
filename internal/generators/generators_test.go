package generators

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/settings"
	"github.com/ScorpionResponse/pelican/internal/themes"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

func TestDefaultPipelineOrder(t *testing.T) {
	s := settings.Defaults()

	assert.Equal(t, []string{"articles", "pages", "static"}, Default().Names(s))

	s[settings.KeyPDFGenerator] = true
	assert.Equal(t, []string{"articles", "pages", "static", "pdf"}, Default().Names(s))

	gens, err := Default().Build(s, Config{Context: Context{}, Settings: s})
	require.NoError(t, err)
	require.Len(t, gens, 4)
	assert.IsType(t, &PDFGenerator{}, gens[3])
}

func TestRegistryRegisterReplacesInPlace(t *testing.T) {
	stub := func(name string) Factory {
		return func(Config) (Generator, error) { return named(name), nil }
	}
	r := NewRegistry(
		Descriptor{Name: "a", New: stub("a")},
		Descriptor{Name: "b", New: stub("b")},
	)
	r.Register(Descriptor{Name: "a", New: stub("a2")})

	gens, err := r.Build(settings.Settings{}, Config{})
	require.NoError(t, err)
	require.Len(t, gens, 2)
	assert.Equal(t, "a2", gens[0].Name())
	assert.Equal(t, "b", gens[1].Name())
}

type named string

func (n named) Name() string { return string(n) }

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// runPipeline runs both phases the way a build does.
func runPipeline(t *testing.T, s settings.Settings, contentDir, outDir string) Context {
	t.Helper()
	themeBase, err := themes.Install(t.TempDir())
	require.NoError(t, err)

	shared := Context(s.Clone())
	cfg := Config{
		Context:     shared,
		Settings:    s,
		ContentPath: contentDir,
		ThemePath:   filepath.Join(themeBase, themes.Bundled),
		OutputPath:  outDir,
		Markup:      []string{"md", "html"},
	}
	gens, err := Default().Build(s, cfg)
	require.NoError(t, err)

	ctx := context.Background()
	for _, g := range gens {
		if cg, ok := g.(ContextGenerator); ok {
			require.NoError(t, cg.GenerateContext(ctx), g.Name())
		}
	}
	w := writer.New(outDir, s)
	for _, g := range gens {
		if og, ok := g.(OutputGenerator); ok {
			require.NoError(t, og.GenerateOutput(ctx, w), g.Name())
		}
	}
	return shared
}

func TestPipelineWritesSite(t *testing.T) {
	contentDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, filepath.Join(contentDir, "first.md"), "---\ntitle: First Post\ndate: 2024-01-02\ntags: [go]\n---\nHello **world**.\n")
	writeFile(t, filepath.Join(contentDir, "first-fr.md"), "---\ntitle: First Post\nlang: fr\ndate: 2024-01-02\n---\nBonjour.\n")
	writeFile(t, filepath.Join(contentDir, "second.md"), "Title: Second Post\nDate: 2024-02-03\nCategory: Notes\n\nLater.\n")
	writeFile(t, filepath.Join(contentDir, "draft.md"), "---\ntitle: Draft\nstatus: draft\n---\nWIP\n")
	writeFile(t, filepath.Join(contentDir, "pages", "about.md"), "---\ntitle: About\n---\nAbout me.\n")
	writeFile(t, filepath.Join(contentDir, "pages", "secret.md"), "---\ntitle: Secret\nstatus: hidden\n---\nShh.\n")
	writeFile(t, filepath.Join(contentDir, "images", "logo.png"), "png")
	writeFile(t, filepath.Join(contentDir, "notes.rst"), "ignored")

	s := settings.Defaults()
	s[settings.KeyPath] = contentDir
	shared := runPipeline(t, s, contentDir, outDir)

	articles := shared["articles"].([]*content.Content)
	require.Len(t, articles, 2)
	assert.Equal(t, "Second Post", articles[0].Title, "newest first")
	assert.Len(t, shared["translations"], 1)
	assert.Len(t, shared["drafts"], 1)
	assert.Len(t, shared["pages"], 1)
	assert.Len(t, shared["hidden_pages"], 1)

	for _, f := range []string{
		"index.html",
		"first-post.html",
		"first-post-fr.html",
		"second-post.html",
		"pages/about.html",
		"pages/secret.html",
		"category/notes.html",
		"category/misc.html",
		"tag/go.html",
		"images/logo.png",
		"theme/css/main.css",
	} {
		assert.FileExists(t, filepath.Join(outDir, filepath.FromSlash(f)))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "draft.html"))

	body, err := os.ReadFile(filepath.Join(outDir, "first-post.html"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "<strong>world</strong>")
	assert.Contains(t, string(body), "first-post-fr.html")

	assert.Len(t, shared["static_files"], 2)
}

func TestRebuildIgnoresOutputNestedInContent(t *testing.T) {
	contentDir := t.TempDir()
	outDir := filepath.Join(contentDir, "output")
	writeFile(t, filepath.Join(contentDir, "post.md"), "---\ntitle: Hello\ndate: 2024-01-02\n---\nHi.\n")

	s := settings.Defaults()
	s[settings.KeyPath] = contentDir
	s["STATIC_PATHS"] = []string{"."}
	for build := 1; build <= 3; build++ {
		shared := runPipeline(t, s, contentDir, outDir)
		assert.Len(t, shared["articles"], 1, "build %d", build)
		for _, f := range shared["static_files"].([]StaticFile) {
			assert.NotContains(t, f.SaveAs, "output/", "build %d", build)
		}
	}
	assert.FileExists(t, filepath.Join(outDir, "hello.html"))
}

func TestPipelineWritesPDFs(t *testing.T) {
	contentDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, filepath.Join(contentDir, "post.md"), "---\ntitle: Printable\ndate: 2024-01-02\n---\nSome text.\n")
	writeFile(t, filepath.Join(contentDir, "pages", "about.md"), "---\ntitle: About\n---\nAbout me.\n")

	s := settings.Defaults()
	s[settings.KeyPDFGenerator] = true
	runPipeline(t, s, contentDir, outDir)

	for _, f := range []string{"pdf/printable.pdf", "pdf/about.pdf"} {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(f)))
		require.NoError(t, err, f)
		assert.Equal(t, "%PDF", string(data[:4]))
	}
}

func TestCollectFilesSkipsExcludedAndHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "")
	writeFile(t, filepath.Join(root, "b.txt"), "")
	writeFile(t, filepath.Join(root, "pages", "p.md"), "")
	writeFile(t, filepath.Join(root, ".git", "x.md"), "")
	writeFile(t, filepath.Join(root, "sub", "c.MD"), "")

	files, err := collectFiles(root, "", []string{"pages"}, []string{"md"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.md"), filepath.Join(root, "sub", "c.MD")}, files)

	files, err = collectFiles(root, "missing", nil, []string{"md"}, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectFilesSkipsOutputDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "")
	writeFile(t, filepath.Join(root, "output", "a.html"), "")
	writeFile(t, filepath.Join(root, "output", "sub", "b.md"), "")

	files, err := collectFiles(root, "", nil, []string{"md", "html"}, filepath.Join(root, "output"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.md")}, files)

	// content inside the output directory is still read
	files, err = collectFiles(filepath.Join(root, "output"), "", nil, []string{"md"}, root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "output", "sub", "b.md")}, files)
}
