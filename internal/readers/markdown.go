package readers

import (
	"bytes"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownReader renders Markdown with goldmark. Metadata comes from YAML
// front matter or, failing that, from a leading block of "Key: value" lines.
type MarkdownReader struct {
	md goldmark.Markdown
}

// NewMarkdownReader returns a reader with GFM, footnotes and typographer enabled.
func NewMarkdownReader() *MarkdownReader {
	return &MarkdownReader{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (r *MarkdownReader) Extensions() []string {
	return []string{"md", "markdown", "mkd", "mdown"}
}

func (r *MarkdownReader) Read(_ string, raw []byte) (*Document, error) {
	fm, body, had, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if had {
		if fields, err = parseYAMLFrontMatter(fm); err != nil {
			return nil, err
		}
	} else {
		fields, fm, body = splitHeaderBlock(raw)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, err
	}

	return &Document{
		Metadata:    fields,
		Body:        buf.String(),
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(bytes.TrimRight(fm, "\r\n")), string(body)),
	}, nil
}
