package generators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// PDFGenerator renders a PDF per article and page found in the shared
// context. It has no context phase of its own and must run after the
// generators that publish articles and pages.
type PDFGenerator struct {
	cfg    Config
	logger *slog.Logger
}

// NewPDF is the Factory for the pdf generator.
func NewPDF(cfg Config) (Generator, error) {
	return &PDFGenerator{cfg: cfg, logger: cfg.logger("pdf")}, nil
}

func (g *PDFGenerator) Name() string { return "pdf" }

// GenerateOutput writes one PDF per item to PDF_SAVE_AS.
func (g *PDFGenerator) GenerateOutput(ctx context.Context, w *writer.Writer) error {
	items := contentList(g.cfg.Context, "articles")
	items = append(items, contentList(g.cfg.Context, "pages")...)
	tmpl := g.cfg.Settings.String("PDF_SAVE_AS")
	for _, c := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, err := content.FormatTemplate(tmpl, c.Fields())
		if err != nil {
			return err
		}
		data, err := renderPDF(c)
		if err != nil {
			return fmt.Errorf("render pdf for %s: %w", c.SourcePath, err)
		}
		if err := w.WriteBytes(name, data); err != nil {
			return err
		}
	}
	g.logger.Info("PDFs rendered", logfields.Count(len(items)))
	return nil
}

func renderPDF(c *content.Content) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(c.Title, true)
	pdf.SetAuthor(c.Author, true)
	if !c.Date.IsZero() {
		pdf.SetCreationDate(c.Date)
		pdf.SetModificationDate(c.Date)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(c.Title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(content.PlainText(string(c.Body)), "\n") {
		pdf.MultiCell(0, 5.5, tr(para), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contentList(ctx Context, key string) []*content.Content {
	items, _ := ctx[key].([]*content.Content)
	return append([]*content.Content(nil), items...)
}
