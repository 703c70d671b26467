package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"docchat/internal/domain"
)

// Page is the extracted content of one PDF page. Tables holds detected
// tables as rows of cells, first row being the header; Text is the page's
// free-form text.
type Page struct {
	Tables [][][]string
	Text   string
}

// PageSource yields the pages of a PDF document. Sources without
// structured-table support leave Page.Tables empty, which degrades the
// extractor to plain sequential page text.
type PageSource interface {
	Pages(data []byte) ([]Page, error)
}

// Extractor turns uploaded documents into a single normalized text blob.
// Detected table rows are re-rendered as "header: value | header: value"
// lines so that row data survives chunking next to its column labels.
type Extractor struct {
	pages  PageSource
	logger *zap.Logger
}

// New builds an extractor around the given PDF page source. A nil source
// selects the default plain-text source; table-aware extraction then
// depends on what the source reports per page.
func New(pages PageSource, logger *zap.Logger) *Extractor {
	if pages == nil {
		pages = plainPDFSource{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{pages: pages, logger: logger}
}

func (e *Extractor) Extract(doc domain.Document) (string, error) {
	switch doc.Kind {
	case domain.KindText:
		if !utf8.Valid(doc.Data) {
			return "", &domain.DecodeError{Name: doc.Name, Err: fmt.Errorf("invalid UTF-8")}
		}
		return string(doc.Data), nil
	case domain.KindPDF:
		pages, err := e.pages.Pages(doc.Data)
		if err != nil {
			return "", fmt.Errorf("read pdf %s: %w", doc.Name, err)
		}
		var b strings.Builder
		for _, p := range pages {
			renderPage(&b, p)
		}
		e.logger.Debug("extracted pdf",
			zap.String("document", doc.Name),
			zap.Int("pages", len(pages)),
			zap.Int("bytes", b.Len()),
		)
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported document kind %q", doc.Kind)
	}
}

func renderPage(b *strings.Builder, p Page) {
	for _, table := range p.Tables {
		if len(table) < 2 {
			continue
		}
		headers := table[0]
		for _, row := range table[1:] {
			line := renderRow(headers, row)
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n\n")
		}
	}
	if p.Text != "" {
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
}

// renderRow pairs each cell with its column header. Cells with an empty
// value or an empty/missing header are skipped; a row with no usable
// cells renders to nothing.
func renderRow(headers, row []string) string {
	parts := make([]string, 0, len(row))
	for i, cell := range row {
		if cell == "" || i >= len(headers) || headers[i] == "" {
			continue
		}
		parts = append(parts, headers[i]+": "+cell)
	}
	return strings.Join(parts, " | ")
}
