package extract

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// plainPDFSource reads page text sequentially. It has no table detection,
// so the extractor's table formatting is skipped for its pages.
type plainPDFSource struct{}

func (plainPDFSource) Pages(data []byte) ([]Page, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	pages := make([]Page, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not lose the rest of the
			// document; it contributes nothing.
			continue
		}
		pages = append(pages, Page{Text: text})
	}
	return pages, nil
}
