package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

type fakePages struct {
	pages []Page
	err   error
}

func (f fakePages) Pages(data []byte) ([]Page, error) { return f.pages, f.err }

func TestExtractPlainText(t *testing.T) {
	e := New(nil, nil)
	text, err := e.Extract(domain.Document{Name: "notes.txt", Kind: domain.KindText, Data: []byte("hello")})
	require.NoError(t, err)
	require.Equal(t, "hello", text)
}

func TestExtractEmptyTextDocument(t *testing.T) {
	e := New(nil, nil)
	text, err := e.Extract(domain.Document{Name: "empty.txt", Kind: domain.KindText, Data: nil})
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestExtractInvalidUTF8(t *testing.T) {
	e := New(nil, nil)
	_, err := e.Extract(domain.Document{Name: "bad.txt", Kind: domain.KindText, Data: []byte{0xff, 0xfe, 0xfd}})
	var decodeErr *domain.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "bad.txt", decodeErr.Name)
}

func TestExtractPDFTables(t *testing.T) {
	src := fakePages{pages: []Page{
		{
			Tables: [][][]string{{
				{"Item", "Calories", ""},
				{"Cheeseburger", "550", "ignored"},
				{"", "", ""},
				{"Shake", "", "x"},
			}},
			Text: "Menu nutrition facts.",
		},
		{Text: "Second page."},
	}}
	e := New(src, nil)
	text, err := e.Extract(domain.Document{Name: "menu.pdf", Kind: domain.KindPDF})
	require.NoError(t, err)

	// Row cells pair with their headers; the empty header column and the
	// all-empty row are skipped.
	require.Contains(t, text, "Item: Cheeseburger | Calories: 550\n\n")
	require.NotContains(t, text, ": ignored")
	require.NotContains(t, text, "Shake |")
	require.Contains(t, text, "Item: Shake\n\n")

	// Page order: tables before free text, pages concatenated.
	require.Less(t, strings.Index(text, "Item: Cheeseburger"), strings.Index(text, "Menu nutrition facts."))
	require.Less(t, strings.Index(text, "Menu nutrition facts."), strings.Index(text, "Second page."))
}

func TestExtractPDFPlainFallback(t *testing.T) {
	// A source without table support yields pages with free text only;
	// the output must carry the text and no key: value formatting.
	src := fakePages{pages: []Page{{Text: "Alpha."}, {Text: "Beta."}}}
	e := New(src, nil)
	text, err := e.Extract(domain.Document{Name: "plain.pdf", Kind: domain.KindPDF})
	require.NoError(t, err)
	require.Equal(t, "Alpha.\n\nBeta.\n\n", text)
	require.NotContains(t, text, ": ")
}

func TestExtractPDFReadError(t *testing.T) {
	src := fakePages{err: errors.New("corrupt xref")}
	e := New(src, nil)
	_, err := e.Extract(domain.Document{Name: "broken.pdf", Kind: domain.KindPDF})
	require.ErrorContains(t, err, "broken.pdf")
}

func TestExtractUnsupportedKind(t *testing.T) {
	e := New(nil, nil)
	_, err := e.Extract(domain.Document{Name: "a.bin", Kind: domain.Kind("binary")})
	require.Error(t, err)
}
