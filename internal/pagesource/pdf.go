package pagesource

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// PDFSource extracts the embedded text layer of a PDF page by page. It
// performs no OCR: pages without a text layer come back empty.
type PDFSource struct {
	Path string
	// FirstPage and LastPage bound the 1-based page range; zero values
	// mean the whole document.
	FirstPage int
	LastPage  int
}

// Pages implements Source.
func (s PDFSource) Pages() ([]Page, error) {
	doc, err := fitz.New(s.Path)
	if err != nil {
		return nil, fmt.Errorf("pagesource: %w: open pdf %s: %v", ErrMalformedInput, s.Path, err)
	}
	defer doc.Close()

	first := s.FirstPage
	if first < 1 {
		first = 1
	}
	last := s.LastPage
	if last < 1 || last > doc.NumPage() {
		last = doc.NumPage()
	}
	if first > last {
		return nil, fmt.Errorf("pagesource: %w: page range %d-%d out of bounds", ErrMalformedInput, s.FirstPage, s.LastPage)
	}

	pages := make([]Page, 0, last-first+1)
	for n := first; n <= last; n++ {
		text, err := doc.Text(n - 1)
		if err != nil {
			return nil, fmt.Errorf("pagesource: %w: extract page %d: %v", ErrMalformedInput, n, err)
		}
		pages = append(pages, Page{Number: n, Lines: splitLines(text)})
	}
	return pages, nil
}
