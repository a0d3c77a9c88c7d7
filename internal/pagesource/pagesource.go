// Package pagesource supplies ordered per-page line lists to the parser
// from either a directory of extracted page files or a PDF text layer.
package pagesource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformedInput marks unreadable or structurally unusable input, the
// one error class that aborts a run instead of landing in the issue log.
var ErrMalformedInput = errors.New("malformed input")

// Page is one scanned page as ordered raw OCR lines.
type Page struct {
	Number int
	Lines  []string
}

// Source yields the pages of one document in order.
type Source interface {
	Pages() ([]Page, error)
}

// DirSource reads page_NNNN.txt files from a directory, ordered by the
// number embedded in the filename.
type DirSource struct {
	Dir string
}

var pageFileRe = regexp.MustCompile(`^page_(\d+)\.txt$`)

// Pages implements Source.
func (s DirSource) Pages() ([]Page, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("pagesource: %w: read dir %s: %v", ErrMalformedInput, s.Dir, err)
	}

	var pages []Page
	for _, de := range entries {
		m := pageFileRe.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		data, err := os.ReadFile(filepath.Join(s.Dir, de.Name()))
		if err != nil {
			return nil, fmt.Errorf("pagesource: %w: read %s: %v", ErrMalformedInput, de.Name(), err)
		}
		pages = append(pages, Page{Number: num, Lines: splitLines(string(data))})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pagesource: %w: no page_NNNN.txt files in %s", ErrMalformedInput, s.Dir)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages, nil
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
