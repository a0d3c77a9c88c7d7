// Package engine implements the entry segmentation, language arbitration,
// repair, and tag extraction core for OCR-derived bilingual dictionary text.
package engine

import "strings"

// NormalizedLine is one cleaned OCR line with its position in the scan.
// Index counts only substantive lines within the page, starting at 1.
type NormalizedLine struct {
	Page  int
	Index int
	Text  string
}

// controlReplacer removes the bidi and zero-width control characters that
// OCR engines attach to digits and Arabic runs, and maps NBSP to a space.
var controlReplacer = strings.NewReplacer(
	" ", " ",
	"‎", "",
	"‏", "",
	"‪", "",
	"‫", "",
	"‬", "",
	"\ufeff", "",
)

// Normalize strips directional/zero-width control characters and collapses
// whitespace runs into single spaces.
func Normalize(text string) string {
	text = controlReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
