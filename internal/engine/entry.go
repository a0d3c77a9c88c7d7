package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SourceRef locates an entry or issue in the scanned document. EndLine 0 is
// a sentinel meaning the span was force-flushed at a page boundary and its
// true end is unresolved.
type SourceRef struct {
	Page      int `json:"page"`
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Entry is one structured dictionary entry. It is immutable once written by
// the output stage; the repair pass is the only mutator before that point.
type Entry struct {
	ID                    string    `json:"id"`
	Headword              string    `json:"headword"`
	HeadwordParts         []string  `json:"headword_parts,omitempty"`
	TranslationsPrimary   []string  `json:"translations_primary,omitempty"`
	TranslationsSecondary []string  `json:"translations_secondary,omitempty"`
	POS                   []string  `json:"pos,omitempty"`
	Gender                string    `json:"gender,omitempty"`
	Number                string    `json:"number,omitempty"`
	Class                 string    `json:"class,omitempty"`
	Regions               []string  `json:"regions,omitempty"`
	RawLines              []string  `json:"raw_lines"`
	Source                SourceRef `json:"source"`
}

// entryNamespace seeds deterministic entry IDs so re-running the engine on
// the same input yields the same identifiers.
var entryNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// EntryID derives a deterministic UUID from an entry's source coordinates
// and headword.
func EntryID(src SourceRef, headword string) string {
	data := fmt.Sprintf("%d:%d:%d:%s", src.Page, src.StartLine, src.EndLine, headword)
	return uuid.NewSHA1(entryNamespace, []byte(data)).String()
}

// DraftBlock is the unit of in-progress segmentation: a candidate span of
// lines believed to form one entry. At most one block is open at a time.
type DraftBlock struct {
	Page          int      `json:"page"`
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	HeadwordGuess string   `json:"headword_guess,omitempty"`
	Lines         []string `json:"lines"`
	RegionsGuess  []string `json:"regions_guess,omitempty"`
}

func dedupePreserve(xs []string) []string {
	var out []string
	seen := make(map[string]bool, len(xs))
	for _, x := range xs {
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

// cleanToken strips enclosing punctuation from a token. Apostrophes stay:
// they are meaningful in target-language orthography.
func cleanToken(t string) string {
	return strings.Trim(t, ".,;:!?\"()[]{}")
}
