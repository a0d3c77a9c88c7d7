// Package lexicon provides gloss-language word commonness on the Zipf
// scale (log10 of occurrences per billion words). The segmentation arbiter
// uses these scores to tell English gloss leakage apart from target-
// language headwords.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Lexicon maps lowercase words to Zipf scores. Lookups for unknown words
// return 0.
type Lexicon struct {
	zipf map[string]float64
}

// New builds a Lexicon from an existing table. The map is used as-is.
func New(zipf map[string]float64) *Lexicon {
	return &Lexicon{zipf: zipf}
}

// Load reads a frequency table: one "word zipf" pair per line, blank lines
// and #-comments skipped.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", path, err)
	}
	defer f.Close()

	zipf := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("lexicon: %s:%d: want \"word zipf\", got %q", path, lineNo, line)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %s:%d: bad score: %w", path, lineNo, err)
		}
		zipf[strings.ToLower(fields[0])] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	return &Lexicon{zipf: zipf}, nil
}

// Zipf returns the commonness of a word, case-insensitive, tolerating
// enclosing punctuation. Unknown words score 0.
func (l *Lexicon) Zipf(word string) float64 {
	word = strings.ToLower(strings.Trim(word, ".,;:!?\"()[]{}"))
	return l.zipf[word]
}

// Len reports the table size.
func (l *Lexicon) Len() int { return len(l.zipf) }
