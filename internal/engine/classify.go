package engine

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// LineClass is the structural class of one normalized line.
type LineClass int

const (
	Ignorable LineClass = iota
	RegionOnly
	// DigitPrefixed is transient: Classify strips the digit run, records it
	// in Classification.Digits, and reclassifies the remainder, so callers
	// only ever see the resolved class.
	DigitPrefixed
	EntryHeadCandidate
	Continuation
)

func (c LineClass) String() string {
	switch c {
	case Ignorable:
		return "ignorable"
	case RegionOnly:
		return "region_only"
	case DigitPrefixed:
		return "digit_prefixed"
	case EntryHeadCandidate:
		return "entry_head_candidate"
	case Continuation:
		return "continuation"
	default:
		return "unknown"
	}
}

// Classification carries the line class plus the auxiliary extractions the
// segmenter needs: the text after digit stripping and gender-noise repair,
// the stripped digit run, region tokens in order of appearance, and the
// head zone (text before the first delimiter).
type Classification struct {
	Class              LineClass
	Text               string
	Digits             string
	Regions            []string
	HeadZone           string
	Delims             int
	Strong             bool
	WeakOK             bool
	FirstTokenExcluded bool
}

// ClassifierConfig holds the classifier knobs.
type ClassifierConfig struct {
	Delimiter string
	// WeakStartRequiresAlphabetic gates single-delimiter entry starts on
	// alphabetic content after the delimiter.
	WeakStartRequiresAlphabetic bool
	PrimaryScriptPattern        string
	SecondaryScriptPattern      string
}

// Classifier assigns a LineClass to normalized lines. Safe for concurrent
// use: all state is immutable after construction.
type Classifier struct {
	cfg       ClassifierConfig
	vocab     *Vocabulary
	delim     rune
	primary   *regexp.Regexp
	secondary *regexp.Regexp
	digitRe   *regexp.Regexp
	noiseRe   *regexp.Regexp
}

// genderNoisePattern matches the OCR artifact where a stray gender mark
// fuses onto the headword, e.g. "*m_aagil * mature" or "*f aagilt * ...".
const genderNoisePattern = `^\*(?:mf|m|f|n)[ _]+([a-z][a-z']*(?:/[a-z])?)\b\s*(.*)$`

// NewClassifier compiles a Classifier.
func NewClassifier(cfg ClassifierConfig, vocab *Vocabulary) (*Classifier, error) {
	if len([]rune(cfg.Delimiter)) != 1 {
		return nil, fmt.Errorf("classifier: delimiter must be a single rune, got %q", cfg.Delimiter)
	}
	primary, err := regexp.Compile(cfg.PrimaryScriptPattern)
	if err != nil {
		return nil, fmt.Errorf("classifier: primary script pattern: %w", err)
	}
	secondary, err := regexp.Compile(cfg.SecondaryScriptPattern)
	if err != nil {
		return nil, fmt.Errorf("classifier: secondary script pattern: %w", err)
	}
	return &Classifier{
		cfg:       cfg,
		vocab:     vocab,
		delim:     []rune(cfg.Delimiter)[0],
		primary:   primary,
		secondary: secondary,
		digitRe:   regexp.MustCompile(`^(\d+)\s*(.*)$`),
		noiseRe:   regexp.MustCompile(genderNoisePattern),
	}, nil
}

// isPageFurniture reports whether a line is a bare page number or similar
// digit-and-punctuation junk emitted by the scanner.
func isPageFurniture(text string) bool {
	if len([]rune(text)) > 6 {
		return false
	}
	hasDigit := false
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			return false
		case unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r):
		default:
			return false
		}
	}
	return hasDigit
}

// Classify classifies one normalized line.
func (c *Classifier) Classify(text string) Classification {
	text = strings.TrimSpace(text)
	if text == "" || isPageFurniture(text) {
		return Classification{Class: Ignorable, Text: text}
	}

	// Leading digit runs are line-number bleed: strip and reclassify.
	if m := c.digitRe.FindStringSubmatch(text); m != nil {
		rest := c.Classify(m[2])
		rest.Digits = m[1] + rest.Digits
		return rest
	}

	if m := c.noiseRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1] + " " + m[2])
	}

	cl := Classification{Class: Continuation, Text: text}
	cl.Delims = strings.Count(text, c.cfg.Delimiter)

	tokens := c.splitTokens(text)
	for _, tok := range tokens {
		if region, ok := c.vocab.Region(tok); ok {
			cl.Regions = append(cl.Regions, region)
		}
	}

	if len(tokens) > 0 && c.regionOnly(tokens) {
		cl.Class = RegionOnly
		return cl
	}

	fields := strings.Fields(text)
	if len(fields) > 0 {
		cl.FirstTokenExcluded = c.vocab.NeverHeadword(fields[0])
	}

	var after string
	if cl.Delims > 0 {
		head, tail, _ := strings.Cut(text, c.cfg.Delimiter)
		cl.HeadZone = strings.TrimSpace(head)
		after = tail
	}

	cl.Strong = c.strongSignal(cl.Delims, fields)
	if cl.Delims == 1 {
		cl.WeakOK = !c.cfg.WeakStartRequiresAlphabetic || c.hasAlphabetic(after)
	}

	if cl.Delims > 0 && !cl.FirstTokenExcluded && (cl.Strong || cl.WeakOK) {
		cl.Class = EntryHeadCandidate
	}
	return cl
}

// splitTokens splits on whitespace and the delimiter so "aat * Er" and
// "aat*Er" tokenize the same way.
func (c *Classifier) splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == c.delim
	})
}

// regionOnly reports whether every token is a region tag or a placeholder,
// with at least one region present.
func (c *Classifier) regionOnly(tokens []string) bool {
	hasRegion := false
	for _, tok := range tokens {
		if _, ok := c.vocab.Region(tok); ok {
			hasRegion = true
			continue
		}
		if c.vocab.Placeholder(tok) {
			continue
		}
		return false
	}
	return hasRegion
}

// strongSignal: two or more delimiters, or any token from the POS, class,
// or region vocabularies.
func (c *Classifier) strongSignal(delims int, fields []string) bool {
	if delims >= 2 {
		return true
	}
	for _, f := range fields {
		tok := cleanToken(f)
		if _, ok := c.vocab.POS(tok); ok {
			return true
		}
		if _, ok := c.vocab.Class(tok); ok {
			return true
		}
		if _, ok := c.vocab.Region(tok); ok {
			return true
		}
	}
	return false
}

func (c *Classifier) hasAlphabetic(s string) bool {
	return c.primary.MatchString(s) || c.secondary.MatchString(s)
}
