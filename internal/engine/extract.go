package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractorConfig holds the field and gloss extraction knobs.
type ExtractorConfig struct {
	Delimiter string
	// PrimaryScriptPattern matches any primary-script (gloss alphabet)
	// character.
	PrimaryScriptPattern string
	// SecondaryScriptPattern matches any secondary-script character.
	SecondaryScriptPattern string
	// SecondaryRunPattern matches a whole secondary-script gloss run
	// including its internal spacing and punctuation.
	SecondaryRunPattern string
}

// FieldSet is the tag and translation material extracted from a span of
// raw lines, before it is bound to a headword.
type FieldSet struct {
	TranslationsPrimary   []string
	TranslationsSecondary []string
	POS                   []string
	Gender                string
	Number                string
	Class                 string
	Regions               []string
}

// Extractor converts draft blocks into entries. Extraction is a pure
// function of the block and configuration: re-running it on the same
// lines yields the same fields.
type Extractor struct {
	cfg          ExtractorConfig
	vocab        *Vocabulary
	sink         IssueSink
	primaryRe    *regexp.Regexp
	secondaryRe  *regexp.Regexp
	secondaryRun *regexp.Regexp
}

// NewExtractor compiles an Extractor.
func NewExtractor(cfg ExtractorConfig, vocab *Vocabulary, sink IssueSink) (*Extractor, error) {
	if sink == nil {
		sink = DiscardIssues
	}
	primary, err := regexp.Compile(cfg.PrimaryScriptPattern)
	if err != nil {
		return nil, fmt.Errorf("extractor: primary script pattern: %w", err)
	}
	secondary, err := regexp.Compile(cfg.SecondaryScriptPattern)
	if err != nil {
		return nil, fmt.Errorf("extractor: secondary script pattern: %w", err)
	}
	run, err := regexp.Compile(cfg.SecondaryRunPattern)
	if err != nil {
		return nil, fmt.Errorf("extractor: secondary run pattern: %w", err)
	}
	return &Extractor{
		cfg:          cfg,
		vocab:        vocab,
		sink:         sink,
		primaryRe:    primary,
		secondaryRe:  secondary,
		secondaryRun: run,
	}, nil
}

// Extract builds an Entry from a draft block. A block without a headword
// guess cannot become an entry here (the repair pass handles those); it is
// logged and dropped. A block with a headword but no gloss in either
// script is kept and flagged.
func (e *Extractor) Extract(block DraftBlock) *Entry {
	src := SourceRef{Page: block.Page, StartLine: block.StartLine, EndLine: block.EndLine}
	if block.HeadwordGuess == "" {
		e.sink.Record(Issue{
			Kind:   IssueMissingHeadword,
			Detail: map[string]string{"lines": strings.Join(block.Lines, " | ")},
			Source: src,
		})
		return nil
	}

	fs := e.Fields(block.Lines)
	// Regions accumulated during segmentation win; token-derived regions
	// are the fallback.
	if len(block.RegionsGuess) > 0 {
		fs.Regions = block.RegionsGuess
	}

	entry := &Entry{
		Headword:              block.HeadwordGuess,
		HeadwordParts:         strings.Fields(block.HeadwordGuess),
		TranslationsPrimary:   fs.TranslationsPrimary,
		TranslationsSecondary: fs.TranslationsSecondary,
		POS:                   fs.POS,
		Gender:                fs.Gender,
		Number:                fs.Number,
		Class:                 fs.Class,
		Regions:               fs.Regions,
		RawLines:              append([]string(nil), block.Lines...),
		Source:                src,
	}
	entry.ID = EntryID(src, entry.Headword)

	if len(entry.TranslationsPrimary) == 0 && len(entry.TranslationsSecondary) == 0 {
		e.sink.Record(Issue{
			Kind:   IssueMissingGloss,
			Detail: map[string]string{"headword": entry.Headword},
			Source: src,
		})
	}
	return entry
}

// Fields extracts tags and translations from raw lines: join, split on the
// delimiter, tokenize, strip enclosing punctuation, then classify each
// token against the disjoint vocabularies.
func (e *Extractor) Fields(lines []string) FieldSet {
	var fs FieldSet
	joined := Normalize(strings.Join(lines, " "))

	var fields []string
	for _, f := range strings.Split(joined, e.cfg.Delimiter) {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}

	for _, field := range fields {
		for _, raw := range strings.Fields(field) {
			tok := cleanToken(raw)
			if tok == "" {
				continue
			}
			if region, ok := e.vocab.Region(tok); ok {
				fs.Regions = append(fs.Regions, region)
				continue
			}
			if pos, ok := e.vocab.POS(tok); ok {
				fs.POS = append(fs.POS, pos)
				continue
			}
			if class, ok := e.vocab.Class(tok); ok && fs.Class == "" {
				fs.Class = class
				continue
			}
			if gender, ok := e.vocab.Gender(tok); ok && fs.Gender == "" {
				fs.Gender = gender
				continue
			}
			if number, ok := e.vocab.Number(tok); ok && fs.Number == "" {
				fs.Number = number
			}
		}
	}
	fs.Regions = dedupePreserve(fs.Regions)
	fs.POS = dedupePreserve(fs.POS)

	for _, run := range e.secondaryRun.FindAllString(joined, -1) {
		if g := strings.Trim(strings.TrimSpace(run), ",;:()-"); g != "" {
			fs.TranslationsSecondary = append(fs.TranslationsSecondary, g)
		}
	}
	fs.TranslationsSecondary = dedupePreserve(fs.TranslationsSecondary)

	// The first field is headword territory; translation candidates come
	// from the rest.
	if len(fields) > 1 {
		for _, field := range fields[1:] {
			if !e.primaryRe.MatchString(field) {
				continue
			}
			if e.secondaryRe.MatchString(field) {
				continue
			}
			if e.allTags(field) {
				continue
			}
			if t := strings.Trim(field, " ,;:"); t != "" {
				fs.TranslationsPrimary = append(fs.TranslationsPrimary, t)
			}
		}
	}
	fs.TranslationsPrimary = dedupePreserve(fs.TranslationsPrimary)
	return fs
}

// allTags reports whether every token of a field belongs to a tag
// vocabulary.
func (e *Extractor) allTags(field string) bool {
	any := false
	for _, raw := range strings.Fields(field) {
		tok := cleanToken(raw)
		if tok == "" {
			continue
		}
		if !e.vocab.IsTag(tok) {
			return false
		}
		any = true
	}
	return any
}
