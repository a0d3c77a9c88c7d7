package engine

import "strings"

// VocabularyConfig lists the closed tag vocabularies and their OCR alias
// maps for one dictionary.
type VocabularyConfig struct {
	POS            []string
	Regions        []string
	Classes        []string
	Genders        []string
	Numbers        []string
	POSAliases     map[string]string
	RegionAliases  map[string]string
	NeverHeadwords []string
	Placeholders   []string
}

// Vocabulary is the compiled, immutable form of VocabularyConfig. The
// never-headword set is the configured exclusions plus every tag token:
// a line starting with a tag is always a continuation.
type Vocabulary struct {
	pos            map[string]bool
	regions        map[string]bool
	classes        map[string]bool
	genders        map[string]bool
	numbers        map[string]bool
	posAliases     map[string]string
	regionAliases  map[string]string
	neverHeadwords map[string]bool
	placeholders   map[string]bool
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// NewVocabulary compiles a VocabularyConfig.
func NewVocabulary(cfg VocabularyConfig) *Vocabulary {
	v := &Vocabulary{
		pos:            toSet(cfg.POS),
		regions:        toSet(cfg.Regions),
		classes:        toSet(cfg.Classes),
		genders:        toSet(cfg.Genders),
		numbers:        toSet(cfg.Numbers),
		posAliases:     cfg.POSAliases,
		regionAliases:  cfg.RegionAliases,
		neverHeadwords: toSet(cfg.NeverHeadwords),
		placeholders:   toSet(cfg.Placeholders),
	}
	for t := range v.pos {
		v.neverHeadwords[t] = true
	}
	for t := range v.regions {
		v.neverHeadwords[t] = true
	}
	for t := range v.classes {
		v.neverHeadwords[t] = true
	}
	return v
}

// Region resolves a token to a canonical region tag, applying OCR aliases.
func (v *Vocabulary) Region(tok string) (string, bool) {
	if a, ok := v.regionAliases[tok]; ok {
		tok = a
	}
	if v.regions[tok] {
		return tok, true
	}
	return "", false
}

// POS resolves a token to a canonical part-of-speech tag, applying OCR
// aliases.
func (v *Vocabulary) POS(tok string) (string, bool) {
	if a, ok := v.posAliases[tok]; ok {
		tok = a
	}
	if v.pos[tok] {
		return tok, true
	}
	return "", false
}

// Class reports whether a token is an etymological class tag.
func (v *Vocabulary) Class(tok string) (string, bool) {
	if v.classes[tok] {
		return tok, true
	}
	return "", false
}

// Gender resolves a token to a gender tag, tolerating a trailing OCR "?".
func (v *Vocabulary) Gender(tok string) (string, bool) {
	tok = strings.TrimSuffix(tok, "?")
	if v.genders[tok] {
		return tok, true
	}
	return "", false
}

// Number reports whether a token is a number tag.
func (v *Vocabulary) Number(tok string) (string, bool) {
	if v.numbers[tok] {
		return tok, true
	}
	return "", false
}

// IsTag reports whether a token belongs to any tag vocabulary.
func (v *Vocabulary) IsTag(tok string) bool {
	if _, ok := v.Region(tok); ok {
		return true
	}
	if _, ok := v.POS(tok); ok {
		return true
	}
	if _, ok := v.Class(tok); ok {
		return true
	}
	if _, ok := v.Gender(tok); ok {
		return true
	}
	_, ok := v.Number(tok)
	return ok
}

// NeverHeadword reports whether a token is hard-excluded from starting an
// entry.
func (v *Vocabulary) NeverHeadword(tok string) bool {
	return v.neverHeadwords[tok]
}

// Placeholder reports whether a token is an OCR placeholder mark.
func (v *Vocabulary) Placeholder(tok string) bool {
	return v.placeholders[tok]
}
