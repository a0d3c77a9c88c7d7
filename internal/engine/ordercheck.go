package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// OrderValidatorConfig holds the alternate line-level front-end knobs.
type OrderValidatorConfig struct {
	// ResyncThreshold is the number of consecutive rejections after which
	// the next plausible candidate is accepted unconditionally as a new
	// alphabetical anchor.
	ResyncThreshold int
	// POSMarkerPattern recognizes inline part-of-speech markers that make
	// a line entry-like.
	POSMarkerPattern string
	// ContinuationPrefixPattern recognizes lines that continue a previous
	// entry (cross-references, number forms) and can never start one.
	ContinuationPrefixPattern string
	// BadHeadwords are known OCR junk first tokens.
	BadHeadwords []string
	// HeadwordShape is the surface shape an accepted headword must match.
	HeadwordShape string
	// SecondaryScriptPattern marks lines that belong to the gloss column.
	SecondaryScriptPattern string
}

// OrderValidator is the alternate front-end for dictionary layouts where
// one line is one entry and headwords run in alphabetical order. It tracks
// the initial letter of the last accepted headword and only admits lines
// whose initial is the same letter or its immediate successor; a bounded
// run of rejections forces a resync so one bad anchor cannot poison the
// rest of the document.
type OrderValidator struct {
	cfg       OrderValidatorConfig
	sink      IssueSink
	posRe     *regexp.Regexp
	contRe    *regexp.Regexp
	shapeRe   *regexp.Regexp
	secondRe  *regexp.Regexp
	digitRe   *regexp.Regexp
	bad       map[string]bool
	last      byte
	rejects   int
	accepted  int
	rejected  int
}

// NewOrderValidator compiles an OrderValidator.
func NewOrderValidator(cfg OrderValidatorConfig, sink IssueSink) (*OrderValidator, error) {
	if cfg.ResyncThreshold < 1 {
		return nil, fmt.Errorf("order validator: resync_threshold must be >= 1, got %d", cfg.ResyncThreshold)
	}
	if sink == nil {
		sink = DiscardIssues
	}
	posRe, err := regexp.Compile(cfg.POSMarkerPattern)
	if err != nil {
		return nil, fmt.Errorf("order validator: pos marker pattern: %w", err)
	}
	contRe, err := regexp.Compile(cfg.ContinuationPrefixPattern)
	if err != nil {
		return nil, fmt.Errorf("order validator: continuation prefix pattern: %w", err)
	}
	shapeRe, err := regexp.Compile(cfg.HeadwordShape)
	if err != nil {
		return nil, fmt.Errorf("order validator: headword shape: %w", err)
	}
	secondRe, err := regexp.Compile(cfg.SecondaryScriptPattern)
	if err != nil {
		return nil, fmt.Errorf("order validator: secondary script pattern: %w", err)
	}
	return &OrderValidator{
		cfg:      cfg,
		sink:     sink,
		posRe:    posRe,
		contRe:   contRe,
		shapeRe:  shapeRe,
		secondRe: secondRe,
		digitRe:  regexp.MustCompile(`\d`),
		bad:      toSet(cfg.BadHeadwords),
	}, nil
}

// Stats reports how many lines were accepted and rejected so far.
func (v *OrderValidator) Stats() (accepted, rejected int) {
	return v.accepted, v.rejected
}

// Feed offers one normalized line to the validator. It returns the entry
// when the line is accepted as an entry head, or nil when the line is
// rejected; every rejection is logged and counted toward the resync bound.
func (v *OrderValidator) Feed(line NormalizedLine) *Entry {
	entry, reason := v.parse(line)
	if entry == nil {
		v.reject(line, IssueRejectedLine, reason)
		return nil
	}

	initial := entry.Headword[0]
	switch {
	case v.last == 0:
		// First accepted headword anchors the sequence.
	case v.rejects >= v.cfg.ResyncThreshold:
		v.sink.Record(Issue{
			Kind: IssueResyncAnchor,
			Detail: map[string]string{
				"headword":      entry.Headword,
				"previous":      string(v.last),
				"rejected_run":  fmt.Sprintf("%d", v.rejects),
			},
			Source: entry.Source,
		})
	case !v.plausibleSuccessor(initial):
		v.reject(line, IssueImplausibleLetterJump, fmt.Sprintf("%q after %q", initial, v.last))
		return nil
	}

	v.last = initial
	v.rejects = 0
	v.accepted++
	return entry
}

// plausibleSuccessor: same initial or the immediately following letter.
func (v *OrderValidator) plausibleSuccessor(initial byte) bool {
	return initial == v.last || (v.last < 'z' && initial == v.last+1)
}

func (v *OrderValidator) reject(line NormalizedLine, kind IssueKind, reason string) {
	v.rejects++
	v.rejected++
	v.sink.Record(Issue{
		Kind:   kind,
		Detail: map[string]string{"line": line.Text, "reason": reason},
		Source: SourceRef{Page: line.Page, StartLine: line.Index, EndLine: line.Index},
	})
}

// parse applies the plausibility predicates and builds a candidate entry.
// The empty-reason return means the line passed every gate.
func (v *OrderValidator) parse(line NormalizedLine) (*Entry, string) {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return nil, "empty"
	}
	if v.contRe.MatchString(text) {
		return nil, "continuation_prefix"
	}

	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return nil, "too_short"
	}
	posMarker := v.posRe.FindString(text)
	if posMarker == "" && !strings.ContainsAny(text, ",;:.") {
		return nil, "not_entry_like"
	}

	headword := strings.ToLower(cleanToken(tokens[0]))
	switch {
	case headword == "":
		return nil, "empty_headword"
	case v.bad[headword]:
		return nil, "junk_headword"
	case v.digitRe.MatchString(headword):
		return nil, "digit_in_headword"
	case v.secondRe.MatchString(headword):
		return nil, "secondary_script_headword"
	case !v.shapeRe.MatchString(headword):
		return nil, "headword_shape"
	}

	src := SourceRef{Page: line.Page, StartLine: line.Index, EndLine: line.Index}
	entry := &Entry{
		Headword:      headword,
		HeadwordParts: []string{headword},
		RawLines:      []string{text},
		Source:        src,
	}
	if posMarker != "" {
		entry.POS = []string{strings.TrimSuffix(strings.ToLower(posMarker), ".")}
	}
	if rest := strings.TrimSpace(strings.TrimPrefix(text, tokens[0])); rest != "" {
		entry.TranslationsPrimary = []string{rest}
	}
	entry.ID = EntryID(src, headword)
	return entry, ""
}
