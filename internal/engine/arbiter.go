package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Zipfer supplies gloss-language commonness scores on the Zipf scale.
// Unknown words score 0.
type Zipfer interface {
	Zipf(word string) float64
}

// ArbiterConfig holds the language arbitration thresholds and patterns.
type ArbiterConfig struct {
	// StrongCommonness: a single gloss-language word at or above this Zipf
	// score with no orthographic signal is rejected as a headword.
	StrongCommonness float64
	// ModerateCommonness: the per-token bar used for the majority test on
	// multi-token candidates.
	ModerateCommonness float64
	MaxHeadwordTokens  int
	// OrthographicPatterns are regexes whose match count is the target-
	// language orthographic score of a token.
	OrthographicPatterns []string
	// HeadwordShape is the surface shape a headword token must satisfy.
	HeadwordShape string
}

// Arbiter decides whether a candidate token sequence is target-language
// (acceptable headword) or gloss-language leakage. It runs at entry-start
// gating and again during repair. Safe for concurrent use.
type Arbiter struct {
	cfg     ArbiterConfig
	lex     Zipfer
	vocab   *Vocabulary
	ortho   []*regexp.Regexp
	shapeRe *regexp.Regexp
}

// NewArbiter compiles an Arbiter.
func NewArbiter(cfg ArbiterConfig, lex Zipfer, vocab *Vocabulary) (*Arbiter, error) {
	if cfg.MaxHeadwordTokens < 1 {
		return nil, fmt.Errorf("arbiter: max_headword_tokens must be >= 1, got %d", cfg.MaxHeadwordTokens)
	}
	if cfg.ModerateCommonness > cfg.StrongCommonness {
		return nil, fmt.Errorf("arbiter: moderate threshold %.2f exceeds strong threshold %.2f",
			cfg.ModerateCommonness, cfg.StrongCommonness)
	}
	shapeRe, err := regexp.Compile(cfg.HeadwordShape)
	if err != nil {
		return nil, fmt.Errorf("arbiter: headword shape: %w", err)
	}
	ortho := make([]*regexp.Regexp, 0, len(cfg.OrthographicPatterns))
	for _, p := range cfg.OrthographicPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("arbiter: orthographic pattern %q: %w", p, err)
		}
		ortho = append(ortho, re)
	}
	return &Arbiter{cfg: cfg, lex: lex, vocab: vocab, ortho: ortho, shapeRe: shapeRe}, nil
}

// OrthographicScore counts the orthographic target-language signals present
// in a token.
func (a *Arbiter) OrthographicScore(token string) int {
	token = strings.ToLower(token)
	score := 0
	for _, re := range a.ortho {
		if re.MatchString(token) {
			score++
		}
	}
	return score
}

// Commonness returns the gloss-language Zipf score of a token, 0 when
// unknown.
func (a *Arbiter) Commonness(token string) float64 {
	return a.lex.Zipf(strings.ToLower(cleanToken(token)))
}

// IsHeadwordShaped reports whether a token matches the configured headword
// surface shape.
func (a *Arbiter) IsHeadwordShaped(token string) bool {
	return a.shapeRe.MatchString(token)
}

// IsGlossLeak reports whether a candidate headword is gloss-language
// leakage. A token with any orthographic signal is never rejected, no
// matter how common its spelling is in the gloss language. Multi-token
// candidates are rejected when the majority of tokens clear the moderate
// commonness bar and none carries an orthographic signal.
func (a *Arbiter) IsGlossLeak(candidate string) bool {
	tokens := strings.Fields(candidate)
	if len(tokens) == 0 {
		return false
	}
	maxOrtho := 0
	maxCommon := 0.0
	moderate := 0
	for _, tok := range tokens {
		if s := a.OrthographicScore(tok); s > maxOrtho {
			maxOrtho = s
		}
		c := a.Commonness(tok)
		if c > maxCommon {
			maxCommon = c
		}
		if c >= a.cfg.ModerateCommonness {
			moderate++
		}
	}
	if maxOrtho > 0 {
		return false
	}
	if maxCommon >= a.cfg.StrongCommonness {
		return true
	}
	return moderate*2 > len(tokens)
}

// ExtractHeadword pulls a headword from the zone before the first
// delimiter: greedy left-to-right over shape-conforming tokens, capped at
// the configured maximum, then leak-checked as a whole. Returns "" when no
// acceptable headword exists.
func (a *Arbiter) ExtractHeadword(headZone string) string {
	tokens := strings.Fields(headZone)
	if len(tokens) == 0 {
		return ""
	}
	if a.vocab.NeverHeadword(tokens[0]) {
		return ""
	}
	var parts []string
	for _, tok := range tokens {
		tok = strings.ReplaceAll(tok, `\`, "")
		if !a.shapeRe.MatchString(tok) || a.vocab.NeverHeadword(tok) {
			break
		}
		parts = append(parts, tok)
		if len(parts) == a.cfg.MaxHeadwordTokens {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}
	headword := strings.Join(parts, " ")
	if a.IsGlossLeak(headword) {
		return ""
	}
	return headword
}
