package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrthographicScore(t *testing.T) {
	arb := testArbiter(t, testVocab())

	tests := []struct {
		token string
		want  int
	}{
		{"aab", 1},
		{"t'a", 1},
		{"gwhar'aab", 2},
		{"tamas/t", 1},
		{"water", 0},
		{"women", 0},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, arb.OrthographicScore(tt.token))
		})
	}
}

func TestIsGlossLeak(t *testing.T) {
	arb := testArbiter(t, testVocab())

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"common english word", "women", true},
		{"very common english word", "the", true},
		{"target word with doubled vowel", "aab", false},
		{"target word with apostrophe", "t'a", false},
		{"unknown token without signal", "adal", false},
		{"majority common multi-token", "the women", true},
		{"minority common multi-token", "adal kwidir women", false},
		// Orthographic signal always wins over spelling commonness.
		{"common spelling with signal", "been", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, arb.IsGlossLeak(tt.candidate))
		})
	}
}

func TestExtractHeadword(t *testing.T) {
	arb := testArbiter(t, testVocab())

	tests := []struct {
		name string
		zone string
		want string
	}{
		{"single token", "aab", "aab"},
		{"multi token", "hamo t'a", "hamo t'a"},
		{"stops at shape violation", "aab Water more", "aab"},
		{"capped at three tokens", "ka ti mo ra", "ka ti mo"},
		{"never headword start", "pl aawi", ""},
		{"gloss leak rejected", "women", ""},
		{"empty zone", "   ", ""},
		{"backslash artifact stripped", `t\'a`, "t'a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, arb.ExtractHeadword(tt.zone))
		})
	}
}

func TestExtractHeadwordAcceptsSignalRegardlessOfThresholds(t *testing.T) {
	vocab := testVocab()
	arb, err := NewArbiter(ArbiterConfig{
		StrongCommonness:     0.1,
		ModerateCommonness:   0.1,
		MaxHeadwordTokens:    3,
		OrthographicPatterns: []string{`(aa|ii|uu|oo|ee)`, `'`},
		HeadwordShape:        `^[a-z][a-z']*(?:/[a-z])?$`,
	}, zeroZipf{}, vocab)
	assert.NoError(t, err)

	// Zero commonness plus at least one orthographic signal is accepted
	// however aggressive the thresholds are.
	assert.Equal(t, "gw'aab", arb.ExtractHeadword("gw'aab"))
}

type zeroZipf struct{}

func (zeroZipf) Zipf(string) float64 { return 0 }
