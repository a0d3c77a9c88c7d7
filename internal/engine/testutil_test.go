package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fredkneeland/beja-dict-parser/internal/lexicon"
)

// Shared fixtures mirroring the production defaults for the Beja scans.

func testVocab() *Vocabulary {
	return NewVocabulary(VocabularyConfig{
		POS:            []string{"Adj", "Adv", "Con", "Dem", "Intj", "N", "Num", "Phr", "Pps", "Pron", "V"},
		Regions:        []string{"Er", "Su", "Eg"},
		Classes:        []string{"Cush", "Sem"},
		Genders:        []string{"m", "f", "mf"},
		Numbers:        []string{"sg", "pl"},
		POSAliases:     map[string]string{"Ady": "Adv"},
		RegionAliases:  map[string]string{"S": "Su"},
		NeverHeadwords: []string{"sg", "pl", "m", "f", "mf", "-", "_", "="},
		Placeholders:   []string{"-", "_"},
	})
}

func testArbiter(t *testing.T, vocab *Vocabulary) *Arbiter {
	t.Helper()
	arb, err := NewArbiter(ArbiterConfig{
		StrongCommonness:   5.0,
		ModerateCommonness: 4.5,
		MaxHeadwordTokens:  3,
		OrthographicPatterns: []string{
			`(aa|ii|uu|oo|ee)`,
			`'`,
			`/t$`,
		},
		HeadwordShape: `^[a-z][a-z']*(?:/[a-z])?$`,
	}, lexicon.DefaultEnglish(), vocab)
	require.NoError(t, err)
	return arb
}

func testClassifier(t *testing.T, vocab *Vocabulary) *Classifier {
	t.Helper()
	cls, err := NewClassifier(ClassifierConfig{
		Delimiter:                   "*",
		WeakStartRequiresAlphabetic: true,
		PrimaryScriptPattern:        `[A-Za-z]`,
		SecondaryScriptPattern:      `[\x{0600}-\x{06FF}]`,
	}, vocab)
	require.NoError(t, err)
	return cls
}

func testExtractor(t *testing.T, vocab *Vocabulary, sink IssueSink) *Extractor {
	t.Helper()
	ext, err := NewExtractor(ExtractorConfig{
		Delimiter:              "*",
		PrimaryScriptPattern:   `[A-Za-z]`,
		SecondaryScriptPattern: `[\x{0600}-\x{06FF}]`,
		SecondaryRunPattern:    `[\x{0600}-\x{06FF}][\x{0600}-\x{06FF}\s،؛()\-]*`,
	}, vocab, sink)
	require.NoError(t, err)
	return ext
}

func testSegmenter(t *testing.T, sink IssueSink) *Segmenter {
	t.Helper()
	vocab := testVocab()
	return NewSegmenter(testClassifier(t, vocab), testArbiter(t, vocab), "*", sink)
}

func issueKinds(issues []Issue) []IssueKind {
	kinds := make([]IssueKind, len(issues))
	for i, is := range issues {
		kinds[i] = is.Kind
	}
	return kinds
}
