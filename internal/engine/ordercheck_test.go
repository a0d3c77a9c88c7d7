package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderValidator(t *testing.T, threshold int, sink IssueSink) *OrderValidator {
	t.Helper()
	v, err := NewOrderValidator(OrderValidatorConfig{
		ResyncThreshold:           threshold,
		POSMarkerPattern:          `(?i)\b(n|v|adj|adv|pron|prep|conj|interj)\.`,
		ContinuationPrefixPattern: `(?i)^(def\.|cf\b|sg\.|pl\.|see\b|also\b)`,
		BadHeadwords:              []string{"ii", "iii"},
		HeadwordShape:             `^[a-z][a-z'/\-]{1,30}$`,
		SecondaryScriptPattern:    `[\x{0600}-\x{06FF}]`,
	}, sink)
	require.NoError(t, err)
	return v
}

func feed(v *OrderValidator, page, idx int, text string) *Entry {
	return v.Feed(NormalizedLine{Page: page, Index: idx, Text: text})
}

func TestOrderValidatorAcceptsMonotonicSequence(t *testing.T) {
	var issues IssueCollector
	v := testOrderValidator(t, 10, &issues)

	lines := []string{
		"aab n. water",
		"adal adj. red",
		"baruuk pron. you",
		"bess adv. only",
	}
	for i, line := range lines {
		assert.NotNil(t, feed(v, 1, i+1, line), "line %d: %q", i+1, line)
	}
	accepted, rejected := v.Stats()
	assert.Equal(t, 4, accepted)
	assert.Equal(t, 0, rejected)
}

func TestOrderValidatorRejectsLetterJump(t *testing.T) {
	var issues IssueCollector
	v := testOrderValidator(t, 10, &issues)

	require.NotNil(t, feed(v, 1, 1, "aab n. water"))
	assert.Nil(t, feed(v, 1, 2, "dhay n. people"), "a to d is not a plausible step")
	require.Len(t, issues.Issues, 1)
	assert.Equal(t, IssueImplausibleLetterJump, issues.Issues[0].Kind)

	// The anchor is unchanged, so the b-range still works.
	assert.NotNil(t, feed(v, 1, 3, "baruuk pron. you"))
}

func TestOrderValidatorPlausibilityGates(t *testing.T) {
	var issues IssueCollector
	v := testOrderValidator(t, 10, &issues)

	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"continuation prefix", "pl. aawi forms"},
		{"single token", "aab"},
		{"no pos marker or punctuation", "aab water well"},
		{"junk headword", "iii n. page artifact"},
		{"digit in headword", "a4b n. noise"},
		{"secondary script", "ماء n. water"},
		{"shape violation", "x n. single letter"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, feed(v, 1, i+1, tt.line))
		})
	}
	_, rejected := v.Stats()
	assert.Equal(t, len(tests), rejected)
}

func TestOrderValidatorResyncAfterThreshold(t *testing.T) {
	var issues IssueCollector
	v := testOrderValidator(t, 3, &issues)

	require.NotNil(t, feed(v, 1, 1, "aab n. water"))

	// Three rejections hit the threshold.
	for i := 0; i < 3; i++ {
		assert.Nil(t, feed(v, 1, i+2, "mhay n. far ahead in the alphabet"))
	}

	// The next plausible candidate re-anchors unconditionally.
	entry := feed(v, 1, 5, "mhay n. far ahead in the alphabet")
	require.NotNil(t, entry)
	assert.Equal(t, "mhay", entry.Headword)
	assert.Contains(t, issueKinds(issues.Issues), IssueResyncAnchor)

	// And the new anchor governs what follows.
	assert.NotNil(t, feed(v, 1, 6, "naat n. next letter"))
	assert.Nil(t, feed(v, 1, 7, "zay n. way off again"))
}

func TestOrderValidatorEntryFields(t *testing.T) {
	v := testOrderValidator(t, 10, DiscardIssues)

	entry := feed(v, 3, 7, "aab n. water, well water")
	require.NotNil(t, entry)
	assert.Equal(t, "aab", entry.Headword)
	assert.Equal(t, []string{"n"}, entry.POS)
	assert.Equal(t, []string{"n. water, well water"}, entry.TranslationsPrimary)
	assert.Equal(t, SourceRef{Page: 3, StartLine: 7, EndLine: 7}, entry.Source)
	assert.NotEmpty(t, entry.ID)
}
