package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFullEntry(t *testing.T) {
	var issues IssueCollector
	ext := testExtractor(t, testVocab(), &issues)

	entry := ext.Extract(DraftBlock{
		Page:          12,
		StartLine:     4,
		EndLine:       5,
		HeadwordGuess: "aab",
		Lines:         []string{"aab * water * ماء", "N m sg * Er"},
		RegionsGuess:  []string{"Er"},
	})

	require.NotNil(t, entry)
	assert.Equal(t, "aab", entry.Headword)
	assert.Equal(t, []string{"aab"}, entry.HeadwordParts)
	assert.Equal(t, []string{"water"}, entry.TranslationsPrimary)
	assert.Equal(t, []string{"ماء"}, entry.TranslationsSecondary)
	assert.Equal(t, []string{"N"}, entry.POS)
	assert.Equal(t, "m", entry.Gender)
	assert.Equal(t, "sg", entry.Number)
	assert.Equal(t, []string{"Er"}, entry.Regions)
	assert.Equal(t, SourceRef{Page: 12, StartLine: 4, EndLine: 5}, entry.Source)
	assert.Empty(t, issues.Issues)
}

func TestExtractAliasesAndNoise(t *testing.T) {
	var issues IssueCollector
	ext := testExtractor(t, testVocab(), &issues)

	entry := ext.Extract(DraftBlock{
		Page:          1,
		StartLine:     1,
		EndLine:       1,
		HeadwordGuess: "adal",
		Lines:         []string{"adal * red, scarlet * Ady mf? pl. * S"},
	})

	require.NotNil(t, entry)
	assert.Equal(t, []string{"Adv"}, entry.POS, "Ady OCR alias resolves to Adv")
	assert.Equal(t, "mf", entry.Gender, "trailing ? is OCR noise")
	assert.Equal(t, "pl", entry.Number, "trailing dot stripped")
	assert.Equal(t, []string{"Su"}, entry.Regions, "S alias resolves to Su")
	assert.Equal(t, []string{"red, scarlet"}, entry.TranslationsPrimary)
}

func TestExtractSkipsTagOnlyAndSecondaryFields(t *testing.T) {
	var issues IssueCollector
	ext := testExtractor(t, testVocab(), &issues)

	entry := ext.Extract(DraftBlock{
		Page:          2,
		StartLine:     1,
		EndLine:       1,
		HeadwordGuess: "hamo",
		Lines:         []string{"hamo * N m * clan name * حمو"},
	})

	require.NotNil(t, entry)
	assert.Equal(t, []string{"clan name"}, entry.TranslationsPrimary,
		"tag-only and secondary-script fields are not translations")
	assert.Equal(t, []string{"حمو"}, entry.TranslationsSecondary)
}

func TestExtractMissingHeadwordDropsBlock(t *testing.T) {
	var issues IssueCollector
	ext := testExtractor(t, testVocab(), &issues)

	entry := ext.Extract(DraftBlock{Page: 3, StartLine: 2, EndLine: 2, Lines: []string{"women * females"}})

	assert.Nil(t, entry)
	require.Len(t, issues.Issues, 1)
	assert.Equal(t, IssueMissingHeadword, issues.Issues[0].Kind)
}

func TestExtractMissingGlossKeepsEntry(t *testing.T) {
	var issues IssueCollector
	ext := testExtractor(t, testVocab(), &issues)

	entry := ext.Extract(DraftBlock{
		Page:          3,
		StartLine:     5,
		EndLine:       5,
		HeadwordGuess: "adaraab",
		Lines:         []string{"adaraab * N m * Er"},
		RegionsGuess:  []string{"Er"},
	})

	require.NotNil(t, entry)
	assert.Empty(t, entry.TranslationsPrimary)
	require.Len(t, issues.Issues, 1)
	assert.Equal(t, IssueMissingGloss, issues.Issues[0].Kind)
}

func TestExtractIsDeterministic(t *testing.T) {
	ext := testExtractor(t, testVocab(), nil)
	block := DraftBlock{
		Page:          8,
		StartLine:     1,
		EndLine:       2,
		HeadwordGuess: "aab",
		Lines:         []string{"aab * water", "N m * Er"},
		RegionsGuess:  []string{"Er"},
	}

	first := ext.Extract(block)
	second := ext.Extract(block)
	require.NotNil(t, first)
	assert.Equal(t, first, second, "extraction is a pure function of the block")
	assert.NotEmpty(t, first.ID)
}
