package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredkneeland/beja-dict-parser/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dict.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(headword string, page, line int) engine.Entry {
	src := engine.SourceRef{Page: page, StartLine: line, EndLine: line}
	return engine.Entry{
		ID:                  engine.EntryID(src, headword),
		Headword:            headword,
		HeadwordParts:       []string{headword},
		TranslationsPrimary: []string{"gloss"},
		RawLines:            []string{headword + " * gloss"},
		Source:              src,
	}
}

func TestSaveAndLookupExact(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEntries(ctx, []engine.Entry{
		entry("aab", 1, 1),
		entry("aab", 7, 3),
		entry("adal", 2, 1),
	}))

	got, err := s.LookupExact(ctx, "aab")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Source.Page, "results come back in document order")
	assert.Equal(t, 7, got[1].Source.Page)
	assert.Equal(t, []string{"gloss"}, got[0].TranslationsPrimary)

	none, err := s.LookupExact(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLookupPrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEntries(ctx, []engine.Entry{
		entry("aab", 1, 1),
		entry("aabi", 1, 2),
		entry("adal", 1, 3),
	}))

	got, err := s.LookupPrefix(ctx, "aab", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "aab", got[0].Headword)
	assert.Equal(t, "aabi", got[1].Headword)

	limited, err := s.LookupPrefix(ctx, "a", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSaveEntriesIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := []engine.Entry{entry("aab", 1, 1)}
	require.NoError(t, s.SaveEntries(ctx, batch))
	require.NoError(t, s.SaveEntries(ctx, batch))

	n, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "deterministic IDs make re-runs upserts")
}

func TestSaveIssues(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveIssues(ctx, []engine.Issue{
		{Kind: engine.IssueMergedContinuation, Source: engine.SourceRef{Page: 1, StartLine: 2, EndLine: 2}},
		{Kind: engine.IssueDroppedIdleLine, Source: engine.SourceRef{Page: 1, StartLine: 5, EndLine: 5}},
	}))
}
