package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchLogLines(t *testing.T) {
	repo := newTestRepo(t)
	squib, err := repo.GetOrCreateCharacter("Squib")
	require.NoError(t, err)
	mela, err := repo.GetOrCreateCharacter("Melabrion")
	require.NoError(t, err)

	lines := []LogLine{
		{CharacterID: squib, Content: "You killed an Orga Warlock.", Timestamp: "2024-01-01 12:00:00", FilePath: "/logs/a.txt"},
		{CharacterID: squib, Content: "You killed a Rat.", Timestamp: "2024-01-01 12:01:00", FilePath: "/logs/a.txt"},
		{CharacterID: mela, Content: "You killed an Orga Berserk.", Timestamp: "2024-01-02 09:00:00", FilePath: "/logs/b.txt"},
	}
	require.NoError(t, repo.InsertLogLines(lines))

	count, err := repo.LogLineCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	hits, err := repo.SearchLogLines("Orga", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Contains(t, h.Snippet, "<mark>Orga</mark>")
	}

	hits, err = repo.SearchLogLines("Orga", squib, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Squib", hits[0].CharacterName)
	assert.Equal(t, "/logs/a.txt", hits[0].FilePath)
}

func TestSearchLogLines_quotesAreEscaped(t *testing.T) {
	repo := newTestRepo(t)
	id, err := repo.GetOrCreateCharacter("Squib")
	require.NoError(t, err)

	require.NoError(t, repo.InsertLogLines([]LogLine{
		{CharacterID: id, Content: `Melabrion says, "hello there"`, Timestamp: "2024-01-01 12:00:00", FilePath: "/logs/a.txt"},
	}))

	// User input containing quotes or FTS operators must not break the
	// query.
	hits, err := repo.SearchLogLines(`says, "hello`, "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	_, err = repo.SearchLogLines(`AND OR NOT "`, "", 10)
	require.NoError(t, err)
}

func TestSearchLogLines_limit(t *testing.T) {
	repo := newTestRepo(t)
	id, err := repo.GetOrCreateCharacter("Squib")
	require.NoError(t, err)

	var lines []LogLine
	for i := 0; i < 20; i++ {
		lines = append(lines, LogLine{
			CharacterID: id,
			Content:     "You killed a Rat.",
			Timestamp:   "2024-01-01 12:00:00",
			FilePath:    "/logs/a.txt",
		})
	}
	require.NoError(t, repo.InsertLogLines(lines))

	hits, err := repo.SearchLogLines("Rat", "", 5)
	require.NoError(t, err)
	assert.Len(t, hits, 5)
}

func TestInsertLogLines_empty(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.InsertLogLines(nil))
}
