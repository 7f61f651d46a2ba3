package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesquib/amanuensis/internal/db"
	apperrors "github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/models"
)

func TestMergeResultsAccumulates(t *testing.T) {
	total := &models.ScanResult{}
	mergeResults(total, &models.ScanResult{
		Characters:   []string{"Fen"},
		FilesScanned: 3,
		Skipped:      1,
		LinesParsed:  100,
		EventsFound:  40,
	})
	mergeResults(total, &models.ScanResult{
		Characters:   []string{"Fen", "Pip"},
		FilesScanned: 2,
		Errors:       1,
	})

	assert.Equal(t, 5, total.FilesScanned)
	assert.Equal(t, 1, total.Skipped)
	assert.Equal(t, 100, total.LinesParsed)
	assert.Equal(t, 40, total.EventsFound)
	assert.Equal(t, 1, total.Errors)
	assert.Equal(t, []string{"Fen", "Pip"}, total.Characters)
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+1,200", signed(1200))
	assert.Equal(t, "-50", signed(-50))
	assert.Equal(t, "0", signed(0))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(nil))
	empty := ""
	assert.Equal(t, "-", orDash(&empty))
	date := "2023-01-02 10:00:00"
	assert.Equal(t, date, orDash(&date))
}

func TestLookupCharacterUnknownName(t *testing.T) {
	database, err := db.OpenInMemory()
	require.NoError(t, err)
	defer database.Close()
	repo := db.NewRepository(database.DB)

	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	require.NoError(t, fs.Parse([]string{"Ghost"}))

	c, err := lookupCharacter(repo, fs)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, apperrors.Is(err, apperrors.ErrCharacterNotFound))
}

func TestEveryCommandIsDocumented(t *testing.T) {
	// usage() is hand-maintained; make sure dispatch and help agree.
	for name := range commands {
		assert.Contains(t, usageText(), name, "command %q missing from usage", name)
	}
}
