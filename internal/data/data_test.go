package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrainers(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)
	assert.Greater(t, db.Len(), 50, "bundled catalog should have 50+ messages")
}

func TestTrainerLookup(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)

	tests := []struct {
		message string
		want    string
	}{
		{"Your combat ability improves.", "Bangus Anmash"},
		{"You notice your balance recovering more quickly.", "Regia"},
		{"You notice yourself healing others faster.", "Faustus"},
		{"You seem to fight more effectively now.", "Evus"},
		{"You feel tougher.", "Farly Buff"},
		// Source plist stores this one without the marker prefix.
		{"Things appear a bit more clearly, now.", "Seel"},
	}
	for _, tt := range tests {
		name, ok := db.Trainer(tt.message)
		require.True(t, ok, "message %q not found", tt.message)
		assert.Equal(t, tt.want, name)
	}

	_, ok := db.Trainer("This is not a trainer message.")
	assert.False(t, ok)
}

func TestTrainerLookup_periodNormalization(t *testing.T) {
	db, err := TrainersFromJSON([]byte(`{"¥You feel tougher.": {"trainer": "Farly Buff", "profession": "Ranger"}}`))
	require.NoError(t, err)

	name, ok := db.Trainer("You feel tougher")
	require.True(t, ok, "lookup without trailing period should fall back")
	assert.Equal(t, "Farly Buff", name)

	name, ok = db.Trainer("  You feel tougher.  ")
	require.True(t, ok, "lookup should trim whitespace")
	assert.Equal(t, "Farly Buff", name)
}

func TestTrainerProfessions(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)

	tests := []struct {
		trainer    string
		profession string
	}{
		{"Evus", "Fighter"},
		{"Atkus", "Fighter"},
		{"Regia", "Fighter"},
		{"Histia", "Fighter"},
		{"Master Bodrus", "Fighter"},
		{"Eva", "Healer"},
		{"Faustus", "Healer"},
		{"Rodnus", "Healer"},
		{"Seel", "Mystic"},
		{"Master Mentus", "Mystic"},
		{"Bangus Anmash", "Ranger"},
		{"Gossamer", "Ranger"},
		{"Posuhm", "Bloodmage"},
		{"Forvyola", "Champion"},
		{"ParTroon", "Language"},
		{"Dark Blue Paint", "Arts"},
		{"Zeucros", "Trades"},
	}
	for _, tt := range tests {
		p, ok := db.Profession(tt.trainer)
		require.True(t, ok, "no profession for %q", tt.trainer)
		assert.Equal(t, tt.profession, p, "profession for %q", tt.trainer)
	}
}

func TestTrainerMultipliers(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)

	assert.InDelta(t, 1.1436, db.Multiplier("Evus"), 0.0001)
	assert.Equal(t, 1.0, db.Multiplier("Histia"))
	assert.Equal(t, 1.0, db.Multiplier("Regia"))
	assert.Equal(t, 1.0, db.Multiplier("NonExistent"))
}

func TestTrainerCombos(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)

	assert.True(t, db.IsCombo("Evus"))
	assert.True(t, db.IsCombo("Atkus"))
	assert.True(t, db.IsCombo("Darkus"))
	assert.False(t, db.IsCombo("Histia"))
	assert.False(t, db.IsCombo("Knox"))

	evus := db.ComboComponents("Evus")
	assert.Len(t, evus, 6)
	assert.Contains(t, evus, "Aktur")
	assert.Contains(t, evus, "Histia")
	assert.Contains(t, evus, "Darktur")
}

func TestAllTrainerMetadata(t *testing.T) {
	db, err := LoadTrainers()
	require.NoError(t, err)

	meta := db.AllTrainerMetadata()
	require.NotEmpty(t, meta)

	var evus *TrainerMeta
	for i := range meta {
		if meta[i].Name == "Evus" {
			evus = &meta[i]
		}
	}
	require.NotNil(t, evus)
	assert.Equal(t, "Fighter", evus.Profession)
	assert.InDelta(t, 1.1436, evus.Multiplier, 0.0001)
	assert.True(t, evus.IsCombo)
	assert.Len(t, evus.ComboComponents, 6)

	// Sorted by name.
	for i := 1; i < len(meta); i++ {
		assert.LessOrEqual(t, meta[i-1].Name, meta[i].Name)
	}
}

func TestLoadCreatures(t *testing.T) {
	db, err := LoadCreatures()
	require.NoError(t, err)
	assert.Greater(t, db.Len(), 60)
}

func TestCreatureValues(t *testing.T) {
	db, err := LoadCreatures()
	require.NoError(t, err)

	tests := []struct {
		name  string
		value int64
	}{
		{"Rat", 2},
		{"Leech", 5},
		{"Vermine", 5},
		{"Tesla", 70},
		{"Barracuda", 250},
	}
	for _, tt := range tests {
		v, ok := db.Value(tt.name)
		require.True(t, ok, "missing creature %q", tt.name)
		assert.Equal(t, tt.value, v, "value for %q", tt.name)
	}

	_, ok := db.Value("Nonexistent Creature XYZ")
	assert.False(t, ok)
}

// TestCreatureBossVariant verifies "the Ramandu" keeps its own row and
// does not fall back to the clone's value.
func TestCreatureBossVariant(t *testing.T) {
	db, err := LoadCreatures()
	require.NoError(t, err)

	boss, ok := db.Value("the Ramandu")
	require.True(t, ok)
	assert.Equal(t, int64(2620), boss)

	clone, ok := db.Value("Ramandu")
	require.True(t, ok)
	assert.Equal(t, int64(666), clone)
}

// TestCreatureThePrefixFallback verifies "the X" falls back to "X" when
// no boss row exists.
func TestCreatureThePrefixFallback(t *testing.T) {
	db, err := CreaturesFromCSV([]byte("Dragon,500\n"))
	require.NoError(t, err)

	v, ok := db.Value("Dragon")
	require.True(t, ok)
	assert.Equal(t, int64(500), v)

	v, ok = db.Value("the Dragon")
	require.True(t, ok, "the-prefix should fall back to bare name")
	assert.Equal(t, int64(500), v)
}

func TestCreaturesFromCSV_badValue(t *testing.T) {
	_, err := CreaturesFromCSV([]byte("Goblin,notanumber\n"))
	assert.Error(t, err)
}
