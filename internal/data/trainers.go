// Package data provides the read-only reference tables the classifier
// and profession resolver consult: creature coin values and the
// trainer-message catalog. Both load once from bundled files and are
// immutable afterwards, so a single instance can be shared freely.
package data

import (
	"embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/logging"
)

//go:embed trainers.json creatures.csv
var bundled embed.FS

// TrainerMeta describes one trainer: profession category, effective
// rank multiplier, and for combo trainers the component trainers whose
// stats it raises together.
type TrainerMeta struct {
	Name            string   `json:"name"`
	Profession      string   `json:"profession,omitempty"`
	Multiplier      float64  `json:"multiplier"`
	IsCombo         bool     `json:"is_combo"`
	ComboComponents []string `json:"combo_components,omitempty"`
}

// trainerEntry is the bundled JSON value shape, keyed by message text.
type trainerEntry struct {
	Trainer         string   `json:"trainer"`
	Profession      string   `json:"profession,omitempty"`
	Multiplier      float64  `json:"effective_rank_multiplier,omitempty"`
	ComboComponents []string `json:"combo_components,omitempty"`
}

// TrainerDB maps training-notification message text to trainer names,
// plus per-trainer profession, multiplier, and combo metadata.
type TrainerDB struct {
	trainers        map[string]string
	professions     map[string]string
	multipliers     map[string]float64
	comboComponents map[string][]string
}

// LoadTrainers loads the bundled trainer catalog.
func LoadTrainers() (*TrainerDB, error) {
	raw, err := bundled.ReadFile("trainers.json")
	if err != nil {
		return nil, errors.Wrap(errors.ErrData, "reading bundled trainers.json", err)
	}
	return TrainersFromJSON(raw)
}

// TrainersFromJSON parses a trainer catalog. Keys are message texts,
// optionally carrying the ¥ marker prefix, which is stripped so lookups
// work for both client dialects.
func TrainersFromJSON(raw []byte) (*TrainerDB, error) {
	var entries map[string]trainerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrData, "parsing trainer catalog", err)
	}

	db := &TrainerDB{
		trainers:        make(map[string]string, len(entries)),
		professions:     make(map[string]string),
		multipliers:     make(map[string]float64),
		comboComponents: make(map[string][]string),
	}
	for key, entry := range entries {
		if entry.Trainer == "" {
			continue
		}
		message := strings.TrimSpace(strings.TrimPrefix(key, "¥"))
		db.trainers[message] = entry.Trainer
		if entry.Profession != "" {
			db.professions[entry.Trainer] = entry.Profession
		}
		if entry.Multiplier != 0 {
			db.multipliers[entry.Trainer] = entry.Multiplier
		}
		if len(entry.ComboComponents) > 0 {
			db.comboComponents[entry.Trainer] = entry.ComboComponents
		}
	}

	logging.Info("loaded trainer catalog", map[string]interface{}{
		"messages":    len(db.trainers),
		"professions": len(db.professions),
		"multipliers": len(db.multipliers),
		"combos":      len(db.comboComponents),
	})
	return db, nil
}

// Trainer looks up a trainer name by message text (marker already
// stripped). Tries an exact match first, then with the trailing period
// toggled, since some plist sources drop it.
func (db *TrainerDB) Trainer(message string) (string, bool) {
	trimmed := strings.TrimSpace(message)
	if name, ok := db.trainers[trimmed]; ok {
		return name, true
	}
	if withoutPeriod, had := strings.CutSuffix(trimmed, "."); had {
		if name, ok := db.trainers[withoutPeriod]; ok {
			return name, true
		}
	} else if name, ok := db.trainers[trimmed+"."]; ok {
		return name, true
	}
	return "", false
}

// Profession returns the profession category a trainer belongs to.
func (db *TrainerDB) Profession(trainerName string) (string, bool) {
	p, ok := db.professions[trainerName]
	return p, ok
}

// Multiplier returns the effective rank multiplier, defaulting to 1.0.
func (db *TrainerDB) Multiplier(trainerName string) float64 {
	if m, ok := db.multipliers[trainerName]; ok {
		return m
	}
	return 1.0
}

// IsCombo reports whether the trainer raises multiple component stats.
func (db *TrainerDB) IsCombo(trainerName string) bool {
	_, ok := db.comboComponents[trainerName]
	return ok
}

// ComboComponents returns the component trainer names for a combo
// trainer, or nil.
func (db *TrainerDB) ComboComponents(trainerName string) []string {
	return db.comboComponents[trainerName]
}

// Len returns the number of known messages.
func (db *TrainerDB) Len() int {
	return len(db.trainers)
}

// AllTrainerMetadata returns every unique trainer with full metadata,
// sorted by name. Used by the trainer-catalog listing.
func (db *TrainerDB) AllTrainerMetadata() []TrainerMeta {
	seen := make(map[string]bool)
	var result []TrainerMeta
	for _, name := range db.trainers {
		if seen[name] {
			continue
		}
		seen[name] = true
		components := db.comboComponents[name]
		result = append(result, TrainerMeta{
			Name:            name,
			Profession:      db.professions[name],
			Multiplier:      db.Multiplier(name),
			IsCombo:         len(components) > 0,
			ComboComponents: components,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
