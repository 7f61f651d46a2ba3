package data

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/logging"
)

// CreatureDB maps creature names to their coin values.
type CreatureDB struct {
	values map[string]int64
}

// LoadCreatures loads the bundled creature value table.
func LoadCreatures() (*CreatureDB, error) {
	raw, err := bundled.ReadFile("creatures.csv")
	if err != nil {
		return nil, errors.Wrap(errors.ErrData, "reading bundled creatures.csv", err)
	}
	return CreaturesFromCSV(raw)
}

// CreaturesFromCSV parses a name,value table with no header row.
func CreaturesFromCSV(raw []byte) (*CreatureDB, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrData, "parsing creature table", err)
	}

	values := make(map[string]int64, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		value, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrData, "bad creature value for '"+name+"'", err)
		}
		values[name] = value
	}

	logging.Info("loaded creature table", map[string]interface{}{
		"creatures": len(values),
	})
	return &CreatureDB{values: values}, nil
}

// Value looks up a creature's coin value. A "the "-prefixed name falls
// back to the bare name unless the prefixed form has its own row —
// boss-tier variants like "the Ramandu" are distinct creatures with
// their own value.
func (db *CreatureDB) Value(name string) (int64, bool) {
	if v, ok := db.values[name]; ok {
		return v, true
	}
	if bare, had := strings.CutPrefix(name, "the "); had {
		if v, ok := db.values[bare]; ok {
			return v, true
		}
	}
	return 0, false
}

// Len returns the number of known creatures.
func (db *CreatureDB) Len() int {
	return len(db.values)
}
