package models

// LastyType is the category of a multi-session creature study.
type LastyType string

const (
	LastyBefriend  LastyType = "Befriend"
	LastyMovements LastyType = "Movements"
	LastyMorph     LastyType = "Morph"
)

// LastyTypeFromKeyword maps the study keyword the game client prints
// ("ways of", "movements of", "essence of") onto a study category.
// Unknown keywords return "" so callers can keep an existing type.
func LastyTypeFromKeyword(keyword string) LastyType {
	switch keyword {
	case "ways":
		return LastyBefriend
	case "movements":
		return LastyMovements
	case "essence":
		return LastyMorph
	}
	return ""
}

// Lasty is the per-(character, creature) study progression record.
type Lasty struct {
	ID            UUID      `db:"id" json:"id"`
	CharacterID   UUID      `db:"character_id" json:"character_id"`
	CreatureName  string    `db:"creature_name" json:"creature_name"`
	LastyType     LastyType `db:"lasty_type" json:"lasty_type"`
	Finished      bool      `db:"finished" json:"finished"`
	MessageCount  int64     `db:"message_count" json:"message_count"`
	FirstSeenDate *string   `db:"first_seen_date" json:"first_seen_date,omitempty"`
	LastSeenDate  *string   `db:"last_seen_date" json:"last_seen_date,omitempty"`
	CompletedDate *string   `db:"completed_date" json:"completed_date,omitempty"`
	AbandonedDate *string   `db:"abandoned_date" json:"abandoned_date,omitempty"`
}

// TableName returns the table name for Lasty.
func (Lasty) TableName() string {
	return "lastys"
}

// Pet is a befriended creature kept by a character.
type Pet struct {
	ID           UUID   `db:"id" json:"id"`
	CharacterID  UUID   `db:"character_id" json:"character_id"`
	PetName      string `db:"pet_name" json:"pet_name"`
	CreatureName string `db:"creature_name" json:"creature_name"`
}

// TableName returns the table name for Pet.
func (Pet) TableName() string {
	return "pets"
}
