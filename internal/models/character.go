// Package models provides data model definitions for the Amanuensis core.
package models

import (
	"database/sql/driver"
)

// UUID is a wrapper around string for UUID v4 type safety.
type UUID string

// Value implements driver.Valuer for UUID.
func (u UUID) Value() (driver.Value, error) {
	return string(u), nil
}

// Scan implements sql.Scanner for UUID.
func (u *UUID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = ""
	case string:
		*u = UUID(v)
	case []byte:
		*u = UUID(v)
	}
	return nil
}

// String returns the string representation of the UUID.
func (u UUID) String() string {
	return string(u)
}

// Profession is a character's class as announced in-game or inferred
// from trainer rank distribution.
type Profession string

const (
	ProfessionUnknown   Profession = "Unknown"
	ProfessionFighter   Profession = "Fighter"
	ProfessionHealer    Profession = "Healer"
	ProfessionMystic    Profession = "Mystic"
	ProfessionRanger    Profession = "Ranger"
	ProfessionBloodmage Profession = "Bloodmage"
	ProfessionChampion  Profession = "Champion"
)

// Character holds the cumulative per-character statistics folded out of
// scanned log files. Counters only ever increase during a scan; the sole
// exceptions are the departs counter, which the "departed N times"
// balance line overwrites with an absolute value, and an explicit reset.
type Character struct {
	ID                 UUID       `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Profession         Profession `db:"profession" json:"profession"`
	Logins             int64      `db:"logins" json:"logins"`
	Departs            int64      `db:"departs" json:"departs"`
	Deaths             int64      `db:"deaths" json:"deaths"`
	Esteem             int64      `db:"esteem" json:"esteem"`
	Armor              string     `db:"armor" json:"armor"`
	CoinsPickedUp      int64      `db:"coins_picked_up" json:"coins_picked_up"`
	CasinoWon          int64      `db:"casino_won" json:"casino_won"`
	CasinoLost         int64      `db:"casino_lost" json:"casino_lost"`
	ChestCoins         int64      `db:"chest_coins" json:"chest_coins"`
	BountyCoins        int64      `db:"bounty_coins" json:"bounty_coins"`
	FurCoins           int64      `db:"fur_coins" json:"fur_coins"`
	MandibleCoins      int64      `db:"mandible_coins" json:"mandible_coins"`
	BloodCoins         int64      `db:"blood_coins" json:"blood_coins"`
	BellsUsed          int64      `db:"bells_used" json:"bells_used"`
	BellsBroken        int64      `db:"bells_broken" json:"bells_broken"`
	ChainsUsed         int64      `db:"chains_used" json:"chains_used"`
	ChainsBroken       int64      `db:"chains_broken" json:"chains_broken"`
	ShieldstonesUsed   int64      `db:"shieldstones_used" json:"shieldstones_used"`
	ShieldstonesBroken int64      `db:"shieldstones_broken" json:"shieldstones_broken"`
	EtherealPortals    int64      `db:"ethereal_portals" json:"ethereal_portals"`
	Darkstone          int64      `db:"darkstone" json:"darkstone"`
	PurgatoryPendant   int64      `db:"purgatory_pendant" json:"purgatory_pendant"`
	CoinLevel          int64      `db:"coin_level" json:"coin_level"`
	GoodKarma          int64      `db:"good_karma" json:"good_karma"`
	BadKarma           int64      `db:"bad_karma" json:"bad_karma"`
	StartDate          *string    `db:"start_date" json:"start_date,omitempty"`
	FurWorth           int64      `db:"fur_worth" json:"fur_worth"`
	MandibleWorth      int64      `db:"mandible_worth" json:"mandible_worth"`
	BloodWorth         int64      `db:"blood_worth" json:"blood_worth"`
	EPSBroken          int64      `db:"eps_broken" json:"eps_broken"`
	UntrainingCount    int64      `db:"untraining_count" json:"untraining_count"`
	MergedInto         *UUID      `db:"merged_into" json:"merged_into,omitempty"`
}

// TableName returns the table name for Character.
func (Character) TableName() string {
	return "characters"
}

// IsMerged reports whether this character has been merged into another.
func (c *Character) IsMerged() bool {
	return c.MergedInto != nil && *c.MergedInto != ""
}
