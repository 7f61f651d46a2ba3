// Package parser classifies raw Clan Lord log lines into the events
// the statistics engine folds into the database.
package parser

import "github.com/thesquib/amanuensis/internal/models"

// Event is one classified log line. Every line maps to exactly one
// Event; lines that carry no statistics classify as Ignored.
type Event interface {
	isEvent()
}

// Ignored is any line that carries no statistics: chatter, emotes,
// ambient messages, and everything unrecognized.
type Ignored struct{}

// Login is the fresh-session welcome ("Welcome to Clan Lord, X!").
type Login struct {
	Name string
}

// Reconnect is the returning-session welcome ("Welcome back, X!").
type Reconnect struct {
	Name string
}

// SoloKill is an unassisted defeat of a creature.
type SoloKill struct {
	Verb     models.KillField
	Creature string
}

// AssistedKill is a group defeat the character helped with.
type AssistedKill struct {
	Verb     models.KillField
	Creature string
}

// Fallen is any character falling to a creature; the scanner only
// acts on it when the name matches the log's own character.
type Fallen struct {
	Name  string
	Cause string
}

// Recovered is a character getting back up.
type Recovered struct {
	Name string
}

// FirstDepart is the one-time first-death message; it increments.
type FirstDepart struct{}

// DepartCount reports a running total; it overwrites.
type DepartCount struct {
	Count int64
}

// TrainerRank is a rank-gain message attributed to a known trainer.
type TrainerRank struct {
	Trainer string
}

// CoinsPickedUp is coins looted from the ground.
type CoinsPickedUp struct {
	Amount int64
}

// CoinBalance is the "You have N coins." balance line. Ignored by the
// store, but classified so tests can see it was recognized.
type CoinBalance struct {
	Amount int64
}

// LootShare is a group recovery of a creature part, split among
// hunters.
type LootShare struct {
	Item  string
	Kind  string // fur, blood, or mandible
	Worth int64
	Share int64
}

// SelfRecovery is a solo recovery; the full worth is the share.
func SelfRecovery(item, kind string, worth int64) LootShare {
	return LootShare{Item: item, Kind: kind, Worth: worth, Share: worth}
}

// StudyCharge is the advanced-studies coin charge.
type StudyCharge struct {
	Amount int64
}

// StudyProgress is a study status line; tracked but not aggregated.
type StudyProgress struct {
	Subject string
}

// StudyAbandon is an explicit abandonment of a study.
type StudyAbandon struct {
	Subject string
}

// LastyBegin starts a creature study with one of the Lasty trainers.
type LastyBegin struct {
	Type     models.LastyType
	Creature string
}

// LastyProgress is an in-flight study message.
type LastyProgress struct {
	Type     models.LastyType
	Creature string
}

// LastyFinished is the creature-specific completion message.
type LastyFinished struct {
	Type     models.LastyType
	Creature string
}

// LastyCompleted is the trainer-level completion message; it names the
// trainer, not the creature.
type LastyCompleted struct {
	Trainer string
}

// GearKind enumerates the consumable equipment whose use and breakage
// are counted.
type GearKind int

const (
	GearBellUsed GearKind = iota
	GearBellBroken
	GearChainUsed
	GearChainBroken
	GearShieldstoneUsed
	GearShieldstoneBroken
	GearEtherealPortal
)

// GearEvent is one use or breakage of consumable equipment.
type GearEvent struct {
	Kind GearKind
}

// EtherealStoneUsed is the portal stone burning out: it both opens a
// portal and breaks the stone.
type EtherealStoneUsed struct{}

// Karma is received karma, good or bad.
type Karma struct {
	Good bool
}

// EsteemGain is an esteem-gain line (checked before experience, which
// matches a superset).
type EsteemGain struct{}

// ExperienceGain is a generic growth line; recognized, not stored.
type ExperienceGain struct{}

// ClanningChange is another player toggling Clanning; recognized, not
// stored.
type ClanningChange struct {
	Name     string
	Clanning bool
}

// Disconnect is the server connection-lost banner.
type Disconnect struct{}

// ProfessionAnnouncement is a town crier naming someone's new
// profession or circle.
type ProfessionAnnouncement struct {
	Name       string
	Profession models.Profession
}

// Untrained is the Untrainus confirmation that ranks were removed.
type Untrained struct{}

// ApplyLearning is the teachings confirmation. Full means "much more"
// (a 10-rank block); otherwise the amount is 1-9 and unknowable.
type ApplyLearning struct {
	Character string
	Trainer   string
	Full      bool
}

func (Ignored) isEvent()                {}
func (Login) isEvent()                  {}
func (Reconnect) isEvent()              {}
func (SoloKill) isEvent()               {}
func (AssistedKill) isEvent()           {}
func (Fallen) isEvent()                 {}
func (Recovered) isEvent()              {}
func (FirstDepart) isEvent()            {}
func (DepartCount) isEvent()            {}
func (TrainerRank) isEvent()            {}
func (CoinsPickedUp) isEvent()          {}
func (CoinBalance) isEvent()            {}
func (LootShare) isEvent()              {}
func (StudyCharge) isEvent()            {}
func (StudyProgress) isEvent()          {}
func (StudyAbandon) isEvent()           {}
func (LastyBegin) isEvent()             {}
func (LastyProgress) isEvent()          {}
func (LastyFinished) isEvent()          {}
func (LastyCompleted) isEvent()         {}
func (GearEvent) isEvent()              {}
func (EtherealStoneUsed) isEvent()      {}
func (Karma) isEvent()                  {}
func (EsteemGain) isEvent()             {}
func (ExperienceGain) isEvent()         {}
func (ClanningChange) isEvent()         {}
func (Disconnect) isEvent()             {}
func (ProfessionAnnouncement) isEvent() {}
func (Untrained) isEvent()              {}
func (ApplyLearning) isEvent()          {}
