package models

// KillField enumerates the per-creature outcome counters. Four solo
// defeat verbs, four assisted forms, and the inverse killed-by counter.
type KillField int

const (
	KillKilled KillField = iota
	KillSlaughtered
	KillVanquished
	KillDispatched
	KillAssistedKill
	KillAssistedSlaughter
	KillAssistedVanquish
	KillAssistedDispatch
	KillKilledBy
)

// Column returns the kills-table column backing the counter.
func (f KillField) Column() string {
	switch f {
	case KillKilled:
		return "killed_count"
	case KillSlaughtered:
		return "slaughtered_count"
	case KillVanquished:
		return "vanquished_count"
	case KillDispatched:
		return "dispatched_count"
	case KillAssistedKill:
		return "assisted_kill_count"
	case KillAssistedSlaughter:
		return "assisted_slaughter_count"
	case KillAssistedVanquish:
		return "assisted_vanquish_count"
	case KillAssistedDispatch:
		return "assisted_dispatch_count"
	case KillKilledBy:
		return "killed_by_count"
	}
	return ""
}

// DateColumn returns the per-verb last-occurrence date column, or ""
// for fields that do not track one (assisted and killed-by).
func (f KillField) DateColumn() string {
	switch f {
	case KillKilled:
		return "date_last_killed"
	case KillSlaughtered:
		return "date_last_slaughtered"
	case KillVanquished:
		return "date_last_vanquished"
	case KillDispatched:
		return "date_last_dispatched"
	default:
		return ""
	}
}

// Kill is the per-(character, creature) defeat record.
type Kill struct {
	ID                     UUID    `db:"id" json:"id"`
	CharacterID            UUID    `db:"character_id" json:"character_id"`
	CreatureName           string  `db:"creature_name" json:"creature_name"`
	KilledCount            int64   `db:"killed_count" json:"killed_count"`
	SlaughteredCount       int64   `db:"slaughtered_count" json:"slaughtered_count"`
	VanquishedCount        int64   `db:"vanquished_count" json:"vanquished_count"`
	DispatchedCount        int64   `db:"dispatched_count" json:"dispatched_count"`
	AssistedKillCount      int64   `db:"assisted_kill_count" json:"assisted_kill_count"`
	AssistedSlaughterCount int64   `db:"assisted_slaughter_count" json:"assisted_slaughter_count"`
	AssistedVanquishCount  int64   `db:"assisted_vanquish_count" json:"assisted_vanquish_count"`
	AssistedDispatchCount  int64   `db:"assisted_dispatch_count" json:"assisted_dispatch_count"`
	KilledByCount          int64   `db:"killed_by_count" json:"killed_by_count"`
	DateFirst              *string `db:"date_first" json:"date_first,omitempty"`
	DateLast               *string `db:"date_last" json:"date_last,omitempty"`
	CreatureValue          int64   `db:"creature_value" json:"creature_value"`
	DateLastKilled         *string `db:"date_last_killed" json:"date_last_killed,omitempty"`
	DateLastSlaughtered    *string `db:"date_last_slaughtered" json:"date_last_slaughtered,omitempty"`
	DateLastVanquished     *string `db:"date_last_vanquished" json:"date_last_vanquished,omitempty"`
	DateLastDispatched     *string `db:"date_last_dispatched" json:"date_last_dispatched,omitempty"`
}

// TableName returns the table name for Kill.
func (Kill) TableName() string {
	return "kills"
}

// SoloTotal sums the four solo defeat counters.
func (k *Kill) SoloTotal() int64 {
	return k.KilledCount + k.SlaughteredCount + k.VanquishedCount + k.DispatchedCount
}

// AssistedTotal sums the four assisted defeat counters.
func (k *Kill) AssistedTotal() int64 {
	return k.AssistedKillCount + k.AssistedSlaughterCount +
		k.AssistedVanquishCount + k.AssistedDispatchCount
}

// Total is every defeat credited to the character for this creature.
func (k *Kill) Total() int64 {
	return k.SoloTotal() + k.AssistedTotal()
}

// Score weights solo kills by the creature's coin value, the metric
// behind the highest-value-kill query.
func (k *Kill) Score() int64 {
	return k.SoloTotal() * k.CreatureValue
}
