package models

// CounterField enumerates the character counters a scan is allowed to
// update. Keeping the set closed means a typo cannot silently write to
// an arbitrary column; every field maps to its column via an exhaustive
// switch instead of a runtime allow-list.
type CounterField int

const (
	CounterLogins CounterField = iota
	CounterDeparts
	CounterDeaths
	CounterEsteem
	CounterCoinsPickedUp
	CounterCasinoWon
	CounterCasinoLost
	CounterChestCoins
	CounterBountyCoins
	CounterFurCoins
	CounterMandibleCoins
	CounterBloodCoins
	CounterFurWorth
	CounterMandibleWorth
	CounterBloodWorth
	CounterBellsUsed
	CounterBellsBroken
	CounterChainsUsed
	CounterChainsBroken
	CounterShieldstonesUsed
	CounterShieldstonesBroken
	CounterEtherealPortals
	CounterEPSBroken
	CounterDarkstone
	CounterPurgatoryPendant
	CounterGoodKarma
	CounterBadKarma
	CounterUntraining
)

// Column returns the characters-table column backing the counter.
func (f CounterField) Column() string {
	switch f {
	case CounterLogins:
		return "logins"
	case CounterDeparts:
		return "departs"
	case CounterDeaths:
		return "deaths"
	case CounterEsteem:
		return "esteem"
	case CounterCoinsPickedUp:
		return "coins_picked_up"
	case CounterCasinoWon:
		return "casino_won"
	case CounterCasinoLost:
		return "casino_lost"
	case CounterChestCoins:
		return "chest_coins"
	case CounterBountyCoins:
		return "bounty_coins"
	case CounterFurCoins:
		return "fur_coins"
	case CounterMandibleCoins:
		return "mandible_coins"
	case CounterBloodCoins:
		return "blood_coins"
	case CounterFurWorth:
		return "fur_worth"
	case CounterMandibleWorth:
		return "mandible_worth"
	case CounterBloodWorth:
		return "blood_worth"
	case CounterBellsUsed:
		return "bells_used"
	case CounterBellsBroken:
		return "bells_broken"
	case CounterChainsUsed:
		return "chains_used"
	case CounterChainsBroken:
		return "chains_broken"
	case CounterShieldstonesUsed:
		return "shieldstones_used"
	case CounterShieldstonesBroken:
		return "shieldstones_broken"
	case CounterEtherealPortals:
		return "ethereal_portals"
	case CounterEPSBroken:
		return "eps_broken"
	case CounterDarkstone:
		return "darkstone"
	case CounterPurgatoryPendant:
		return "purgatory_pendant"
	case CounterGoodKarma:
		return "good_karma"
	case CounterBadKarma:
		return "bad_karma"
	case CounterUntraining:
		return "untraining_count"
	}
	return ""
}

// String returns the column name, which doubles as a stable display name.
func (f CounterField) String() string {
	return f.Column()
}

// AllCounterFields lists every updatable counter, in declaration order.
// Used by tests and by the reset operation, which must zero them all.
var AllCounterFields = []CounterField{
	CounterLogins, CounterDeparts, CounterDeaths, CounterEsteem,
	CounterCoinsPickedUp, CounterCasinoWon, CounterCasinoLost,
	CounterChestCoins, CounterBountyCoins,
	CounterFurCoins, CounterMandibleCoins, CounterBloodCoins,
	CounterFurWorth, CounterMandibleWorth, CounterBloodWorth,
	CounterBellsUsed, CounterBellsBroken,
	CounterChainsUsed, CounterChainsBroken,
	CounterShieldstonesUsed, CounterShieldstonesBroken,
	CounterEtherealPortals, CounterEPSBroken,
	CounterDarkstone, CounterPurgatoryPendant,
	CounterGoodKarma, CounterBadKarma, CounterUntraining,
}
