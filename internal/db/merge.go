package db

import (
	"database/sql"
	"strings"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/models"
)

// placeholders returns "?, ?, ..., ?" with n markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// MergeCharacters points every source character at the target. Stats
// are not copied; merged reads aggregate across the group at query
// time, so a merge is fully reversible. All validation happens before
// the first write: if any source is invalid, nothing changes.
func (r *Repository) MergeCharacters(targetName string, sourceNames []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "beginning merge transaction", err)
	}
	defer tx.Rollback()

	target, err := txGetCharacter(tx, targetName)
	if err != nil {
		return err
	}
	if target == nil {
		return errors.Newf(errors.ErrCharacterNotFound, "target character %q not found", targetName)
	}
	if target.IsMerged() {
		return errors.Newf(errors.ErrMergeInvalid, "target %q is itself merged into another character", targetName)
	}

	sources := make([]*models.Character, 0, len(sourceNames))
	for _, name := range sourceNames {
		src, err := txGetCharacter(tx, name)
		if err != nil {
			return err
		}
		if src == nil {
			return errors.Newf(errors.ErrCharacterNotFound, "source character %q not found", name)
		}
		if src.ID == target.ID {
			return errors.Newf(errors.ErrMergeInvalid, "cannot merge %q into itself", name)
		}
		if src.IsMerged() {
			return errors.Newf(errors.ErrMergeInvalid, "source %q is already merged", name)
		}
		sources = append(sources, src)
	}

	for _, src := range sources {
		if _, err := tx.Exec("UPDATE characters SET merged_into = ? WHERE id = ?", target.ID, src.ID); err != nil {
			return errors.Wrap(errors.ErrDatabase, "marking character merged", err)
		}
	}

	if err := txRecalculateMergedCoinLevel(tx, target.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, "committing merge", err)
	}
	return nil
}

// UnmergeCharacter detaches a previously merged character and
// recomputes the former target's coin level without it.
func (r *Repository) UnmergeCharacter(name string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "beginning unmerge transaction", err)
	}
	defer tx.Rollback()

	c, err := txGetCharacter(tx, name)
	if err != nil {
		return err
	}
	if c == nil {
		return errors.Newf(errors.ErrCharacterNotFound, "character %q not found", name)
	}
	if !c.IsMerged() {
		return errors.Newf(errors.ErrUnmergeInvalid, "character %q is not merged", name)
	}
	formerTarget := *c.MergedInto

	if _, err := tx.Exec("UPDATE characters SET merged_into = NULL WHERE id = ?", c.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "clearing merge marker", err)
	}

	if err := txRecalculateMergedCoinLevel(tx, formerTarget); err != nil {
		return err
	}
	// The detached character keeps its own stats; restore its own
	// coin level too.
	if err := txRecalculateMergedCoinLevel(tx, c.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, "committing unmerge", err)
	}
	return nil
}

func txGetCharacter(tx *sql.Tx, name string) (*models.Character, error) {
	c, err := scanCharacter(tx.QueryRow("SELECT "+characterColumns+" FROM characters WHERE name = ?", name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching character", err)
	}
	return c, nil
}

func txRecalculateMergedCoinLevel(tx *sql.Tx, target models.UUID) error {
	ids, err := txCharIDsForMerged(tx, target)
	if err != nil {
		return err
	}
	var coinLevel int64
	query := "SELECT COALESCE(SUM(ranks + modified_ranks + apply_learning_ranks), 0) FROM trainers WHERE character_id IN (" +
		placeholders(len(ids)) + ")"
	if err := tx.QueryRow(query, idArgs(ids)...).Scan(&coinLevel); err != nil {
		return errors.Wrap(errors.ErrDatabase, "recalculating merged coin level", err)
	}
	if _, err := tx.Exec("UPDATE characters SET coin_level = ? WHERE id = ?", coinLevel, target); err != nil {
		return errors.Wrap(errors.ErrDatabase, "updating merged coin level", err)
	}
	return nil
}

func txCharIDsForMerged(tx *sql.Tx, target models.UUID) ([]models.UUID, error) {
	rows, err := tx.Query("SELECT id FROM characters WHERE id = ?1 OR merged_into = ?1", target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "collecting merge group", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

// charIDsForMerged returns the target ID plus the IDs of everyone
// merged into it.
func (r *Repository) charIDsForMerged(target models.UUID) ([]models.UUID, error) {
	rows, err := r.db.Query("SELECT id FROM characters WHERE id = ?1 OR merged_into = ?1", target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "collecting merge group", err)
	}
	defer rows.Close()
	return collectIDs(rows)
}

func collectIDs(rows *sql.Rows) ([]models.UUID, error) {
	var ids []models.UUID
	for rows.Next() {
		var id models.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning character id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func idArgs(ids []models.UUID) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// GetMergeSources returns the characters merged into the target.
func (r *Repository) GetMergeSources(target models.UUID) ([]*models.Character, error) {
	rows, err := r.db.Query("SELECT "+characterColumns+" FROM characters WHERE merged_into = ? ORDER BY name", target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching merge sources", err)
	}
	defer rows.Close()

	var chars []*models.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning character row", err)
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

// GetMergedIntoName resolves the name a merged character rolls up to,
// or "" if the character is not merged.
func (r *Repository) GetMergedIntoName(id models.UUID) (string, error) {
	var name string
	err := r.db.QueryRow(`SELECT t.name FROM characters c
		JOIN characters t ON t.id = c.merged_into
		WHERE c.id = ?`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, "resolving merge target", err)
	}
	return name, nil
}

// GetCharacterMerged returns the target character with scalar counters
// summed across its merge group. The two-step read (collect IDs, then
// aggregate with IN) keeps each aggregation query simple.
func (r *Repository) GetCharacterMerged(target models.UUID) (*models.Character, error) {
	base, err := r.GetCharacterByID(target)
	if err != nil {
		return nil, err
	}
	sources, err := r.GetMergeSources(target)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		base.Logins += src.Logins
		base.Departs += src.Departs
		base.Deaths += src.Deaths
		base.Esteem += src.Esteem
		base.CoinsPickedUp += src.CoinsPickedUp
		base.CasinoWon += src.CasinoWon
		base.CasinoLost += src.CasinoLost
		base.ChestCoins += src.ChestCoins
		base.BountyCoins += src.BountyCoins
		base.FurCoins += src.FurCoins
		base.MandibleCoins += src.MandibleCoins
		base.BloodCoins += src.BloodCoins
		base.BellsUsed += src.BellsUsed
		base.BellsBroken += src.BellsBroken
		base.ChainsUsed += src.ChainsUsed
		base.ChainsBroken += src.ChainsBroken
		base.ShieldstonesUsed += src.ShieldstonesUsed
		base.ShieldstonesBroken += src.ShieldstonesBroken
		base.EtherealPortals += src.EtherealPortals
		base.Darkstone += src.Darkstone
		base.PurgatoryPendant += src.PurgatoryPendant
		base.GoodKarma += src.GoodKarma
		base.BadKarma += src.BadKarma
		base.FurWorth += src.FurWorth
		base.MandibleWorth += src.MandibleWorth
		base.BloodWorth += src.BloodWorth
		base.EPSBroken += src.EPSBroken
		base.UntrainingCount += src.UntrainingCount
		if src.StartDate != nil && (base.StartDate == nil || *src.StartDate < *base.StartDate) {
			base.StartDate = src.StartDate
		}
	}

	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return nil, err
	}
	var coinLevel int64
	err = r.db.QueryRow(
		"SELECT COALESCE(SUM(ranks + modified_ranks + apply_learning_ranks), 0) FROM trainers WHERE character_id IN ("+
			placeholders(len(ids))+")", idArgs(ids)...).Scan(&coinLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "summing merged coin level", err)
	}
	base.CoinLevel = coinLevel
	return base, nil
}

// GetKillsMerged aggregates kill records across a merge group, folding
// duplicate creatures into a single row.
func (r *Repository) GetKillsMerged(target models.UUID) ([]*models.Kill, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return nil, err
	}
	query := `SELECT NULL, NULL, creature_name,
			SUM(killed_count), SUM(slaughtered_count), SUM(vanquished_count), SUM(dispatched_count),
			SUM(assisted_kill_count), SUM(assisted_slaughter_count), SUM(assisted_vanquish_count), SUM(assisted_dispatch_count),
			SUM(killed_by_count), MIN(date_first), MAX(date_last), MAX(creature_value),
			MAX(date_last_killed), MAX(date_last_slaughtered), MAX(date_last_vanquished), MAX(date_last_dispatched)
		FROM kills WHERE character_id IN (` + placeholders(len(ids)) + `)
		GROUP BY creature_name
		ORDER BY (SUM(killed_count) + SUM(slaughtered_count) + SUM(vanquished_count) + SUM(dispatched_count) +
				  SUM(assisted_kill_count) + SUM(assisted_slaughter_count) + SUM(assisted_vanquish_count) + SUM(assisted_dispatch_count)) DESC`
	rows, err := r.db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching merged kills", err)
	}
	defer rows.Close()

	var kills []*models.Kill
	for rows.Next() {
		k, err := scanKill(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning merged kill row", err)
		}
		k.CharacterID = target
		kills = append(kills, k)
	}
	return kills, rows.Err()
}

// GetTrainersMerged aggregates trainer records across a merge group.
func (r *Repository) GetTrainersMerged(target models.UUID) ([]*models.Trainer, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return nil, err
	}
	query := `SELECT NULL, NULL, trainer_name, SUM(ranks), SUM(modified_ranks), MAX(date_of_last_rank),
			SUM(apply_learning_ranks), SUM(apply_learning_unknown_count)
		FROM trainers WHERE character_id IN (` + placeholders(len(ids)) + `)
		GROUP BY trainer_name
		ORDER BY SUM(ranks) DESC`
	rows, err := r.db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching merged trainers", err)
	}
	defer rows.Close()

	var trainers []*models.Trainer
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning merged trainer row", err)
		}
		t.CharacterID = target
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// GetLastysMerged aggregates study records across a merge group.
func (r *Repository) GetLastysMerged(target models.UUID) ([]*models.Lasty, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return nil, err
	}
	query := `SELECT NULL, NULL, creature_name, MAX(lasty_type), MAX(finished), SUM(message_count),
			MIN(first_seen_date), MAX(last_seen_date), MAX(completed_date), MAX(abandoned_date)
		FROM lastys WHERE character_id IN (` + placeholders(len(ids)) + `)
		GROUP BY creature_name
		ORDER BY creature_name`
	rows, err := r.db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching merged lastys", err)
	}
	defer rows.Close()

	var lastys []*models.Lasty
	for rows.Next() {
		l, err := scanLasty(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning merged lasty row", err)
		}
		l.CharacterID = target
		lastys = append(lastys, l)
	}
	return lastys, rows.Err()
}

// GetPetsMerged aggregates pets across a merge group, deduplicating by
// pet name.
func (r *Repository) GetPetsMerged(target models.UUID) ([]*models.Pet, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return nil, err
	}
	query := `SELECT MIN(id), pet_name, MAX(creature_name)
		FROM pets WHERE character_id IN (` + placeholders(len(ids)) + `)
		GROUP BY pet_name
		ORDER BY pet_name`
	rows, err := r.db.Query(query, idArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching merged pets", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(&p.ID, &p.PetName, &p.CreatureName); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning merged pet row", err)
		}
		p.CharacterID = target
		pets = append(pets, &p)
	}
	return pets, rows.Err()
}
