package db

import (
	"strings"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/models"
)

// Reset wipes all scanned statistics so the database can be rebuilt
// from the logs. When keepModifiedRanks is true, the user-entered
// baseline rank offsets survive and coin levels are recomputed from
// them; everything derived from log content is deleted either way.
func (r *Repository) Reset(keepModifiedRanks bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "beginning reset transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"kills", "lastys", "pets", "log_files"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errors.Wrap(errors.ErrDatabase, "clearing "+table, err)
		}
	}
	// FTS5 virtual tables accept plain DELETE.
	if _, err := tx.Exec("DELETE FROM log_lines"); err != nil {
		return errors.Wrap(errors.ErrDatabase, "clearing log_lines", err)
	}

	cols := make([]string, 0, len(models.AllCounterFields)+1)
	for _, f := range models.AllCounterFields {
		cols = append(cols, f.Column()+" = 0")
	}
	cols = append(cols, "coin_level = 0")
	if _, err := tx.Exec("UPDATE characters SET " + strings.Join(cols, ", ") +
		", start_date = NULL, profession = 'Unknown'"); err != nil {
		return errors.Wrap(errors.ErrDatabase, "zeroing character counters", err)
	}

	if keepModifiedRanks {
		if _, err := tx.Exec(`UPDATE trainers SET ranks = 0,
				apply_learning_ranks = 0,
				apply_learning_unknown_count = 0,
				date_of_last_rank = NULL`); err != nil {
			return errors.Wrap(errors.ErrDatabase, "zeroing trainer ranks", err)
		}
		if _, err := tx.Exec("DELETE FROM trainers WHERE modified_ranks = 0"); err != nil {
			return errors.Wrap(errors.ErrDatabase, "pruning empty trainer rows", err)
		}
		if _, err := tx.Exec(`UPDATE characters SET coin_level = (
				SELECT COALESCE(SUM(modified_ranks), 0) FROM trainers
				WHERE trainers.character_id = characters.id
			)`); err != nil {
			return errors.Wrap(errors.ErrDatabase, "recomputing coin levels", err)
		}
	} else {
		if _, err := tx.Exec("DELETE FROM trainers"); err != nil {
			return errors.Wrap(errors.ErrDatabase, "clearing trainers", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, "committing reset", err)
	}
	return nil
}

// ClearRankOverrides zeroes every user-entered baseline rank offset
// and recomputes coin levels from scanned ranks alone.
func (r *Repository) ClearRankOverrides() error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "beginning override clear", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE trainers SET modified_ranks = 0"); err != nil {
		return errors.Wrap(errors.ErrDatabase, "clearing rank overrides", err)
	}
	if _, err := tx.Exec(`UPDATE characters SET coin_level = (
			SELECT COALESCE(SUM(ranks + apply_learning_ranks), 0) FROM trainers
			WHERE trainers.character_id = characters.id
		)`); err != nil {
		return errors.Wrap(errors.ErrDatabase, "recomputing coin levels", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, "committing override clear", err)
	}
	return nil
}
