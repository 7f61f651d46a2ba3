package db

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/models"
	"github.com/thesquib/amanuensis/internal/uuid"
)

// Repository provides the event-application and read-side operations
// over the statistics schema.
// Statements are prepared on first use and cached for reuse.
type Repository struct {
	db *sql.DB

	stmtCache sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository instance.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// PrepareStmt gets or creates a prepared statement from cache.
// Key is the query string, value is the prepared statement.
func (r *Repository) PrepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		// Another caller already prepared this, close our duplicate
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}
	return stmt, nil
}

// Close closes all cached prepared statements.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		stmt := value.(*sql.Stmt)
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// BeginScan starts the scan transaction and switches on bulk-write
// pragmas for the duration of the scan.
func (r *Repository) BeginScan() error {
	if _, err := r.db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA mmap_size = 268435456;`); err != nil {
		return errors.Wrap(errors.ErrDatabase, "setting scan pragmas", err)
	}
	if _, err := r.db.Exec("BEGIN"); err != nil {
		return errors.Wrap(errors.ErrDatabase, "beginning scan transaction", err)
	}
	return nil
}

// CommitScan commits the scan transaction and restores safe pragmas.
func (r *Repository) CommitScan() error {
	if _, err := r.db.Exec("COMMIT"); err != nil {
		return errors.Wrap(errors.ErrDatabase, "committing scan transaction", err)
	}
	return r.resetPragmas()
}

// RollbackScan rolls back the scan transaction and restores safe
// pragmas. The rollback error is ignored so the original failure stays
// visible to the caller.
func (r *Repository) RollbackScan() {
	r.db.Exec("ROLLBACK")
	r.resetPragmas()
}

func (r *Repository) resetPragmas() error {
	if _, err := r.db.Exec(`
		PRAGMA synchronous = FULL;
		PRAGMA cache_size = -2000;`); err != nil {
		return errors.Wrap(errors.ErrDatabase, "resetting pragmas", err)
	}
	return nil
}

// =====================================================
// Characters
// =====================================================

const characterColumns = `id, name, profession, logins, departs, deaths, esteem, armor,
	coins_picked_up, casino_won, casino_lost, chest_coins, bounty_coins,
	fur_coins, mandible_coins, blood_coins,
	bells_used, bells_broken, chains_used, chains_broken,
	shieldstones_used, shieldstones_broken, ethereal_portals, darkstone, purgatory_pendant,
	coin_level, good_karma, bad_karma, start_date,
	fur_worth, mandible_worth, blood_worth, eps_broken, untraining_count, merged_into`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (*models.Character, error) {
	var c models.Character
	err := row.Scan(
		&c.ID, &c.Name, &c.Profession, &c.Logins, &c.Departs, &c.Deaths, &c.Esteem, &c.Armor,
		&c.CoinsPickedUp, &c.CasinoWon, &c.CasinoLost, &c.ChestCoins, &c.BountyCoins,
		&c.FurCoins, &c.MandibleCoins, &c.BloodCoins,
		&c.BellsUsed, &c.BellsBroken, &c.ChainsUsed, &c.ChainsBroken,
		&c.ShieldstonesUsed, &c.ShieldstonesBroken, &c.EtherealPortals, &c.Darkstone, &c.PurgatoryPendant,
		&c.CoinLevel, &c.GoodKarma, &c.BadKarma, &c.StartDate,
		&c.FurWorth, &c.MandibleWorth, &c.BloodWorth, &c.EPSBroken, &c.UntrainingCount, &c.MergedInto,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCharacter finds a character by name or inserts a fresh
// row, returning the character ID either way.
func (r *Repository) GetOrCreateCharacter(name string) (models.UUID, error) {
	stmt, err := r.PrepareStmt("SELECT id FROM characters WHERE name = ?")
	if err != nil {
		return "", err
	}
	var id models.UUID
	err = stmt.QueryRow(name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", errors.Wrap(errors.ErrDatabase, "looking up character", err)
	}

	id = models.UUID(uuid.New())
	if _, err := r.db.Exec("INSERT INTO characters (id, name) VALUES (?, ?)", id, name); err != nil {
		return "", errors.Wrap(errors.ErrDatabase, "creating character", err)
	}
	return id, nil
}

// GetCharacter fetches a character by name. An unknown name is an
// ErrCharacterNotFound error, never a nil result.
func (r *Repository) GetCharacter(name string) (*models.Character, error) {
	stmt, err := r.PrepareStmt("SELECT " + characterColumns + " FROM characters WHERE name = ?")
	if err != nil {
		return nil, err
	}
	c, err := scanCharacter(stmt.QueryRow(name))
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.ErrCharacterNotFound, "no character named %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching character", err)
	}
	return c, nil
}

// GetCharacterByID fetches a character by ID. An unknown ID is an
// ErrCharacterNotFound error, never a nil result.
func (r *Repository) GetCharacterByID(id models.UUID) (*models.Character, error) {
	stmt, err := r.PrepareStmt("SELECT " + characterColumns + " FROM characters WHERE id = ?")
	if err != nil {
		return nil, err
	}
	c, err := scanCharacter(stmt.QueryRow(id))
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.ErrCharacterNotFound, "no character with id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching character", err)
	}
	return c, nil
}

// ListCharacters returns all primary (not merged-away) characters.
func (r *Repository) ListCharacters() ([]*models.Character, error) {
	rows, err := r.db.Query("SELECT " + characterColumns + " FROM characters WHERE merged_into IS NULL ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "listing characters", err)
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

// IncrementCounter adds amount to one of the closed set of character
// counters. The enum mapping replaces a runtime field-name allow-list:
// an out-of-range value is the only possible invalid input.
func (r *Repository) IncrementCounter(id models.UUID, field models.CounterField, amount int64) error {
	col := field.Column()
	if col == "" {
		return errors.Newf(errors.ErrInvalid, "unknown character counter: %d", int(field))
	}
	stmt, err := r.PrepareStmt("UPDATE characters SET " + col + " = " + col + " + ? WHERE id = ?")
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(amount, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "incrementing "+col, err)
	}
	return nil
}

// SetDeparts overwrites the departs counter with an absolute value.
// The "your spirit has departed N times" line reports a running total,
// so last write wins rather than accumulating.
func (r *Repository) SetDeparts(id models.UUID, count int64) error {
	stmt, err := r.PrepareStmt("UPDATE characters SET departs = ? WHERE id = ?")
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(count, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "setting departs", err)
	}
	return nil
}

// UpdateStartDate moves start_date earlier, never later.
func (r *Repository) UpdateStartDate(id models.UUID, date string) error {
	stmt, err := r.PrepareStmt(`UPDATE characters SET start_date = ?1
		WHERE id = ?2 AND (start_date IS NULL OR start_date > ?1)`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(date, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "updating start date", err)
	}
	return nil
}

// UpdateProfession sets a character's profession.
func (r *Repository) UpdateProfession(id models.UUID, profession models.Profession) error {
	if _, err := r.db.Exec("UPDATE characters SET profession = ? WHERE id = ?", profession, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "updating profession", err)
	}
	return nil
}

// UpdateCoinLevel sets a character's derived coin level.
func (r *Repository) UpdateCoinLevel(id models.UUID, coinLevel int64) error {
	if _, err := r.db.Exec("UPDATE characters SET coin_level = ? WHERE id = ?", coinLevel, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "updating coin level", err)
	}
	return nil
}

// =====================================================
// Kills
// =====================================================

// UpsertKill records one defeat of (or by) a creature, creating the
// row on first encounter. Solo verbs also stamp their per-verb
// last-occurrence date.
func (r *Repository) UpsertKill(id models.UUID, creature string, field models.KillField, creatureValue int64, date string) error {
	col := field.Column()
	if col == "" {
		return errors.Newf(errors.ErrInvalid, "unknown kill counter: %d", int(field))
	}

	dateCol := field.DateColumn()
	dateColInsert, dateColValue, dateColUpdate := "", "", ""
	if dateCol != "" {
		dateColInsert = ", " + dateCol
		dateColValue = ", ?5"
		dateColUpdate = ", " + dateCol + " = excluded." + dateCol
	}

	query := fmt.Sprintf(
		`INSERT INTO kills (id, character_id, creature_name, %[1]s, creature_value, date_first, date_last%[2]s)
		 VALUES (?1, ?2, ?3, 1, ?4, ?5, ?5%[3]s)
		 ON CONFLICT(character_id, creature_name) DO UPDATE SET
			%[1]s = %[1]s + 1,
			date_last = excluded.date_last%[4]s`,
		col, dateColInsert, dateColValue, dateColUpdate)

	stmt, err := r.PrepareStmt(query)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, creature, creatureValue, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting kill", err)
	}
	return nil
}

const killColumns = `id, character_id, creature_name,
	killed_count, slaughtered_count, vanquished_count, dispatched_count,
	assisted_kill_count, assisted_slaughter_count, assisted_vanquish_count, assisted_dispatch_count,
	killed_by_count, date_first, date_last, creature_value,
	date_last_killed, date_last_slaughtered, date_last_vanquished, date_last_dispatched`

func scanKill(row rowScanner) (*models.Kill, error) {
	var k models.Kill
	var rowID sql.NullString
	var charID sql.NullString
	err := row.Scan(
		&rowID, &charID, &k.CreatureName,
		&k.KilledCount, &k.SlaughteredCount, &k.VanquishedCount, &k.DispatchedCount,
		&k.AssistedKillCount, &k.AssistedSlaughterCount, &k.AssistedVanquishCount, &k.AssistedDispatchCount,
		&k.KilledByCount, &k.DateFirst, &k.DateLast, &k.CreatureValue,
		&k.DateLastKilled, &k.DateLastSlaughtered, &k.DateLastVanquished, &k.DateLastDispatched,
	)
	if err != nil {
		return nil, err
	}
	k.ID = models.UUID(rowID.String)
	k.CharacterID = models.UUID(charID.String)
	return &k, nil
}

// GetKills returns a character's kill records ordered by total defeats.
func (r *Repository) GetKills(id models.UUID) ([]*models.Kill, error) {
	rows, err := r.db.Query(`SELECT `+killColumns+`
		FROM kills WHERE character_id = ?
		ORDER BY (killed_count + slaughtered_count + vanquished_count + dispatched_count +
				  assisted_kill_count + assisted_slaughter_count + assisted_vanquish_count + assisted_dispatch_count) DESC`, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching kills", err)
	}
	defer rows.Close()

	var kills []*models.Kill
	for rows.Next() {
		k, err := scanKill(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning kill row", err)
		}
		kills = append(kills, k)
	}
	return kills, rows.Err()
}

// HighestKill returns the creature with the highest solo-kill score
// (solo kills x creature value) across the character's merge group, or
// ("", 0, nil) if none qualifies.
func (r *Repository) HighestKill(target models.UUID) (string, int64, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return "", 0, err
	}
	query := `SELECT creature_name,
			SUM(killed_count + slaughtered_count + vanquished_count + dispatched_count) * MAX(creature_value) AS score
		FROM kills WHERE character_id IN (` + placeholders(len(ids)) + `) AND creature_value > 0
		GROUP BY creature_name ORDER BY score DESC LIMIT 1`
	var name string
	var score int64
	err = r.db.QueryRow(query, idArgs(ids)...).Scan(&name, &score)
	if err == sql.ErrNoRows {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrDatabase, "fetching highest kill", err)
	}
	return name, score, nil
}

// Nemesis returns the creature that defeated this character the most
// across its merge group, or ("", 0, nil) if it has never fallen.
func (r *Repository) Nemesis(target models.UUID) (string, int64, error) {
	ids, err := r.charIDsForMerged(target)
	if err != nil {
		return "", 0, err
	}
	query := `SELECT creature_name, SUM(killed_by_count) AS defeats
		FROM kills WHERE character_id IN (` + placeholders(len(ids)) + `)
		GROUP BY creature_name HAVING defeats > 0
		ORDER BY defeats DESC LIMIT 1`
	var name string
	var count int64
	err = r.db.QueryRow(query, idArgs(ids)...).Scan(&name, &count)
	if err == sql.ErrNoRows {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrDatabase, "fetching nemesis", err)
	}
	return name, count, nil
}

// =====================================================
// Trainers
// =====================================================

// UpsertTrainerRank records one earned rank with a trainer.
func (r *Repository) UpsertTrainerRank(id models.UUID, trainer, date string) error {
	stmt, err := r.PrepareStmt(`INSERT INTO trainers (id, character_id, trainer_name, ranks, date_of_last_rank)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(character_id, trainer_name) DO UPDATE SET
			ranks = ranks + 1,
			date_of_last_rank = excluded.date_of_last_rank`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, trainer, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting trainer rank", err)
	}
	return nil
}

// UpsertApplyLearning adds confirmed apply-learning ranks (+10 per
// full confirmation message).
func (r *Repository) UpsertApplyLearning(id models.UUID, trainer, date string, amount int64) error {
	stmt, err := r.PrepareStmt(`INSERT INTO trainers (id, character_id, trainer_name, apply_learning_ranks, date_of_last_rank)
		 VALUES (?1, ?2, ?3, ?4, ?5)
		 ON CONFLICT(character_id, trainer_name) DO UPDATE SET
			apply_learning_ranks = apply_learning_ranks + ?4,
			date_of_last_rank = excluded.date_of_last_rank`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, trainer, amount, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting apply-learning ranks", err)
	}
	return nil
}

// UpsertApplyLearningUnknown tallies a partial confirmation whose rank
// amount (1-9) the message does not reveal.
func (r *Repository) UpsertApplyLearningUnknown(id models.UUID, trainer, date string) error {
	stmt, err := r.PrepareStmt(`INSERT INTO trainers (id, character_id, trainer_name, apply_learning_unknown_count, date_of_last_rank)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(character_id, trainer_name) DO UPDATE SET
			apply_learning_unknown_count = apply_learning_unknown_count + 1,
			date_of_last_rank = excluded.date_of_last_rank`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, trainer, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting apply-learning tally", err)
	}
	return nil
}

// SetModifiedRanks sets the user-supplied baseline rank offset for a
// trainer, creating the record if needed, then recomputes coin level.
func (r *Repository) SetModifiedRanks(id models.UUID, trainer string, modifiedRanks int64) error {
	_, err := r.db.Exec(`INSERT INTO trainers (id, character_id, trainer_name, ranks, modified_ranks)
		 VALUES (?1, ?2, ?3, 0, ?4)
		 ON CONFLICT(character_id, trainer_name) DO UPDATE SET
			modified_ranks = excluded.modified_ranks`,
		uuid.New(), id, trainer, modifiedRanks)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "setting modified ranks", err)
	}
	return r.recalculateCoinLevel(id)
}

// recalculateCoinLevel recomputes coin level from the character's own
// trainer rows (merge-aware recomputation lives in merge.go).
func (r *Repository) recalculateCoinLevel(id models.UUID) error {
	var coinLevel int64
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(ranks + modified_ranks + apply_learning_ranks), 0) FROM trainers WHERE character_id = ?",
		id).Scan(&coinLevel)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "recalculating coin level", err)
	}
	return r.UpdateCoinLevel(id, coinLevel)
}

const trainerColumns = `id, character_id, trainer_name, ranks, modified_ranks, date_of_last_rank,
	apply_learning_ranks, apply_learning_unknown_count`

func scanTrainer(row rowScanner) (*models.Trainer, error) {
	var t models.Trainer
	var rowID, charID sql.NullString
	err := row.Scan(&rowID, &charID, &t.TrainerName, &t.Ranks, &t.ModifiedRanks,
		&t.DateOfLastRank, &t.ApplyLearningRanks, &t.ApplyLearningUnknownCount)
	if err != nil {
		return nil, err
	}
	t.ID = models.UUID(rowID.String)
	t.CharacterID = models.UUID(charID.String)
	return &t, nil
}

// GetTrainers returns a character's trainer records ordered by ranks.
func (r *Repository) GetTrainers(id models.UUID) ([]*models.Trainer, error) {
	rows, err := r.db.Query("SELECT "+trainerColumns+" FROM trainers WHERE character_id = ? ORDER BY ranks DESC", id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching trainers", err)
	}
	defer rows.Close()

	var trainers []*models.Trainer
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning trainer row", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// =====================================================
// Lastys & Pets
// =====================================================

// UpsertLasty records one study message for a creature, creating the
// record on first sighting.
func (r *Repository) UpsertLasty(id models.UUID, creature string, lastyType models.LastyType, date string) error {
	stmt, err := r.PrepareStmt(`INSERT INTO lastys (id, character_id, creature_name, lasty_type, message_count, first_seen_date, last_seen_date)
		 VALUES (?1, ?2, ?3, ?4, 1, ?5, ?5)
		 ON CONFLICT(character_id, creature_name) DO UPDATE SET
			message_count = message_count + 1,
			last_seen_date = excluded.last_seen_date`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, creature, lastyType, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting lasty", err)
	}
	return nil
}

// FinishLasty marks a study finished by creature name, creating the
// record if the begin messages were never logged.
func (r *Repository) FinishLasty(id models.UUID, creature string, lastyType models.LastyType, date string) error {
	stmt, err := r.PrepareStmt(`INSERT INTO lastys (id, character_id, creature_name, lasty_type, message_count, finished,
			first_seen_date, last_seen_date, completed_date)
		 VALUES (?1, ?2, ?3, ?4, 1, 1, ?5, ?5, ?5)
		 ON CONFLICT(character_id, creature_name) DO UPDATE SET
			message_count = message_count + 1,
			finished = 1,
			last_seen_date = excluded.last_seen_date,
			completed_date = excluded.completed_date`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, creature, lastyType, date); err != nil {
		return errors.Wrap(errors.ErrDatabase, "finishing lasty", err)
	}
	return nil
}

// CompleteLasty marks the most recently started unfinished study as
// complete. The completion message names the trainer, not the
// creature, so the newest open record is the best candidate.
func (r *Repository) CompleteLasty(id models.UUID) error {
	_, err := r.db.Exec(`UPDATE lastys SET finished = 1
		WHERE id = (
			SELECT id FROM lastys
			WHERE character_id = ? AND finished = 0
			ORDER BY rowid DESC LIMIT 1
		)`, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "completing lasty", err)
	}
	return nil
}

// AbandonLasty stamps the abandoned date on a study.
func (r *Repository) AbandonLasty(id models.UUID, creature, date string) error {
	_, err := r.db.Exec(`UPDATE lastys SET abandoned_date = ?
		WHERE character_id = ? AND creature_name = ?`, date, id, creature)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "abandoning lasty", err)
	}
	return nil
}

// ClearLastyAbandon clears the abandoned date when a study resumes.
func (r *Repository) ClearLastyAbandon(id models.UUID, creature string) error {
	_, err := r.db.Exec(`UPDATE lastys SET abandoned_date = NULL
		WHERE character_id = ? AND creature_name = ?`, id, creature)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "clearing lasty abandon", err)
	}
	return nil
}

const lastyColumns = `id, character_id, creature_name, lasty_type, finished, message_count,
	first_seen_date, last_seen_date, completed_date, abandoned_date`

func scanLasty(row rowScanner) (*models.Lasty, error) {
	var l models.Lasty
	var rowID, charID sql.NullString
	var finished int64
	err := row.Scan(&rowID, &charID, &l.CreatureName, &l.LastyType, &finished, &l.MessageCount,
		&l.FirstSeenDate, &l.LastSeenDate, &l.CompletedDate, &l.AbandonedDate)
	if err != nil {
		return nil, err
	}
	l.ID = models.UUID(rowID.String)
	l.CharacterID = models.UUID(charID.String)
	l.Finished = finished != 0
	return &l, nil
}

// GetLastys returns a character's study records ordered by creature.
func (r *Repository) GetLastys(id models.UUID) ([]*models.Lasty, error) {
	rows, err := r.db.Query("SELECT "+lastyColumns+" FROM lastys WHERE character_id = ? ORDER BY creature_name", id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching lastys", err)
	}
	defer rows.Close()

	var lastys []*models.Lasty
	for rows.Next() {
		l, err := scanLasty(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning lasty row", err)
		}
		lastys = append(lastys, l)
	}
	return lastys, rows.Err()
}

// UpsertPet records a befriended creature. The creature name serves
// as the pet name until the game reports otherwise.
func (r *Repository) UpsertPet(id models.UUID, creature string) error {
	stmt, err := r.PrepareStmt(`INSERT OR IGNORE INTO pets (id, character_id, pet_name, creature_name)
		 VALUES (?1, ?2, ?3, ?3)`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, creature); err != nil {
		return errors.Wrap(errors.ErrDatabase, "upserting pet", err)
	}
	return nil
}

// GetPets returns a character's pets ordered by name.
func (r *Repository) GetPets(id models.UUID) ([]*models.Pet, error) {
	rows, err := r.db.Query("SELECT id, character_id, pet_name, creature_name FROM pets WHERE character_id = ? ORDER BY pet_name", id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "fetching pets", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(&p.ID, &p.CharacterID, &p.PetName, &p.CreatureName); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning pet row", err)
		}
		pets = append(pets, &p)
	}
	return pets, rows.Err()
}

// =====================================================
// Scanned-file ledger
// =====================================================

// IsLogScanned reports whether a file path is already in the ledger.
func (r *Repository) IsLogScanned(filePath string) (bool, error) {
	stmt, err := r.PrepareStmt("SELECT COUNT(*) FROM log_files WHERE file_path = ?")
	if err != nil {
		return false, err
	}
	var count int64
	if err := stmt.QueryRow(filePath).Scan(&count); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "checking scanned path", err)
	}
	return count > 0, nil
}

// IsHashScanned reports whether identical content was already ingested
// under any path.
func (r *Repository) IsHashScanned(contentHash string) (bool, error) {
	stmt, err := r.PrepareStmt("SELECT COUNT(*) FROM log_files WHERE content_hash = ?")
	if err != nil {
		return false, err
	}
	var count int64
	if err := stmt.QueryRow(contentHash).Scan(&count); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "checking scanned hash", err)
	}
	return count > 0, nil
}

// MarkLogScanned records a file in the ledger.
func (r *Repository) MarkLogScanned(id models.UUID, filePath, contentHash, dateRead string) error {
	stmt, err := r.PrepareStmt(`INSERT OR IGNORE INTO log_files (id, character_id, file_path, content_hash, date_read)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(uuid.New(), id, filePath, contentHash, dateRead); err != nil {
		return errors.Wrap(errors.ErrDatabase, "recording scanned file", err)
	}
	return nil
}

// ScannedLogCount returns the number of ledger entries.
func (r *Repository) ScannedLogCount() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM log_files").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "counting scanned files", err)
	}
	return count, nil
}
