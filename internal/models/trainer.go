package models

// Trainer is the per-(character, trainer) rank record. Ranks accumulate
// from logged trainer messages; ModifiedRanks is a user-supplied offset
// for ranks earned before logging started; apply-learning ranks come
// from the NPC bonus-conversion confirmations.
type Trainer struct {
	ID                        UUID    `db:"id" json:"id"`
	CharacterID               UUID    `db:"character_id" json:"character_id"`
	TrainerName               string  `db:"trainer_name" json:"trainer_name"`
	Ranks                     int64   `db:"ranks" json:"ranks"`
	ModifiedRanks             int64   `db:"modified_ranks" json:"modified_ranks"`
	DateOfLastRank            *string `db:"date_of_last_rank" json:"date_of_last_rank,omitempty"`
	ApplyLearningRanks        int64   `db:"apply_learning_ranks" json:"apply_learning_ranks"`
	ApplyLearningUnknownCount int64   `db:"apply_learning_unknown_count" json:"apply_learning_unknown_count"`
}

// TableName returns the table name for Trainer.
func (Trainer) TableName() string {
	return "trainers"
}

// TotalRanks is the effective rank count before any per-trainer
// multiplier: logged ranks plus the user offset plus confirmed
// apply-learning ranks.
func (t *Trainer) TotalRanks() int64 {
	return t.Ranks + t.ModifiedRanks + t.ApplyLearningRanks
}
