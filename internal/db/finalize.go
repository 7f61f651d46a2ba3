package db

import (
	"github.com/thesquib/amanuensis/internal/data"
	"github.com/thesquib/amanuensis/internal/logging"
	"github.com/thesquib/amanuensis/internal/models"
)

// FinalizeCharacters runs the post-scan fixups for every primary
// character: infer a profession from trainer rank distribution when no
// announcement named one, and refresh coin levels.
func (r *Repository) FinalizeCharacters(trainers *data.TrainerDB) error {
	chars, err := r.ListCharacters()
	if err != nil {
		return err
	}
	for _, c := range chars {
		ranks, err := r.GetTrainers(c.ID)
		if err != nil {
			return err
		}

		if c.Profession == models.ProfessionUnknown {
			inferred := resolveProfession(ranks, trainers)
			if inferred != models.ProfessionUnknown {
				if err := r.UpdateProfession(c.ID, inferred); err != nil {
					return err
				}
				logging.Debug("inferred profession", map[string]interface{}{
					"character":  c.Name,
					"profession": string(inferred),
				})
			}
		}

		var coinLevel int64
		for _, t := range ranks {
			coinLevel += t.TotalRanks()
		}
		if coinLevel > 0 {
			if err := r.UpdateCoinLevel(c.ID, coinLevel); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveProfession infers a profession from where the ranks landed.
// Subclass ranks (Ranger, Bloodmage, Champion) trump base professions
// because only members of the base class can hold them; among base
// professions the largest pile wins, with Fighter, then Healer,
// breaking ties.
func resolveProfession(ranks []*models.Trainer, trainers *data.TrainerDB) models.Profession {
	totals := map[models.Profession]int64{}
	for _, t := range ranks {
		earned := t.Ranks + t.ModifiedRanks
		if earned <= 0 {
			continue
		}
		prof, ok := trainers.Profession(t.TrainerName)
		if !ok {
			continue
		}
		totals[models.Profession(prof)] += earned
	}

	subclasses := []models.Profession{
		models.ProfessionRanger,
		models.ProfessionBloodmage,
		models.ProfessionChampion,
	}
	var best models.Profession
	var bestTotal int64
	for _, p := range subclasses {
		if totals[p] > bestTotal {
			best, bestTotal = p, totals[p]
		}
	}
	if bestTotal > 0 {
		return best
	}

	bases := []models.Profession{
		models.ProfessionFighter,
		models.ProfessionHealer,
		models.ProfessionMystic,
	}
	for _, p := range bases {
		if totals[p] > bestTotal {
			best, bestTotal = p, totals[p]
		}
	}
	if bestTotal > 0 {
		return best
	}
	return models.ProfessionUnknown
}
