package parser

import (
	"strconv"
	"strings"

	"github.com/thesquib/amanuensis/internal/data"
	"github.com/thesquib/amanuensis/internal/models"
)

// Classifier turns log messages (timestamp already stripped) into
// events. It needs the trainer catalog because rank-gain messages are
// only recognizable by exact text lookup.
type Classifier struct {
	trainers *data.TrainerDB
}

// NewClassifier creates a classifier backed by the given trainer
// catalog.
func NewClassifier(trainers *data.TrainerDB) *Classifier {
	return &Classifier{trainers: trainers}
}

// Classify maps one message to exactly one event. Ordering matters in
// a few places: karma and announcement lines are speech and must be
// recognized before speech is discarded, the "much more" teachings
// confirmation must win over the plain "more" one, and esteem must win
// over the generic experience pattern it also matches.
func (c *Classifier) Classify(message string) Event {
	if strings.TrimSpace(message) == "" {
		return Ignored{}
	}

	if m := reKarma.FindStringSubmatch(message); m != nil {
		return Karma{Good: m[1] == "good"}
	}
	if m := reApplyLearningFull.FindStringSubmatch(message); m != nil {
		return ApplyLearning{Character: m[1], Trainer: m[2], Full: true}
	}
	if m := reApplyLearningPartial.FindStringSubmatch(message); m != nil {
		return ApplyLearning{Character: m[1], Trainer: m[2], Full: false}
	}
	if m := reProfessionCircle.FindStringSubmatch(message); m != nil {
		if prof, ok := professionFromWord(m[2]); ok {
			return ProfessionAnnouncement{Name: m[1], Profession: prof}
		}
		return Ignored{}
	}
	if m := reProfessionBecome.FindStringSubmatch(message); m != nil {
		if prof, ok := professionFromWord(m[2]); ok {
			return ProfessionAnnouncement{Name: m[1], Profession: prof}
		}
		return Ignored{}
	}
	if reUntrained.MatchString(message) {
		return Untrained{}
	}

	// All remaining speech and emotes carry no statistics.
	if reSpeech.MatchString(message) || reEmote.MatchString(message) {
		return Ignored{}
	}

	if rest, ok := stripSystemPrefix(message); ok {
		return c.classifySystemMessage(rest)
	}

	if m := reWelcomeLogin.FindStringSubmatch(message); m != nil {
		return Login{Name: m[1]}
	}
	if m := reWelcomeBack.FindStringSubmatch(message); m != nil {
		return Reconnect{Name: m[1]}
	}

	if m := reSoloKill.FindStringSubmatch(message); m != nil {
		return SoloKill{Verb: soloVerb(m[1]), Creature: stripArticle(m[2])}
	}
	if m := reAssistedKill.FindStringSubmatch(message); m != nil {
		return AssistedKill{Verb: assistedVerb(m[1]), Creature: stripArticle(m[2])}
	}

	if reFirstDepart.MatchString(message) {
		return FirstDepart{}
	}
	if m := reDepartCount.FindStringSubmatch(message); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return DepartCount{Count: n}
	}
	if m := reRecovered.FindStringSubmatch(message); m != nil {
		return Recovered{Name: m[1]}
	}
	if m := reFallen.FindStringSubmatch(message); m != nil {
		return Fallen{Name: m[1], Cause: m[2]}
	}

	if m := reCoinsPickedUp.FindStringSubmatch(message); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return CoinsPickedUp{Amount: n}
	}
	if m := reCoinBalance.FindStringSubmatch(message); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return CoinBalance{Amount: n}
	}
	// Self recoveries lack the share clause, so the share pattern must
	// be tried first.
	if m := reLootShare.FindStringSubmatch(message); m != nil {
		worth, _ := strconv.ParseInt(m[3], 10, 64)
		share, _ := strconv.ParseInt(m[4], 10, 64)
		return LootShare{Item: m[1], Kind: lootKind(m[2]), Worth: worth, Share: share}
	}
	if m := reSelfRecovery.FindStringSubmatch(message); m != nil {
		worth, _ := strconv.ParseInt(m[3], 10, 64)
		return SelfRecovery(m[1], lootKind(m[2]), worth)
	}

	if reBellBroken.MatchString(message) {
		return GearEvent{Kind: GearBellBroken}
	}
	if reBellUsed.MatchString(message) {
		return GearEvent{Kind: GearBellUsed}
	}
	if reChainBreak.MatchString(message) || reChainShatter.MatchString(message) || reChainSnap.MatchString(message) {
		return GearEvent{Kind: GearChainBroken}
	}
	if reChainDrag.MatchString(message) {
		return GearEvent{Kind: GearChainUsed}
	}
	if reShieldstoneUsed.MatchString(message) {
		return GearEvent{Kind: GearShieldstoneUsed}
	}
	if reShieldstoneBroken.MatchString(message) {
		return GearEvent{Kind: GearShieldstoneBroken}
	}
	if reEtherealPortal.MatchString(message) {
		return GearEvent{Kind: GearEtherealPortal}
	}
	if reEtherealStoneUsed.MatchString(message) {
		return EtherealStoneUsed{}
	}

	if reEsteemGain.MatchString(message) {
		return EsteemGain{}
	}
	if reExperienceGain.MatchString(message) {
		return ExperienceGain{}
	}

	if m := reClanning.FindStringSubmatch(message); m != nil {
		return ClanningChange{Name: m[1], Clanning: m[2] == "now"}
	}
	if reDisconnect.MatchString(message) {
		return Disconnect{}
	}

	return Ignored{}
}

// classifySystemMessage handles the yen/bullet-prefixed system lines:
// study traffic, creature-study (Lasty) traffic, a handful of ambient
// lines to skip, and finally trainer rank gains by catalog lookup.
func (c *Classifier) classifySystemMessage(message string) Event {
	if m := reStudyCharge.FindStringSubmatch(message); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return StudyCharge{Amount: n}
	}
	if m := reStudyProgress.FindStringSubmatch(message); m != nil {
		return StudyProgress{Subject: m[1]}
	}
	if m := reStudyAbandon.FindStringSubmatch(message); m != nil {
		return StudyAbandon{Subject: m[1]}
	}

	if m := reLastyBegin.FindStringSubmatch(message); m != nil {
		return LastyBegin{Type: models.LastyTypeFromKeyword(m[1]), Creature: m[2]}
	}
	if m := reLastyLearnProgress.FindStringSubmatch(message); m != nil {
		return LastyProgress{Type: models.LastyTypeFromKeyword(m[1]), Creature: m[2]}
	}
	if m := reLastyBefriend.FindStringSubmatch(message); m != nil {
		return LastyFinished{Type: models.LastyBefriend, Creature: m[1]}
	}
	if m := reLastyMorph.FindStringSubmatch(message); m != nil {
		return LastyFinished{Type: models.LastyMorph, Creature: m[1]}
	}
	if m := reLastyMovements.FindStringSubmatch(message); m != nil {
		return LastyFinished{Type: models.LastyMovements, Creature: m[1]}
	}
	if m := reLastyCompleted.FindStringSubmatch(message); m != nil {
		return LastyCompleted{Trainer: m[1]}
	}

	if reYenHealingSense.MatchString(message) ||
		reYenSunEvent.MatchString(message) ||
		reYenStudyGain.MatchString(message) ||
		reYenStudyConcurrent.MatchString(message) {
		return Ignored{}
	}

	if trainer, ok := c.trainers.Trainer(message); ok {
		return TrainerRank{Trainer: trainer}
	}
	return Ignored{}
}

// WelcomeName extracts the character name from a login or reconnect
// welcome line, for callers that need the name before classifying.
func WelcomeName(message string) (string, bool) {
	if m := reWelcomeLogin.FindStringSubmatch(message); m != nil {
		return m[1], true
	}
	if m := reWelcomeBack.FindStringSubmatch(message); m != nil {
		return m[1], true
	}
	return "", false
}

func stripSystemPrefix(message string) (string, bool) {
	if rest, ok := strings.CutPrefix(message, systemPrefixYen); ok {
		return strings.TrimSpace(rest), true
	}
	if rest, ok := strings.CutPrefix(message, systemPrefixBullet); ok {
		return strings.TrimSpace(rest), true
	}
	return message, false
}

// stripArticle drops a leading indefinite article from a creature
// name. "the" stays: "the Ramandu" is a distinct (boss) creature from
// a plain "Ramandu".
func stripArticle(name string) string {
	if rest, ok := strings.CutPrefix(name, "a "); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(name, "an "); ok {
		return rest
	}
	return name
}

func lootKind(kind string) string {
	if strings.HasPrefix(kind, "mandible") {
		return "mandible"
	}
	return kind
}

func soloVerb(verb string) models.KillField {
	switch verb {
	case "slaughtered":
		return models.KillSlaughtered
	case "vanquished":
		return models.KillVanquished
	case "dispatched":
		return models.KillDispatched
	default:
		return models.KillKilled
	}
}

func assistedVerb(verb string) models.KillField {
	switch verb {
	case "slaughter":
		return models.KillAssistedSlaughter
	case "vanquish":
		return models.KillAssistedVanquish
	case "dispatch":
		return models.KillAssistedDispatch
	default:
		return models.KillAssistedKill
	}
}

func professionFromWord(word string) (models.Profession, bool) {
	switch strings.ToLower(word) {
	case "fighter":
		return models.ProfessionFighter, true
	case "healer":
		return models.ProfessionHealer, true
	case "mystic":
		return models.ProfessionMystic, true
	case "ranger":
		return models.ProfessionRanger, true
	case "bloodmage":
		return models.ProfessionBloodmage, true
	case "champion":
		return models.ProfessionChampion, true
	}
	return models.ProfessionUnknown, false
}
