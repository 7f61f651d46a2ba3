package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesquib/amanuensis/internal/data"
	"github.com/thesquib/amanuensis/internal/models"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	trainers, err := data.LoadTrainers()
	require.NoError(t, err)
	return NewClassifier(trainers)
}

func TestClassify_soloKill(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify("You slaughtered a Rat.")
	require.IsType(t, SoloKill{}, ev)
	kill := ev.(SoloKill)
	assert.Equal(t, models.KillSlaughtered, kill.Verb)
	assert.Equal(t, "Rat", kill.Creature)

	ev = c.Classify("You slaughtered an Orga Anger.")
	assert.Equal(t, SoloKill{Verb: models.KillSlaughtered, Creature: "Orga Anger"}, ev)

	ev = c.Classify("You killed a Vermine.")
	assert.Equal(t, SoloKill{Verb: models.KillKilled, Creature: "Vermine"}, ev)
}

func TestClassify_definiteArticlePreserved(t *testing.T) {
	c := testClassifier(t)

	// "the Ramandu" is the boss variant, distinct from "Ramandu".
	ev := c.Classify("You vanquished the Ramandu.")
	assert.Equal(t, SoloKill{Verb: models.KillVanquished, Creature: "the Ramandu"}, ev)
}

func TestClassify_trailingTextRejected(t *testing.T) {
	c := testClassifier(t)

	// Status messages occupy the whole line; narrated text running past
	// the message tail must not classify.
	ev := c.Classify("Pip is no longer fallen. He waves.")
	assert.IsType(t, Ignored{}, ev)

	ev = c.Classify("Fen has fallen to a Rat. Ouch")
	assert.IsType(t, Ignored{}, ev)

	ev = c.Classify("Welcome to Clan Lord, Fen! Enjoy your stay")
	assert.IsType(t, Ignored{}, ev)
}

func TestClassify_assistedKill(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify("You helped vanquish a Greater Death.")
	assert.Equal(t, AssistedKill{Verb: models.KillAssistedVanquish, Creature: "Greater Death"}, ev)

	ev = c.Classify("You helped kill a Rat.")
	assert.Equal(t, AssistedKill{Verb: models.KillAssistedKill, Creature: "Rat"}, ev)
}

func TestClassify_welcome(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, Login{Name: "Fen"}, c.Classify("Welcome to Clan Lord, Fen!"))
	assert.Equal(t, Reconnect{Name: "pip"}, c.Classify("Welcome back, pip!"))
}

func TestClassify_trainerRank(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify("¥Your combat ability improves.")
	assert.Equal(t, TrainerRank{Trainer: "Bangus Anmash"}, ev)

	ev = c.Classify("¥You notice your balance recovering more quickly.")
	assert.Equal(t, TrainerRank{Trainer: "Regia"}, ev)
}

func TestClassify_bulletPrefixEquivalent(t *testing.T) {
	c := testClassifier(t)

	yen := c.Classify("¥Your combat ability improves.")
	bullet := c.Classify("•Your combat ability improves.")
	assert.Equal(t, yen, bullet)
}

func TestClassify_systemNoise(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, Ignored{}, c.Classify("¥You sense healing energy from Fen."))
	assert.Equal(t, Ignored{}, c.Classify("¥The Sun rises."))
	assert.Equal(t, Ignored{}, c.Classify("¥You gain experience from your studies."))
	assert.Equal(t, Ignored{}, c.Classify("¥You can study up to 3 creatures concurrently."))
	assert.Equal(t, Ignored{}, c.Classify("¥Some message nobody has ever seen before."))
}

func TestClassify_studyMessages(t *testing.T) {
	c := testClassifier(t)

	// The prefix may carry a space before the message body.
	ev := c.Classify("¥ You have been charged 100 coins for advanced studies.")
	assert.Equal(t, StudyCharge{Amount: 100}, ev)

	ev = c.Classify("¥You are currently studying the Rat, and have almost nothing left to learn.")
	assert.Equal(t, StudyProgress{Subject: "Rat"}, ev)

	ev = c.Classify("¥You abandon your study of the Rat.")
	assert.Equal(t, StudyAbandon{Subject: "Rat"}, ev)
}

func TestClassify_lastyMessages(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify("¥You begin studying the ways of the Vermine.")
	assert.Equal(t, LastyBegin{Type: models.LastyBefriend, Creature: "Vermine"}, ev)

	ev = c.Classify("¥You have much left to learn about the movements of the Orga.")
	assert.Equal(t, LastyProgress{Type: models.LastyMovements, Creature: "Orga"}, ev)

	ev = c.Classify("¥You learn to befriend the Vermine.")
	assert.Equal(t, LastyFinished{Type: models.LastyBefriend, Creature: "Vermine"}, ev)

	ev = c.Classify("¥You learn to assume the form of the Rat.")
	assert.Equal(t, LastyFinished{Type: models.LastyMorph, Creature: "Rat"}, ev)

	ev = c.Classify("¥You learn to fight the Orga more effectively.")
	assert.Equal(t, LastyFinished{Type: models.LastyMovements, Creature: "Orga"}, ev)

	ev = c.Classify("¥You have completed your training with Tenlasty.")
	assert.Equal(t, LastyCompleted{Trainer: "Tenlasty"}, ev)
}

func TestClassify_speechAndEmotesIgnored(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, Ignored{}, c.Classify(`Donk thinks, "south"`))
	assert.Equal(t, Ignored{}, c.Classify(`Fen says, "hello"`))
	assert.Equal(t, Ignored{}, c.Classify("(Fen waves)"))
}

func TestClassify_karmaBeatsSpeechFilter(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, Karma{Good: true}, c.Classify("You just received good karma from Fen."))
	assert.Equal(t, Karma{Good: false}, c.Classify("You just received anonymous bad karma."))
}

func TestClassify_applyLearningFullBeforePartial(t *testing.T) {
	c := testClassifier(t)

	full := c.Classify(`Mentus says, "Congratulations, Fen. You should now understand much more of Atkus's teachings."`)
	assert.Equal(t, ApplyLearning{Character: "Fen", Trainer: "Atkus", Full: true}, full)

	partial := c.Classify(`Mentus says, "Congratulations, Fen. You should now understand more of Atkus's teachings."`)
	assert.Equal(t, ApplyLearning{Character: "Fen", Trainer: "Atkus", Full: false}, partial)
}

func TestClassify_professionAnnouncements(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify(`A town crier thinks, "Congratulations go out to Fen, who has just passed the third circle fighter test."`)
	assert.Equal(t, ProfessionAnnouncement{Name: "Fen", Profession: models.ProfessionFighter}, ev)

	ev = c.Classify(`A town crier thinks, "Congratulations to Fen, who has just become a Healer."`)
	assert.Equal(t, ProfessionAnnouncement{Name: "Fen", Profession: models.ProfessionHealer}, ev)
}

func TestClassify_untrained(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify(`Untrainus says, "Fen, your mind is less cluttered now."`)
	assert.Equal(t, Untrained{}, ev)
}

func TestClassify_deathAndDeparts(t *testing.T) {
	c := testClassifier(t)

	ev := c.Classify("Fen has fallen to a Large Vermine.")
	assert.Equal(t, Fallen{Name: "Fen", Cause: "Large Vermine"}, ev)

	ev = c.Classify("Fen is no longer fallen.")
	assert.Equal(t, Recovered{Name: "Fen"}, ev)

	ev = c.Classify("This is the first time your spirit has departed your body.")
	assert.Equal(t, FirstDepart{}, ev)

	ev = c.Classify("Your spirit has departed your body 42 times.")
	assert.Equal(t, DepartCount{Count: 42}, ev)
}

func TestClassify_coinsAndLoot(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, CoinsPickedUp{Amount: 50}, c.Classify("* You pick up 50 coins."))
	assert.Equal(t, CoinBalance{Amount: 101}, c.Classify("You have 101 coins."))

	ev := c.Classify("* Fen recovers the Dark Vermine fur, worth 20c. Your share is 10c.")
	assert.Equal(t, LootShare{Item: "Dark Vermine", Kind: "fur", Worth: 20, Share: 10}, ev)

	// Self recoveries have no share clause; the whole worth is yours.
	ev = c.Classify("* You recover the Arachne blood, worth 90c.")
	assert.Equal(t, LootShare{Item: "Arachne", Kind: "blood", Worth: 90, Share: 90}, ev)

	ev = c.Classify("* Fen recovers the Scavenger mandibles, worth 8c. Your share is 4c.")
	assert.Equal(t, LootShare{Item: "Scavenger", Kind: "mandible", Worth: 8, Share: 4}, ev)
}

func TestClassify_equipment(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, GearEvent{Kind: GearBellBroken}, c.Classify("* Your bell crumbles to dust."))
	assert.Equal(t, GearEvent{Kind: GearBellUsed}, c.Classify("* The bell rings soundlessly into the void, summoning aid."))
	assert.Equal(t, GearEvent{Kind: GearChainBroken}, c.Classify("Your chain breaks as you try to use it."))
	assert.Equal(t, GearEvent{Kind: GearChainBroken}, c.Classify("A link in your chain shatters."))
	assert.Equal(t, GearEvent{Kind: GearChainBroken}, c.Classify("Your chain snaps as you try to use it."))
	assert.Equal(t, GearEvent{Kind: GearChainUsed}, c.Classify("You start dragging Fen."))
	assert.Equal(t, GearEvent{Kind: GearShieldstoneUsed}, c.Classify("* You activate your shieldstone."))
	assert.Equal(t, GearEvent{Kind: GearShieldstoneBroken}, c.Classify("Your Shieldstone goes inert."))
	assert.Equal(t, GearEvent{Kind: GearEtherealPortal}, c.Classify("You open an ethereal portal."))
	assert.Equal(t, EtherealStoneUsed{}, c.Classify("Your ethereal portal stone disappears into the ether."))
}

func TestClassify_esteemBeforeExperience(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, EsteemGain{}, c.Classify("* You gain experience and esteem for that kill."))
	assert.Equal(t, EsteemGain{}, c.Classify("* You gain esteem."))
	assert.Equal(t, ExperienceGain{}, c.Classify("* You gain experience for that kill."))
	assert.Equal(t, ExperienceGain{}, c.Classify("* You grow more mindful."))
}

func TestClassify_clanningAndDisconnect(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, ClanningChange{Name: "Fen", Clanning: true}, c.Classify("Fen is now Clanning."))
	assert.Equal(t, ClanningChange{Name: "Fen", Clanning: false}, c.Classify("Fen is no longer Clanning."))
	assert.Equal(t, Disconnect{}, c.Classify("*** We are no longer connected to the Clan Lord game server. ***"))
}

func TestClassify_unknownIgnored(t *testing.T) {
	c := testClassifier(t)

	assert.Equal(t, Ignored{}, c.Classify(""))
	assert.Equal(t, Ignored{}, c.Classify("   "))
	assert.Equal(t, Ignored{}, c.Classify("The wind howls through the pass."))
}

func TestWelcomeName(t *testing.T) {
	name, ok := WelcomeName("Welcome to Clan Lord, Fen!")
	assert.True(t, ok)
	assert.Equal(t, "Fen", name)

	name, ok = WelcomeName("Welcome back, pip!")
	assert.True(t, ok)
	assert.Equal(t, "pip", name)

	_, ok = WelcomeName("You killed a Rat.")
	assert.False(t, ok)
}
