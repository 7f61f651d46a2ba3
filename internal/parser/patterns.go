package parser

import "regexp"

// The game emits system messages behind either a yen sign or a bullet
// depending on client encoding vintage; the classifier treats them as
// the same prefix.
const (
	systemPrefixYen    = "¥" // ¥
	systemPrefixBullet = "•" // •
)

// Whole-line messages are anchored at both ends; prefix patterns (bell
// summons, experience gains, speech) match the head only because the
// client appends variable tails to them.
var (
	reWelcomeLogin = regexp.MustCompile(`^Welcome to Clan Lord, (.+)!$`)
	reWelcomeBack  = regexp.MustCompile(`^Welcome back, (.+)!$`)

	reSoloKill     = regexp.MustCompile(`^You (killed|slaughtered|vanquished|dispatched) (.+)\.$`)
	reAssistedKill = regexp.MustCompile(`^You helped (kill|slaughter|vanquish|dispatch) (.+)\.$`)

	reFallen      = regexp.MustCompile(`^(.+) has fallen to an? (.+)\.$`)
	reRecovered   = regexp.MustCompile(`^(.+) is no longer fallen\.$`)
	reFirstDepart = regexp.MustCompile(`^This is the first time your spirit has departed your body\.$`)
	reDepartCount = regexp.MustCompile(`^Your spirit has departed your body (\d+) times?\.$`)

	reCoinsPickedUp = regexp.MustCompile(`^\* You pick up (\d+) coins?\.$`)
	reCoinBalance   = regexp.MustCompile(`^You have (\d+) coins?\.$`)
	reLootShare     = regexp.MustCompile(`^\* (?:.+) recovers? the (.+) (fur|blood|mandibles?), worth (\d+)c\. Your share is (\d+)c\.$`)
	reSelfRecovery  = regexp.MustCompile(`^\* You recover the (.+) (fur|blood|mandibles?), worth (\d+)c\.$`)

	reSpeech = regexp.MustCompile(`^.+ (says|exclaims|yells|ponders|thinks|asks), "`)
	reEmote  = regexp.MustCompile(`^\(.+ .+\)$`)

	reClanning = regexp.MustCompile(`^(.+) is (now|no longer) Clanning\.$`)

	reStudyCharge   = regexp.MustCompile(`^You have been charged (\d+) coins? for advanced studies\.$`)
	reStudyProgress = regexp.MustCompile(`^You are (?:currently studying|remembering your studies of) the (.+), and have (.+) left to learn\.$`)
	reStudyAbandon  = regexp.MustCompile(`^You abandon your study of the (.+)\.$`)

	reLastyBegin         = regexp.MustCompile(`^You begin studying the (ways|movements|essence) of the (.+)\.$`)
	reLastyLearnProgress = regexp.MustCompile(`^You have .+ left to learn about the (ways|movements|essence) of the (.+)\.$`)
	reLastyBefriend      = regexp.MustCompile(`^You learn to befriend the (.+)\.$`)
	reLastyMorph         = regexp.MustCompile(`^You learn to assume the form of the (.+)\.$`)
	reLastyMovements     = regexp.MustCompile(`^You learn to fight the (.+) more effectively\.$`)
	reLastyCompleted     = regexp.MustCompile(`^You have completed your training with (.+)\.$`)

	reYenHealingSense    = regexp.MustCompile(`^You sense healing energy from .+\.$`)
	reYenSunEvent        = regexp.MustCompile(`^The Sun (rises|sets)\.$`)
	reYenStudyGain       = regexp.MustCompile(`^You gain experience from your`)
	reYenStudyConcurrent = regexp.MustCompile(`^You can study up to \d+ creatures? concurrently\.$`)

	reDisconnect = regexp.MustCompile(`^\*\*\* We are no longer connected to the Clan Lord game server\. \*\*\*$`)

	reEsteemGain     = regexp.MustCompile(`^\* You gain (?:experience and )?esteem`)
	reExperienceGain = regexp.MustCompile(`^\* You (grow more mindful|gain experience|gain morale)`)

	reBellBroken        = regexp.MustCompile(`^\* Your bell crumbles to dust\.$`)
	reBellUsed          = regexp.MustCompile(`^\* The bell rings soundlessly into the void, summoning`)
	reChainBreak        = regexp.MustCompile(`^Your chain breaks as you try to use it\.$`)
	reChainShatter      = regexp.MustCompile(`^A link in your chain shatters\.$`)
	reChainSnap         = regexp.MustCompile(`^Your chain snaps as you try to use it\.$`)
	reChainDrag         = regexp.MustCompile(`^You start dragging (.+)\.$`)
	reShieldstoneUsed   = regexp.MustCompile(`^\* You activate your shieldstone\.$`)
	reShieldstoneBroken = regexp.MustCompile(`^Your Shieldstone goes inert\.$`)
	reEtherealPortal    = regexp.MustCompile(`^You open an ethereal portal\.$`)
	reEtherealStoneUsed = regexp.MustCompile(`^Your ethereal portal stone disappears into the ether\.$`)

	reKarma = regexp.MustCompile(`^You just received (?:anonymous )?(good|bad) karma`)

	reApplyLearningFull    = regexp.MustCompile(`says, "Congratulations, (.+)\. You should now understand much more of (.+)['’]s teachings\."`)
	reApplyLearningPartial = regexp.MustCompile(`says, "Congratulations, (.+)\. You should now understand more of (.+)['’]s teachings\."`)
	reProfessionCircle     = regexp.MustCompile(`thinks, "Congratulations go out to (.+), who has just passed the \w+ circle (\w+) test\."`)
	reProfessionBecome     = regexp.MustCompile(`thinks, "Congratulations to (.+), who has just become an? (\w+)\."`)
	reUntrained            = regexp.MustCompile(`^Untrainus says, ".+, your mind is less cluttered now\."`)
)
