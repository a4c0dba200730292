package model

// Point awards per event.
const (
	TimerCompletePoints = 5
	HabitCheckPoints    = 2
	MoodSavePoints      = 1

	maxSessionPoints = 10
)

type Tier string

const (
	TierSeedling Tier = "Seedling"
	TierSprout   Tier = "Sprout"
	TierGrower   Tier = "Grower"
	TierAchiever Tier = "Achiever"
	TierMaster   Tier = "Master"
)

var tierThresholds = []struct {
	min  int
	tier Tier
}{
	{600, TierMaster},
	{300, TierAchiever},
	{150, TierGrower},
	{50, TierSprout},
	{0, TierSeedling},
}

func LevelFor(points int) Tier {
	for _, th := range tierThresholds {
		if points >= th.min {
			return th.tier
		}
	}
	return TierSeedling
}

// Rank is the 1-based position of the tier.
func (t Tier) Rank() int {
	for i, th := range tierThresholds {
		if th.tier == t {
			return len(tierThresholds) - i
		}
	}
	return 0
}

// NextThreshold returns the points needed for the next tier, or false at the top.
func NextThreshold(points int) (int, bool) {
	for i := len(tierThresholds) - 1; i >= 0; i-- {
		if tierThresholds[i].min > points {
			return tierThresholds[i].min, true
		}
	}
	return 0, false
}

// SessionPoints awards one point per five minutes, at least 1 and at most 10.
func SessionPoints(minutes int) int {
	p := minutes / 5
	if p < 1 {
		return 1
	}
	if p > maxSessionPoints {
		return maxSessionPoints
	}
	return p
}
