package budget

// Reward is the experience and coins granted for a month's budget score.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

type tier struct {
	minScore int
	reward   Reward
}

// Ordered from the highest threshold down.
var tiers = []tier{
	{minScore: 90, reward: Reward{XP: 50, Coins: 25}},
	{minScore: 75, reward: Reward{XP: 30, Coins: 10}},
	{minScore: 60, reward: Reward{XP: 15, Coins: 5}},
	{minScore: 40, reward: Reward{XP: 5, Coins: 0}},
}

// RewardsFor returns the reward tier reached by score.
func RewardsFor(score int) Reward {
	for _, t := range tiers {
		if score >= t.minScore {
			return t.reward
		}
	}
	return Reward{}
}
