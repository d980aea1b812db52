package levels

// Tier is one row of the static level table. MinXP is inclusive, MaxXP is
// exclusive. The top tier has MaxXP == 0 and matches every value at or above
// its MinXP.
type Tier struct {
	Level int      `json:"level"`
	Title string   `json:"title"`
	MinXP int      `json:"min_xp"`
	MaxXP int      `json:"max_xp"`
	Perks []string `json:"perks"`
}

// Unbounded marks the top tier's upper bound.
func (t Tier) Unbounded() bool { return t.MaxXP == 0 }

// tiers must stay contiguous and ordered: MinXP of tier n+1 equals MaxXP of
// tier n, so exactly one tier matches any non-negative XP value.
var tiers = []Tier{
	{Level: 1, Title: "Beginner", MinXP: 0, MaxXP: 100, Perks: []string{"Track up to 3 habits"}},
	{Level: 2, Title: "Apprentice", MinXP: 100, MaxXP: 250, Perks: []string{"Track up to 5 habits"}},
	{Level: 3, Title: "Committed", MinXP: 250, MaxXP: 500, Perks: []string{"Weekly summary"}},
	{Level: 4, Title: "Consistent", MinXP: 500, MaxXP: 1000, Perks: []string{"Custom reminders"}},
	{Level: 5, Title: "Dedicated", MinXP: 1000, MaxXP: 2000, Perks: []string{"Calendar heatmap"}},
	{Level: 6, Title: "Disciplined", MinXP: 2000, MaxXP: 3500, Perks: []string{"Streak insurance badge"}},
	{Level: 7, Title: "Relentless", MinXP: 3500, MaxXP: 6000, Perks: []string{"Advanced statistics"}},
	{Level: 8, Title: "Unstoppable", MinXP: 6000, MaxXP: 10000, Perks: []string{"Priority support"}},
	{Level: 9, Title: "Master", MinXP: 10000, MaxXP: 20000, Perks: []string{"Beta features"}},
	{Level: 10, Title: "Atomic", MinXP: 20000, MaxXP: 0, Perks: []string{"Lifetime bragging rights"}},
}

// Progress describes where a given XP total sits within the level table.
type Progress struct {
	Level            int  `json:"level"`
	CurrentLevelXP   int  `json:"current_level_xp"`
	NextLevelXP      int  `json:"next_level_xp"`
	PercentageToNext int  `json:"percentage_to_next"`
	Tier             Tier `json:"tier"`
}

// ForXP maps a non-negative XP total to its tier. Negative input is a caller
// contract violation; XP is clamped at 0 before it reaches this package.
func ForXP(totalXP int) Progress {
	tier := tiers[len(tiers)-1]
	for _, t := range tiers {
		if totalXP >= t.MinXP && (t.Unbounded() || totalXP < t.MaxXP) {
			tier = t
			break
		}
	}

	p := Progress{
		Level:          tier.Level,
		CurrentLevelXP: totalXP - tier.MinXP,
		Tier:           tier,
	}
	if tier.Unbounded() {
		p.NextLevelXP = 0
		p.PercentageToNext = 100
		return p
	}
	span := tier.MaxXP - tier.MinXP
	p.NextLevelXP = tier.MaxXP - totalXP
	p.PercentageToNext = p.CurrentLevelXP * 100 / span
	return p
}

// LevelForXP is a shorthand for ForXP(totalXP).Level.
func LevelForXP(totalXP int) int {
	return ForXP(totalXP).Level
}

// Tiers returns a copy of the level table for display purposes.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
