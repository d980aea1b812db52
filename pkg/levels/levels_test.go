package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIsContiguousAndOrdered(t *testing.T) {
	tbl := Tiers()
	require.NotEmpty(t, tbl)
	assert.Equal(t, 0, tbl[0].MinXP)
	for i := 1; i < len(tbl); i++ {
		assert.Equal(t, tbl[i-1].MaxXP, tbl[i].MinXP, "tier %d must start where tier %d ends", tbl[i].Level, tbl[i-1].Level)
		assert.Equal(t, tbl[i-1].Level+1, tbl[i].Level)
	}
	assert.True(t, tbl[len(tbl)-1].Unbounded())
}

func TestForXP_ExactlyOneTierMatches(t *testing.T) {
	tbl := Tiers()
	for _, x := range []int{0, 1, 99, 100, 249, 250, 999, 1000, 5999, 19999, 20000, 100000} {
		matches := 0
		for _, tier := range tbl {
			if x >= tier.MinXP && (tier.Unbounded() || x < tier.MaxXP) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "xp=%d", x)
	}
}

func TestForXP_MonotonicLevel(t *testing.T) {
	prev := 0
	for x := 0; x <= 25000; x += 50 {
		lvl := LevelForXP(x)
		assert.GreaterOrEqual(t, lvl, prev, "xp=%d", x)
		prev = lvl
	}
}

func TestForXP_TopTierUnbounded(t *testing.T) {
	for _, x := range []int{20000, 20001, 50000, 1 << 30} {
		p := ForXP(x)
		assert.Equal(t, 10, p.Level, "xp=%d", x)
		assert.Equal(t, 100, p.PercentageToNext)
		assert.Equal(t, 0, p.NextLevelXP)
	}
}

func TestForXP_Progress(t *testing.T) {
	tests := []struct {
		name    string
		xp      int
		level   int
		cur     int
		next    int
		percent int
	}{
		{name: "zero", xp: 0, level: 1, cur: 0, next: 100, percent: 0},
		{name: "mid first tier", xp: 50, level: 1, cur: 50, next: 50, percent: 50},
		{name: "boundary rolls over", xp: 100, level: 2, cur: 0, next: 150, percent: 0},
		{name: "one below boundary", xp: 99, level: 1, cur: 99, next: 1, percent: 99},
		{name: "tier five", xp: 1500, level: 5, cur: 500, next: 500, percent: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForXP(tt.xp)
			assert.Equal(t, tt.level, p.Level)
			assert.Equal(t, tt.cur, p.CurrentLevelXP)
			assert.Equal(t, tt.next, p.NextLevelXP)
			assert.Equal(t, tt.percent, p.PercentageToNext)
		})
	}
}
