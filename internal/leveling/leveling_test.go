package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPoints_Boundaries(t *testing.T) {
	testCases := []struct {
		name     string
		points   int
		expected Level
	}{
		{"zero points", 0, Hatchling},
		{"just below climber", 15, Hatchling},
		{"climber floor", 16, Climber},
		{"top of climber band", 30, Climber},
		{"stalker floor", 31, Stalker},
		{"top of stalker band", 45, Stalker},
		{"alpha floor", 46, Alpha},
		{"well past alpha", 120, Alpha},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ForPoints(tc.points))
		})
	}
}

func TestForPoints_Monotonic(t *testing.T) {
	rank := map[Level]int{Hatchling: 0, Climber: 1, Stalker: 2, Alpha: 3}

	prev := ForPoints(0)
	for p := 1; p <= 200; p++ {
		current := ForPoints(p)
		assert.GreaterOrEqual(t, rank[current], rank[prev],
			"level regressed between %d and %d points", p-1, p)
		prev = current
	}
}

func TestGrade_Boundaries(t *testing.T) {
	testCases := []struct {
		points   int
		expected string
	}{
		{0, "E"},
		{15, "E"},
		{16, "D"},
		{25, "D"},
		{26, "C"},
		{35, "C"},
		{36, "B"},
		{45, "B"},
		{46, "A"},
		{52, "A"},
		{53, "A+"},
		{99, "A+"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Grade(tc.points), "points=%d", tc.points)
	}
}

func TestLevelProgress_PercentAlwaysInRange(t *testing.T) {
	for p := 0; p <= 200; p++ {
		progress := LevelProgress(p)
		assert.GreaterOrEqual(t, progress.Percent, 0.0, "points=%d", p)
		assert.LessOrEqual(t, progress.Percent, 100.0, "points=%d", p)
	}
}

func TestLevelProgress_TierTargets(t *testing.T) {
	testCases := []struct {
		name        string
		points      int
		expectedMax int
		expectedNxt string
	}{
		{"hatchling aims at climber", 0, 16, string(Climber)},
		{"climber aims at stalker", 20, 31, string(Stalker)},
		{"stalker aims at alpha", 40, 46, string(Alpha)},
		{"alpha is capped", 46, 53, "MAX"},
		{"beyond the grade cap stays MAX", 60, 53, "MAX"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			progress := LevelProgress(tc.points)
			assert.Equal(t, tc.points, progress.Current)
			assert.Equal(t, tc.expectedMax, progress.Max)
			assert.Equal(t, tc.expectedNxt, progress.Next)
		})
	}
}

func TestLevelProgress_KnownValues(t *testing.T) {
	assert.InDelta(t, 50.0, LevelProgress(8).Percent, 0.001)
	assert.InDelta(t, 0.0, LevelProgress(16).Percent, 0.001)
	assert.InDelta(t, 100.0, LevelProgress(46).Percent, 0.001)
}
