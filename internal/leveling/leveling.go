// Package leveling maps a point total to a gecko level, a letter grade, and
// progress toward the next tier. Pure functions, fixed thresholds.
package leveling

type Level string

const (
	Hatchling Level = "Hatchling"
	Climber   Level = "Climber"
	Stalker   Level = "Stalker"
	Alpha     Level = "Alpha Gecko"
)

// Tier floors. The grade ladder tops out at gradeCap, one band above the
// level ladder's Alpha floor. The two scales are intentionally separate.
const (
	climberFloor = 16
	stalkerFloor = 31
	alphaFloor   = 46
	gradeCap     = 53
)

func ForPoints(points int) Level {
	switch {
	case points >= alphaFloor:
		return Alpha
	case points >= stalkerFloor:
		return Stalker
	case points >= climberFloor:
		return Climber
	default:
		return Hatchling
	}
}

func Grade(points int) string {
	switch {
	case points >= gradeCap:
		return "A+"
	case points >= 46:
		return "A"
	case points >= 36:
		return "B"
	case points >= 26:
		return "C"
	case points >= 16:
		return "D"
	default:
		return "E"
	}
}

// Progress describes how far a point total is through its current tier.
// Max is the point value where the next tier begins (gradeCap once Alpha
// is reached), Next names the next tier or "MAX" at the ceiling.
type Progress struct {
	Current int     `json:"current"`
	Max     int     `json:"max"`
	Percent float64 `json:"percent"`
	Next    string  `json:"next"`
}

func LevelProgress(points int) Progress {
	switch {
	case points >= alphaFloor:
		return Progress{Current: points, Max: gradeCap, Percent: 100, Next: "MAX"}
	case points >= stalkerFloor:
		return Progress{
			Current: points,
			Max:     alphaFloor,
			Percent: clampPercent(float64(points-stalkerFloor) / float64(alphaFloor-stalkerFloor) * 100),
			Next:    string(Alpha),
		}
	case points >= climberFloor:
		return Progress{
			Current: points,
			Max:     stalkerFloor,
			Percent: clampPercent(float64(points-climberFloor) / float64(stalkerFloor-climberFloor) * 100),
			Next:    string(Stalker),
		}
	default:
		return Progress{
			Current: points,
			Max:     climberFloor,
			Percent: clampPercent(float64(points) / float64(climberFloor) * 100),
			Next:    string(Climber),
		}
	}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
