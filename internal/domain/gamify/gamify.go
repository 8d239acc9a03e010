// Package gamify derives display-facing progression metrics from stored
// score aggregates: gemstone tier, level, and abbreviated point strings.
// Everything here is pure computation; the package never touches storage.
package gamify

import (
	"fmt"
	"strconv"
)

// Points thresholds for abbreviated formatting and level progression.
const (
	pointsPerLevel = 10_000_000
	millionPoints  = 1_000_000
	thousandPoints = 1_000
)

// Tier names ordered from lowest to highest.
const (
	TierQuartz   = "Quartz"
	TierAmethyst = "Amethyst"
	TierTopaz    = "Topaz"
	TierEmerald  = "Emerald"
	TierRuby     = "Ruby"
	TierSapphire = "Sapphire"
	TierDiamond  = "Diamond"
)

// tierSteps maps exclusive upper bounds of average accuracy to tier names,
// applied in ascending order. Averages at or above the last bound are
// Diamond.
var tierSteps = []struct {
	below float64
	name  string
}{
	{0.70, TierQuartz},
	{0.75, TierAmethyst},
	{0.80, TierTopaz},
	{0.85, TierEmerald},
	{0.90, TierRuby},
	{0.95, TierSapphire},
}

// Summary bundles every derived metric for one profile.
type Summary struct {
	TotalPoints     int64   `json:"total_points"`
	AvgPercentDP    float64 `json:"avg_percent_dp"`
	Tier            string  `json:"tier"`
	Level           int     `json:"level"`
	FormattedPoints string  `json:"formatted_points"`
}

// Tier returns the gemstone tier for an average accuracy in [0,1].
// A zero or undefined average (profile with no records) maps to the
// lowest tier.
func Tier(avgPercentDP float64) string {
	for _, step := range tierSteps {
		if avgPercentDP < step.below {
			return step.name
		}
	}
	return TierDiamond
}

// Level returns the progression level for a cumulative point total.
// Every ten million points is one level; the result is always at least 1.
func Level(totalPoints int64) int {
	if totalPoints < 0 {
		return 1
	}
	return int(totalPoints/pointsPerLevel) + 1
}

// FormatPoints renders a point total in abbreviated notation: millions
// with two decimals and an "M" suffix, thousands with one decimal and a
// "K" suffix, otherwise the plain integer.
func FormatPoints(totalPoints int64) string {
	switch {
	case totalPoints >= millionPoints:
		return fmt.Sprintf("%.2fM", float64(totalPoints)/millionPoints)
	case totalPoints >= thousandPoints:
		return fmt.Sprintf("%.1fK", float64(totalPoints)/thousandPoints)
	default:
		return strconv.FormatInt(totalPoints, 10)
	}
}

// Summarize derives every progression metric from a profile's stored
// totals. Calling it repeatedly with the same inputs yields identical
// results.
func Summarize(totalPoints int64, avgPercentDP float64) Summary {
	return Summary{
		TotalPoints:     totalPoints,
		AvgPercentDP:    avgPercentDP,
		Tier:            Tier(avgPercentDP),
		Level:           Level(totalPoints),
		FormattedPoints: FormatPoints(totalPoints),
	}
}
