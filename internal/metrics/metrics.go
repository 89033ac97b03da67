// Package metrics derives per-signal risk and performance figures. All
// functions are pure and degrade to zero or "undefined" on missing data
// instead of returning errors.
package metrics

import (
	"math"

	"signalboard/internal/domain"
)

// Quality badge tiers
const (
	QualityGood    = "good"
	QualityNeutral = "neutral"
	QualityWarning = "warning"
)

// usable reports whether a price level can participate in a calculation.
// NaN marks a failed parse; zero is treated the same way ("no data").
func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0
}

// ProfitPercent computes the percentage profit or loss of a signal at the
// current price. Unrecognized sides yield 0 rather than borrowing either
// formula.
func ProfitPercent(entry, price float64, side string) float64 {
	if !usable(entry) || !usable(price) {
		return 0
	}
	switch side {
	case domain.SideLong:
		return (price - entry) / entry * 100
	case domain.SideShort:
		return (entry - price) / entry * 100
	}
	return 0
}

// Progress maps the current price onto a 0-100 position between stop-loss
// (0) and take-profit (100), clamped at both ends. For SHORT signals the
// value is inverted so progress toward profit always increases.
func Progress(entry, price, takeProfit, stopLoss float64, side string) float64 {
	if !usable(entry) || !usable(price) || !usable(takeProfit) || !usable(stopLoss) {
		return 0
	}
	if takeProfit == stopLoss {
		return 0
	}

	pct := (price - stopLoss) / (takeProfit - stopLoss) * 100
	pct = math.Max(0, math.Min(100, pct))

	switch side {
	case domain.SideLong:
		return pct
	case domain.SideShort:
		return 100 - pct
	}
	return 0
}

// RewardRisk computes the reward:risk ratio of a signal. ok is false when the
// ratio is undefined: missing levels, an unrecognized side, or stop-loss /
// take-profit placed on the wrong side of entry for the stated direction.
func RewardRisk(entry, takeProfit, stopLoss float64, side string) (ratio float64, ok bool) {
	if !usable(entry) || !usable(takeProfit) || !usable(stopLoss) {
		return 0, false
	}

	var risk, reward float64
	switch side {
	case domain.SideLong:
		risk = entry - stopLoss
		reward = takeProfit - entry
	case domain.SideShort:
		risk = stopLoss - entry
		reward = entry - takeProfit
	default:
		return 0, false
	}

	if risk <= 0 || reward <= 0 {
		return 0, false
	}
	return reward / risk, true
}

// QualityTier maps an AI score to a badge tier: >= 80 is good, <= 60 is a
// warning, the 61-79 band (and unparseable scores) is neutral.
func QualityTier(score float64) string {
	switch {
	case score >= 80:
		return QualityGood
	case score <= 60:
		return QualityWarning
	default:
		return QualityNeutral
	}
}
