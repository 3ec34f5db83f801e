// Package valuation classifies currencies as under- or overvalued from their
// Big Mac index deviation and prepares the result for a marker map.
package valuation

import (
	"math"

	"github.com/username/bigmacindex/src/utils"
)

type Category string

const (
	Undervalued Category = "undervalued"
	Neutral     Category = "neutral"
	Overvalued  Category = "overvalued"
)

// Percent thresholds. USD_adjusted is already a percentage deviation.
const (
	UndervaluedThreshold = -10.0
	OvervaluedThreshold  = 10.0

	severeThreshold = 20.0
)

// Ratio thresholds used by the currency classification endpoint. They read the
// same column as the percent thresholds but treat it as a ratio to parity.
const (
	RatioUndervalued = 0.9
	RatioOvervalued  = 1.1
)

const (
	minRadius = 8.0
	maxRadius = 25.0
)

var colors = map[Category]string{
	Undervalued: "rgba(34, 197, 94, 0.8)",
	Neutral:     "rgba(251, 146, 60, 0.8)",
	Overvalued:  "rgba(239, 68, 68, 0.8)",
}

var emojis = map[Category]string{
	Undervalued: "🟢",
	Neutral:     "🟠",
	Overvalued:  "🔴",
}

// Classify buckets a percentage deviation. Both thresholds are inclusive.
func Classify(deviation float64) Category {
	switch {
	case deviation <= UndervaluedThreshold:
		return Undervalued
	case deviation >= OvervaluedThreshold:
		return Overvalued
	default:
		return Neutral
	}
}

// ClassifyRatio buckets a value on the ratio convention. Both thresholds are
// exclusive.
func ClassifyRatio(v float64) Category {
	switch {
	case v < RatioUndervalued:
		return Undervalued
	case v > RatioOvervalued:
		return Overvalued
	default:
		return Neutral
	}
}

func Color(c Category) string {
	return colors[c]
}

func Emoji(c Category) string {
	return emojis[c]
}

// Radius grows with the size of the deviation, 15 pixels per 10 points,
// clamped to [8, 25].
func Radius(deviation float64) float64 {
	return utils.ClampFloat(minRadius+math.Abs(deviation)/10*15, minRadius, maxRadius)
}
