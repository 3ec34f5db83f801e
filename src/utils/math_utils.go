package utils

import "math"

// ClampFloat limits val to [min, max].
func ClampFloat(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteValue dereferences p when it holds a finite number.
func FiniteValue(p *float64) (float64, bool) {
	if p == nil || !IsFinite(*p) {
		return 0, false
	}
	return *p, true
}
