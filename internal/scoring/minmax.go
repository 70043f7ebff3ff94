package scoring

import "math"

// MinMax represents an observed min/max range.
type MinMax struct {
	Min float64
	Max float64
}

// Range returns max - min.
func (m MinMax) Range() float64 {
	return m.Max - m.Min
}

// IsSingleValue returns true if min equals max (within tolerance).
func (m MinMax) IsSingleValue() bool {
	return math.Abs(m.Max-m.Min) < 1e-10
}

// Clamp01 clamps a value into [0, 1].
func Clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
