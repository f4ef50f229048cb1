package analytics

import "math"

// ScaledScore is the result of scaling a raw practice score.
type ScaledScore struct {
	Percent int `json:"percent"`
	Scaled  int `json:"scaled_score"`
}

// Scaler maps a raw/total ratio linearly onto [Min, Max].
type Scaler struct {
	Min int
	Max int
}

// NewScaler builds a scaler for the given bounds, falling back to 118..132 when they are inverted.
func NewScaler(min, max int) Scaler {
	if min <= 0 || max <= min {
		return Scaler{Min: 118, Max: 132}
	}
	return Scaler{Min: min, Max: max}
}

// Scale converts a raw score into percent and scaled score. A non-positive total yields 0% and the floor.
func (s Scaler) Scale(raw, total int) ScaledScore {
	if total <= 0 {
		return ScaledScore{Percent: 0, Scaled: s.Min}
	}
	ratio := float64(raw) / float64(total)
	percent := clamp(roundHalfUp(ratio*100), 0, 100)
	scaled := clamp(s.Min+roundHalfUp(ratio*float64(s.Max-s.Min)), s.Min, s.Max)
	return ScaledScore{Percent: percent, Scaled: scaled}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
