package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

// lerpf moves a toward b by fraction t.
func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}

// floorf rounds down a float32.
func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
