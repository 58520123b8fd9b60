package material

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

func sanitizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func sanitizeDegreesInt(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}
