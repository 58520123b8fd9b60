package material

import (
	"math"

	"cogentcore.org/core/colors/cam/hct"
)

// isDisliked reports whether h falls in the dark yellow-green region people
// consistently rate as unpleasant.
func isDisliked(h hct.HCT) bool {
	hue := math.Round(float64(h.Hue))
	return hue >= 90 && hue <= 111 &&
		math.Round(float64(h.Chroma)) > 16 &&
		math.Round(float64(h.Tone)) < 65
}

// fixIfDisliked lightens a disliked colour to tone 70.
func fixIfDisliked(h hct.HCT) hct.HCT {
	if isDisliked(h) {
		return hct.New(h.Hue, h.Chroma, 70)
	}
	return h
}
