package colour

import (
	"math"
	"sort"

	"cogentcore.org/core/colors/cam/hct"
)

const (
	targetChroma            = 48.0
	weightProportion        = 0.7
	weightChromaAbove       = 0.3
	weightChromaBelow       = 0.1
	cutoffChroma            = 5.0
	cutoffExcitedProportion = 0.01
)

// FallbackSource is returned by Score when no colour survives filtering.
const FallbackSource ARGB = 0xff4285f4

// ScoreOptions configures Score.
type ScoreOptions struct {
	// Desired is the maximum number of colours returned. Defaults to 4.
	Desired int

	// Fallback is used when nothing qualifies. Defaults to FallbackSource.
	Fallback ARGB

	// Filter drops low-chroma and rare colours. Defaults to true via DefaultScoreOptions.
	Filter bool
}

// DefaultScoreOptions returns the options used for theme source selection.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{Desired: 4, Fallback: FallbackSource, Filter: true}
}

type scoredColour struct {
	argb  ARGB
	hue   float64
	score float64
}

// Score ranks colours by suitability as a theme source colour. Colours that
// are common in the image (counting neighbouring hues) and close to the
// target chroma win; chosen colours are kept at least 15 degrees apart in
// hue, preferring the widest spacing that still yields Desired colours.
func Score(population map[ARGB]float64, opts ScoreOptions) []ARGB {
	if opts.Desired <= 0 {
		opts.Desired = 4
	}
	if opts.Fallback == 0 {
		opts.Fallback = FallbackSource
	}

	type entry struct {
		argb   ARGB
		hue    float64
		chroma float64
	}

	entries := make([]entry, 0, len(population))
	var huePopulation [360]float64
	populationSum := 0.0

	// Iterate in a stable order so ties resolve deterministically.
	keys := make([]ARGB, 0, len(population))
	for c := range population {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, c := range keys {
		pop := population[c]
		h := hct.FromColor(c.RGBA())
		hue := float64(h.Hue)
		entries = append(entries, entry{argb: c, hue: hue, chroma: float64(h.Chroma)})
		huePopulation[sanitizeDegreesInt(int(math.Floor(hue)))] += pop
		populationSum += pop
	}

	if populationSum == 0 {
		return []ARGB{opts.Fallback}
	}

	var hueExcitedProportions [360]float64
	for hue := 0; hue < 360; hue++ {
		proportion := huePopulation[hue] / populationSum
		for i := hue - 14; i < hue+16; i++ {
			hueExcitedProportions[sanitizeDegreesInt(i)] += proportion
		}
	}

	scored := make([]scoredColour, 0, len(entries))
	for _, e := range entries {
		hue := sanitizeDegreesInt(int(math.Round(e.hue)))
		proportion := hueExcitedProportions[hue]
		if opts.Filter && (e.chroma < cutoffChroma || proportion <= cutoffExcitedProportion) {
			continue
		}

		proportionScore := proportion * 100.0 * weightProportion
		chromaWeight := weightChromaAbove
		if e.chroma < targetChroma {
			chromaWeight = weightChromaBelow
		}
		chromaScore := (e.chroma - targetChroma) * chromaWeight

		scored = append(scored, scoredColour{argb: e.argb, hue: e.hue, score: proportionScore + chromaScore})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var chosen []scoredColour
	for minDistance := 90; minDistance >= 15; minDistance-- {
		chosen = chosen[:0]
		for _, candidate := range scored {
			duplicate := false
			for _, c := range chosen {
				if differenceDegrees(candidate.hue, c.hue) < float64(minDistance) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				chosen = append(chosen, candidate)
			}
			if len(chosen) >= opts.Desired {
				break
			}
		}
		if len(chosen) >= opts.Desired {
			break
		}
	}

	if len(chosen) == 0 {
		return []ARGB{opts.Fallback}
	}

	colors := make([]ARGB, len(chosen))
	for i, c := range chosen {
		colors[i] = c.argb
	}
	return colors
}

func sanitizeDegreesInt(degrees int) int {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

func differenceDegrees(a, b float64) float64 {
	return 180.0 - math.Abs(math.Abs(a-b)-180.0)
}
