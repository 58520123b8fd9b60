package material

import (
	"math"

	"cogentcore.org/core/colors/cam/hct"
	"github.com/lucasb-eyer/go-colorful"
)

// temperatureCache ranks hues of a fixed chroma and tone by perceived
// warmth. Warm colours are yellow-orange, cool colours blue-violet.
type temperatureCache struct {
	input hct.HCT

	hctsByHue  []hct.HCT
	tempsByHue []float64
	coldest    float64
	warmest    float64
}

func newTemperatureCache(input hct.HCT) *temperatureCache {
	t := &temperatureCache{
		input:      input,
		hctsByHue:  make([]hct.HCT, 0, 361),
		tempsByHue: make([]float64, 0, 361),
	}

	t.coldest = rawTemperature(input)
	t.warmest = t.coldest
	for hue := 0; hue <= 360; hue++ {
		h := hct.New(float32(hue), input.Chroma, input.Tone)
		temp := rawTemperature(h)
		t.hctsByHue = append(t.hctsByHue, h)
		t.tempsByHue = append(t.tempsByHue, temp)
		t.coldest = math.Min(t.coldest, temp)
		t.warmest = math.Max(t.warmest, temp)
	}
	return t
}

// relativeTemperature maps a raw temperature onto [0, 1] between the
// coldest and warmest hues.
func (t *temperatureCache) relativeTemperature(temp float64) float64 {
	rng := t.warmest - t.coldest
	if rng == 0 {
		return 0.5
	}
	return (temp - t.coldest) / rng
}

func (t *temperatureCache) relativeTemperatureAt(hue int) float64 {
	return t.relativeTemperature(t.tempsByHue[sanitizeDegreesInt(hue)])
}

// analogous returns count colours around the input, spaced evenly in
// temperature across divisions steps of the colour wheel. The input is in
// the middle of the result.
func (t *temperatureCache) analogous(count, divisions int) []hct.HCT {
	startHue := int(math.Round(float64(t.input.Hue)))
	startHct := t.hctsByHue[sanitizeDegreesInt(startHue)]
	lastTemp := t.relativeTemperatureAt(startHue)

	allColors := []hct.HCT{startHct}

	absoluteTotalTempDelta := 0.0
	for i := 0; i < 360; i++ {
		temp := t.relativeTemperatureAt(startHue + i)
		absoluteTotalTempDelta += math.Abs(temp - lastTemp)
		lastTemp = temp
	}

	hueAddend := 1
	tempStep := absoluteTotalTempDelta / float64(divisions)
	totalTempDelta := 0.0
	lastTemp = t.relativeTemperatureAt(startHue)
	for len(allColors) < divisions {
		h := t.hctsByHue[sanitizeDegreesInt(startHue+hueAddend)]
		temp := t.relativeTemperatureAt(startHue + hueAddend)
		totalTempDelta += math.Abs(temp - lastTemp)

		desired := float64(len(allColors)) * tempStep
		satisfied := totalTempDelta >= desired
		indexAddend := 1
		for satisfied && len(allColors) < divisions {
			allColors = append(allColors, h)
			desired = float64(len(allColors)+indexAddend) * tempStep
			satisfied = totalTempDelta >= desired
			indexAddend++
		}
		lastTemp = temp
		hueAddend++

		if hueAddend > 360 {
			for len(allColors) < divisions {
				allColors = append(allColors, h)
			}
			break
		}
	}

	answers := []hct.HCT{t.input}

	ccwCount := (count - 1) / 2
	for i := 1; i <= ccwCount; i++ {
		idx := wrapIndex(-i, len(allColors))
		answers = append([]hct.HCT{allColors[idx]}, answers...)
	}

	cwCount := count - ccwCount - 1
	for i := 1; i <= cwCount; i++ {
		answers = append(answers, allColors[wrapIndex(i, len(allColors))])
	}

	return answers
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// rawTemperature is the warmth of a colour from its CIELAB hue and chroma.
// Values range roughly from -0.5 (cold) to 3 (hot).
func rawTemperature(h hct.HCT) float64 {
	c, _ := colorful.MakeColor(h.AsRGBA())
	_, a, b := c.Lab()
	// go-colorful scales a and b to roughly [-1, 1].
	a, b = a*100, b*100

	hue := sanitizeDegrees(math.Atan2(b, a) * 180 / math.Pi)
	chroma := math.Hypot(a, b)
	return -0.5 + 0.02*math.Pow(chroma, 1.07)*math.Cos(sanitizeDegrees(hue-50)*math.Pi/180)
}
