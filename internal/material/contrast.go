package material

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cogentcore.org/core/colors/cam/hct"
)

// ErrUnknownContrast is returned when a contrast level name is not recognised.
var ErrUnknownContrast = errors.New("unknown contrast level")

// ContrastLevel is a named contrast preference.
type ContrastLevel string

// Supported contrast levels.
const (
	ContrastDefault ContrastLevel = "default"
	ContrastMedium  ContrastLevel = "medium"
	ContrastHigh    ContrastLevel = "high"
	ContrastReduced ContrastLevel = "reduced"
)

var contrastValues = map[ContrastLevel]float64{
	ContrastDefault: 0.0,
	ContrastMedium:  0.5,
	ContrastHigh:    1.0,
	ContrastReduced: -1.0,
}

// ContrastLevels returns every named level in display order.
func ContrastLevels() []ContrastLevel {
	return []ContrastLevel{ContrastDefault, ContrastMedium, ContrastHigh, ContrastReduced}
}

// ParseContrastLevel parses a contrast level name. An empty string yields the default.
func ParseContrastLevel(s string) (ContrastLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ContrastDefault, nil
	}
	c := ContrastLevel(s)
	if _, ok := contrastValues[c]; !ok {
		return "", fmt.Errorf("%w: %q (valid levels: default, medium, high, reduced)", ErrUnknownContrast, s)
	}
	return c, nil
}

// Value returns the numeric contrast level in [-1, 1].
func (c ContrastLevel) Value() float64 {
	return contrastValues[c]
}

// String implements pflag.Value.
func (c *ContrastLevel) String() string {
	if c == nil || *c == "" {
		return string(ContrastDefault)
	}
	return string(*c)
}

// Set implements pflag.Value.
func (c *ContrastLevel) Set(s string) error {
	parsed, err := ParseContrastLevel(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *ContrastLevel) Type() string {
	return "contrast"
}

// ContrastCurve holds the contrast ratio a role needs at each contrast level.
type ContrastCurve struct {
	Low    float64
	Normal float64
	Medium float64
	High   float64
}

// Get interpolates the curve at a contrast level in [-1, 1].
func (c ContrastCurve) Get(level float64) float64 {
	switch {
	case level <= -1:
		return c.Low
	case level < 0:
		return lerp(c.Low, c.Normal, level+1)
	case level < 0.5:
		return lerp(c.Normal, c.Medium, level/0.5)
	case level < 1:
		return lerp(c.Medium, c.High, (level-0.5)/0.5)
	default:
		return c.High
	}
}

// ratioOfTones returns the contrast ratio between two tones, clamped to [0, 100].
func ratioOfTones(a, b float64) float64 {
	return float64(hct.ToneContrastRatio(float32(clamp(a, 0, 100)), float32(clamp(b, 0, 100))))
}

// lighter returns a tone >= tone that reaches ratio against it, or -1.
// hct.ContrastToneLighter drops the 0.4 gamut margin and works in float32,
// which shifts role tones by one sRGB step; these helpers keep both.
func lighter(tone, ratio float64) float64 {
	if tone < 0 || tone > 100 {
		return -1
	}
	darkY := yFromLstar(tone)
	lightY := ratio*(darkY+5) - 5
	got := ratioOfYs(lightY, darkY)
	if got < ratio && math.Abs(got-ratio) > 0.04 {
		return -1
	}
	// +0.4 survives quantisation to 8-bit sRGB.
	v := lstarFromY(lightY) + 0.4
	if v < 0 || v > 100 {
		return -1
	}
	return v
}

// darker returns a tone <= tone that reaches ratio against it, or -1.
func darker(tone, ratio float64) float64 {
	if tone < 0 || tone > 100 {
		return -1
	}
	lightY := yFromLstar(tone)
	darkY := (lightY+5)/ratio - 5
	got := ratioOfYs(lightY, darkY)
	if got < ratio && math.Abs(got-ratio) > 0.04 {
		return -1
	}
	v := lstarFromY(darkY) - 0.4
	if v < 0 || v > 100 {
		return -1
	}
	return v
}

func lighterUnsafe(tone, ratio float64) float64 {
	if v := lighter(tone, ratio); v >= 0 {
		return v
	}
	return 100
}

func darkerUnsafe(tone, ratio float64) float64 {
	if v := darker(tone, ratio); v >= 0 {
		return v
	}
	return 0
}

func ratioOfYs(y1, y2 float64) float64 {
	l, d := math.Max(y1, y2), math.Min(y1, y2)
	return (l + 5) / (d + 5)
}

const (
	labE     = 216.0 / 24389.0
	labKappa = 24389.0 / 27.0
)

func yFromLstar(lstar float64) float64 {
	ft := (lstar + 16) / 116
	ft3 := ft * ft * ft
	if ft3 > labE {
		return 100 * ft3
	}
	return 100 * (116*ft - 16) / labKappa
}

func lstarFromY(y float64) float64 {
	t := y / 100
	if t > labE {
		return 116*math.Cbrt(t) - 16
	}
	return labKappa * t
}
