package material

import (
	"fmt"
	"math"

	"cogentcore.org/core/colors/cam/hct"

	"github.com/jmylchreest/m3theme/internal/colour"
)

// DynamicScheme is a set of tonal palettes plus the settings that decide
// which tone each colour role takes from them.
type DynamicScheme struct {
	SourceColorARGB colour.ARGB
	SourceColorHCT  hct.HCT
	Variant         Variant
	IsDark          bool
	// ContrastLevel ranges from -1 (reduced) to 1 (high).
	ContrastLevel float64

	PrimaryPalette        *TonalPalette
	SecondaryPalette      *TonalPalette
	TertiaryPalette       *TonalPalette
	NeutralPalette        *TonalPalette
	NeutralVariantPalette *TonalPalette
	ErrorPalette          *TonalPalette
}

var (
	vibrantHues               = []float64{0, 41, 61, 101, 131, 181, 251, 301, 360}
	vibrantSecondaryRotations = []float64{18, 15, 10, 12, 15, 18, 15, 12, 12}
	vibrantTertiaryRotations  = []float64{35, 30, 20, 25, 30, 35, 30, 25, 25}

	expressiveHues               = []float64{0, 21, 51, 121, 151, 191, 271, 321, 360}
	expressiveSecondaryRotations = []float64{45, 95, 45, 20, 45, 90, 45, 45, 45}
	expressiveTertiaryRotations  = []float64{120, 120, 20, 45, 20, 15, 20, 120, 120}
)

// BuildDynamicScheme creates the scheme for a source colour. dominants is
// only consulted by VariantImageFidelity, whose primary, secondary and
// tertiary palettes come from the first three dominant colours; missing
// entries fall back to the fidelity palettes.
func BuildDynamicScheme(source colour.ARGB, variant Variant, isDark bool, contrast float64, dominants []colour.ARGB) (*DynamicScheme, error) {
	if variant == "" {
		variant = DefaultVariant
	}
	if _, ok := variantDescriptions[variant]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	source = source | 0xff000000
	src := hct.FromColor(source.RGBA())
	hue, chroma := float64(src.Hue), float64(src.Chroma)

	s := &DynamicScheme{
		SourceColorARGB: source,
		SourceColorHCT:  src,
		Variant:         variant,
		IsDark:          isDark,
		ContrastLevel:   clamp(contrast, -1, 1),
		ErrorPalette:    FromHueAndChroma(25, 84),
	}

	switch variant {
	case VariantMonochrome:
		s.setPalettes(
			FromHueAndChroma(hue, 0),
			FromHueAndChroma(hue, 0),
			FromHueAndChroma(hue, 0),
			FromHueAndChroma(hue, 0),
			FromHueAndChroma(hue, 0),
		)
	case VariantNeutral:
		s.setPalettes(
			FromHueAndChroma(hue, 12),
			FromHueAndChroma(hue, 8),
			FromHueAndChroma(hue, 16),
			FromHueAndChroma(hue, 2),
			FromHueAndChroma(hue, 2),
		)
	case VariantTonalSpot:
		s.setPalettes(
			FromHueAndChroma(hue, 36),
			FromHueAndChroma(hue, 16),
			FromHueAndChroma(hue+60, 24),
			FromHueAndChroma(hue, 6),
			FromHueAndChroma(hue, 8),
		)
	case VariantVibrant:
		s.setPalettes(
			FromHueAndChroma(hue, 200),
			FromHueAndChroma(rotatedHue(hue, vibrantHues, vibrantSecondaryRotations), 24),
			FromHueAndChroma(rotatedHue(hue, vibrantHues, vibrantTertiaryRotations), 32),
			FromHueAndChroma(hue, 10),
			FromHueAndChroma(hue, 12),
		)
	case VariantExpressive:
		s.setPalettes(
			FromHueAndChroma(hue+240, 40),
			FromHueAndChroma(rotatedHue(hue, expressiveHues, expressiveSecondaryRotations), 24),
			FromHueAndChroma(rotatedHue(hue, expressiveHues, expressiveTertiaryRotations), 32),
			FromHueAndChroma(hue+15, 8),
			FromHueAndChroma(hue+15, 12),
		)
	case VariantFidelity, VariantContent, VariantImageFidelity:
		s.setPalettes(
			FromHueAndChroma(hue, chroma),
			FromHueAndChroma(hue, math.Max(chroma-32, chroma*0.5)),
			FromARGB(argbFromHCT(fixIfDisliked(newTemperatureCache(src).analogous(3, 6)[2]))),
			FromHueAndChroma(hue, chroma/8),
			FromHueAndChroma(hue, chroma/8+4),
		)
		if variant == VariantImageFidelity {
			s.PrimaryPalette = dominantPalette(dominants, 0, s.PrimaryPalette)
			s.SecondaryPalette = dominantPalette(dominants, 1, s.SecondaryPalette)
			s.TertiaryPalette = dominantPalette(dominants, 2, s.TertiaryPalette)
		}
	case VariantRainbow:
		s.setPalettes(
			FromHueAndChroma(hue, 48),
			FromHueAndChroma(hue, 16),
			FromHueAndChroma(hue+60, 24),
			FromHueAndChroma(hue, 0),
			FromHueAndChroma(hue, 0),
		)
	case VariantFruitSalad:
		s.setPalettes(
			FromHueAndChroma(hue-50, 48),
			FromHueAndChroma(hue-50, 36),
			FromHueAndChroma(hue, 36),
			FromHueAndChroma(hue, 10),
			FromHueAndChroma(hue, 16),
		)
	}

	return s, nil
}

func (s *DynamicScheme) setPalettes(primary, secondary, tertiary, neutral, neutralVariant *TonalPalette) {
	s.PrimaryPalette = primary
	s.SecondaryPalette = secondary
	s.TertiaryPalette = tertiary
	s.NeutralPalette = neutral
	s.NeutralVariantPalette = neutralVariant
}

// dominantPalette builds a palette from dominants[i], or from the key colour
// of fallback when there is no such dominant.
func dominantPalette(dominants []colour.ARGB, i int, fallback *TonalPalette) *TonalPalette {
	if i < len(dominants) && dominants[i] != 0 {
		return FromARGB(dominants[i] | 0xff000000)
	}
	return FromARGB(fallback.KeyColor)
}

// rotatedHue rotates hue by the rotation of the band it falls in. hues are
// band boundaries in ascending order.
func rotatedHue(hue float64, hues, rotations []float64) float64 {
	if len(rotations) == 1 {
		return sanitizeDegrees(hue + rotations[0])
	}
	for i := 0; i < len(hues)-1; i++ {
		if hues[i] < hue && hue < hues[i+1] {
			return sanitizeDegrees(hue + rotations[i])
		}
	}
	return hue
}

func (s *DynamicScheme) isMonochrome() bool {
	return s.Variant == VariantMonochrome
}

func (s *DynamicScheme) isFidelity() bool {
	switch s.Variant {
	case VariantFidelity, VariantContent, VariantImageFidelity:
		return true
	}
	return false
}
