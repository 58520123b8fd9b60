package material

import (
	"math"

	"github.com/jmylchreest/m3theme/internal/colour"
)

// Role names a colour token of a scheme.
type Role string

// Scheme roles.
const (
	RoleBackground              Role = "background"
	RoleOnBackground            Role = "onBackground"
	RoleSurface                 Role = "surface"
	RoleSurfaceDim              Role = "surfaceDim"
	RoleSurfaceBright           Role = "surfaceBright"
	RoleSurfaceContainerLowest  Role = "surfaceContainerLowest"
	RoleSurfaceContainerLow     Role = "surfaceContainerLow"
	RoleSurfaceContainer        Role = "surfaceContainer"
	RoleSurfaceContainerHigh    Role = "surfaceContainerHigh"
	RoleSurfaceContainerHighest Role = "surfaceContainerHighest"
	RoleOnSurface               Role = "onSurface"
	RoleSurfaceVariant          Role = "surfaceVariant"
	RoleOnSurfaceVariant        Role = "onSurfaceVariant"
	RoleInverseSurface          Role = "inverseSurface"
	RoleInverseOnSurface        Role = "inverseOnSurface"
	RoleOutline                 Role = "outline"
	RoleOutlineVariant          Role = "outlineVariant"
	RoleShadow                  Role = "shadow"
	RoleScrim                   Role = "scrim"
	RoleSurfaceTint             Role = "surfaceTint"
	RolePrimary                 Role = "primary"
	RoleOnPrimary               Role = "onPrimary"
	RolePrimaryContainer        Role = "primaryContainer"
	RoleOnPrimaryContainer      Role = "onPrimaryContainer"
	RoleInversePrimary          Role = "inversePrimary"
	RoleSecondary               Role = "secondary"
	RoleOnSecondary             Role = "onSecondary"
	RoleSecondaryContainer      Role = "secondaryContainer"
	RoleOnSecondaryContainer    Role = "onSecondaryContainer"
	RoleTertiary                Role = "tertiary"
	RoleOnTertiary              Role = "onTertiary"
	RoleTertiaryContainer       Role = "tertiaryContainer"
	RoleOnTertiaryContainer     Role = "onTertiaryContainer"
	RoleError                   Role = "error"
	RoleOnError                 Role = "onError"
	RoleErrorContainer          Role = "errorContainer"
	RoleOnErrorContainer        Role = "onErrorContainer"
	RolePrimaryFixed            Role = "primaryFixed"
	RolePrimaryFixedDim         Role = "primaryFixedDim"
	RoleOnPrimaryFixed          Role = "onPrimaryFixed"
	RoleOnPrimaryFixedVariant   Role = "onPrimaryFixedVariant"
	RoleSecondaryFixed          Role = "secondaryFixed"
	RoleSecondaryFixedDim       Role = "secondaryFixedDim"
	RoleOnSecondaryFixed        Role = "onSecondaryFixed"
	RoleOnSecondaryFixedVariant Role = "onSecondaryFixedVariant"
	RoleTertiaryFixed           Role = "tertiaryFixed"
	RoleTertiaryFixedDim        Role = "tertiaryFixedDim"
	RoleOnTertiaryFixed         Role = "onTertiaryFixed"
	RoleOnTertiaryFixedVariant  Role = "onTertiaryFixedVariant"
	RoleSourceColorArgb         Role = "sourceColorArgb"
)

// TonePolarity says which member of a ToneDeltaPair sits nearer the background.
type TonePolarity int

const (
	PolarityNearer TonePolarity = iota
	PolarityFarther
	PolarityLighter
	PolarityDarker
)

// ToneDeltaPair keeps two roles at least Delta tones apart.
type ToneDeltaPair struct {
	RoleA, RoleB *DynamicColor
	Delta        float64
	Polarity     TonePolarity
	StayTogether bool
}

// DynamicColor is a colour role whose tone depends on the scheme: its
// palette, preferred tone and the contrast it must keep against its background.
type DynamicColor struct {
	Name             Role
	Palette          func(*DynamicScheme) *TonalPalette
	Tone             func(*DynamicScheme) float64
	IsBackground     bool
	Background       func(*DynamicScheme) *DynamicColor
	SecondBackground func(*DynamicScheme) *DynamicColor
	ContrastCurve    *ContrastCurve
	ToneDeltaPair    func(*DynamicScheme) *ToneDeltaPair
}

// ARGB resolves the role against a scheme.
func (dc *DynamicColor) ARGB(s *DynamicScheme) colour.ARGB {
	return dc.Palette(s).Tone(dc.GetTone(s))
}

// GetTone returns the tone of the role in s after contrast adjustments.
func (dc *DynamicColor) GetTone(s *DynamicScheme) float64 {
	decreasingContrast := s.ContrastLevel < 0

	if dc.ToneDeltaPair != nil {
		return dc.pairTone(s, dc.ToneDeltaPair(s), decreasingContrast)
	}

	answer := dc.Tone(s)
	if dc.Background == nil {
		return answer
	}

	bgTone := dc.Background(s).GetTone(s)
	desired := dc.ContrastCurve.Get(s.ContrastLevel)

	if ratioOfTones(bgTone, answer) < desired || decreasingContrast {
		answer = foregroundTone(bgTone, desired)
	}

	if dc.IsBackground && 50 <= answer && answer < 60 {
		if ratioOfTones(49, bgTone) >= desired {
			answer = 49
		} else {
			answer = 60
		}
	}

	if dc.SecondBackground == nil {
		return answer
	}

	bg1 := dc.Background(s).GetTone(s)
	bg2 := dc.SecondBackground(s).GetTone(s)
	upper, lower := math.Max(bg1, bg2), math.Min(bg1, bg2)

	if ratioOfTones(upper, answer) >= desired && ratioOfTones(lower, answer) >= desired {
		return answer
	}

	lightOption := lighter(upper, desired)
	darkOption := darker(lower, desired)

	var available []float64
	if lightOption != -1 {
		available = append(available, lightOption)
	}
	if darkOption != -1 {
		available = append(available, darkOption)
	}

	if tonePrefersLightForeground(bg1) || tonePrefersLightForeground(bg2) {
		if lightOption < 0 {
			return 100
		}
		return lightOption
	}
	if len(available) == 1 {
		return available[0]
	}
	if darkOption < 0 {
		return 0
	}
	return darkOption
}

func (dc *DynamicColor) pairTone(s *DynamicScheme, pair *ToneDeltaPair, decreasingContrast bool) float64 {
	bgTone := dc.Background(s).GetTone(s)

	aIsNearer := pair.Polarity == PolarityNearer ||
		(pair.Polarity == PolarityLighter && !s.IsDark) ||
		(pair.Polarity == PolarityDarker && s.IsDark)
	nearer, farther := pair.RoleA, pair.RoleB
	if !aIsNearer {
		nearer, farther = farther, nearer
	}
	amNearer := dc.Name == nearer.Name
	delta := pair.Delta
	expansionDir := -1.0
	if s.IsDark {
		expansionDir = 1
	}

	nContrast := nearer.ContrastCurve.Get(s.ContrastLevel)
	fContrast := farther.ContrastCurve.Get(s.ContrastLevel)

	nTone := nearer.Tone(s)
	if ratioOfTones(bgTone, nTone) < nContrast || decreasingContrast {
		nTone = foregroundTone(bgTone, nContrast)
	}
	fTone := farther.Tone(s)
	if ratioOfTones(bgTone, fTone) < fContrast || decreasingContrast {
		fTone = foregroundTone(bgTone, fContrast)
	}

	if (fTone-nTone)*expansionDir < delta {
		fTone = clamp(nTone+delta*expansionDir, 0, 100)
		if (fTone-nTone)*expansionDir < delta {
			nTone = clamp(fTone-delta*expansionDir, 0, 100)
		}
	}

	// Keep both tones out of the 50-59 band, where neither black nor white
	// text reaches contrast.
	switch {
	case 50 <= nTone && nTone < 60:
		nTone, fTone = leaveMidBand(nTone, fTone, delta, expansionDir)
	case 50 <= fTone && fTone < 60:
		if pair.StayTogether {
			nTone, fTone = leaveMidBand(nTone, fTone, delta, expansionDir)
		} else if expansionDir > 0 {
			fTone = 60
		} else {
			fTone = 49
		}
	}

	if amNearer {
		return nTone
	}
	return fTone
}

func leaveMidBand(nTone, fTone, delta, expansionDir float64) (float64, float64) {
	if expansionDir > 0 {
		nTone = 60
		return nTone, math.Max(fTone, nTone+delta*expansionDir)
	}
	nTone = 49
	return nTone, math.Min(fTone, nTone+delta*expansionDir)
}

// foregroundTone picks the tone, lighter or darker than bgTone, that best
// reaches ratio against it.
func foregroundTone(bgTone, ratio float64) float64 {
	lighterTone := lighterUnsafe(bgTone, ratio)
	darkerTone := darkerUnsafe(bgTone, ratio)
	lighterRatio := ratioOfTones(lighterTone, bgTone)
	darkerRatio := ratioOfTones(darkerTone, bgTone)

	if tonePrefersLightForeground(bgTone) {
		negligible := math.Abs(lighterRatio-darkerRatio) < 0.1 && lighterRatio < ratio && darkerRatio < ratio
		if lighterRatio >= ratio || lighterRatio >= darkerRatio || negligible {
			return lighterTone
		}
		return darkerTone
	}
	if darkerRatio >= ratio || darkerRatio >= lighterRatio {
		return darkerTone
	}
	return lighterTone
}

// tonePrefersLightForeground reports whether text on tone should be light.
// Tones that round below 60 get light text.
func tonePrefersLightForeground(tone float64) bool {
	return math.Round(tone) < 60
}

// findDesiredChromaByTone walks from tone toward darker (or lighter) tones
// until the palette can reach the requested chroma.
func findDesiredChromaByTone(hue, chroma, tone float64, byDecreasingTone bool) float64 {
	p := FromHueAndChroma(hue, chroma)
	answer := tone

	closest := float64(p.HCT(tone).Chroma)
	if closest >= chroma {
		return answer
	}

	step := 1.0
	if byDecreasingTone {
		step = -1
	}
	peak := closest
	for closest < chroma {
		answer += step
		if answer < 0 || answer > 100 {
			return clamp(answer, 0, 100)
		}
		potential := float64(p.HCT(answer).Chroma)
		if peak > potential {
			break
		}
		if math.Abs(potential-chroma) < 0.4 {
			break
		}
		if math.Abs(potential-chroma) < math.Abs(closest-chroma) {
			closest = potential
		}
		peak = math.Max(peak, potential)
	}
	return answer
}
