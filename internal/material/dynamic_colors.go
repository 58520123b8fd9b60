package material

var (
	curveText        = &ContrastCurve{Low: 4.5, Normal: 7, Medium: 11, High: 21}
	curveAccent      = &ContrastCurve{Low: 3, Normal: 4.5, Medium: 7, High: 7}
	curveContainer   = &ContrastCurve{Low: 1, Normal: 1, Medium: 3, High: 4.5}
	curveSubtleText  = &ContrastCurve{Low: 3, Normal: 4.5, Medium: 7, High: 11}
	curveOnBg        = &ContrastCurve{Low: 3, Normal: 3, Medium: 4.5, High: 7}
	curveOutline     = &ContrastCurve{Low: 1.5, Normal: 3, Medium: 4.5, High: 7}
	curveOutlineSoft = &ContrastCurve{Low: 1, Normal: 1, Medium: 3, High: 4.5}
)

// dynamicColors holds every role definition, keyed by name. Roles refer to
// each other through this table, so it is filled in init.
var dynamicColors map[Role]*DynamicColor

func role(r Role) func(*DynamicScheme) *DynamicColor {
	return func(*DynamicScheme) *DynamicColor { return dynamicColors[r] }
}

func highestSurface(s *DynamicScheme) *DynamicColor {
	if s.IsDark {
		return dynamicColors[RoleSurfaceBright]
	}
	return dynamicColors[RoleSurfaceDim]
}

func darkLight(dark, light float64) func(*DynamicScheme) float64 {
	return func(s *DynamicScheme) float64 {
		if s.IsDark {
			return dark
		}
		return light
	}
}

func constTone(t float64) func(*DynamicScheme) float64 {
	return func(*DynamicScheme) float64 { return t }
}

// monoOr uses mono tones for the monochrome variant and other tones otherwise.
func monoOr(monoDark, monoLight, dark, light float64) func(*DynamicScheme) float64 {
	return func(s *DynamicScheme) float64 {
		if s.isMonochrome() {
			return darkLight(monoDark, monoLight)(s)
		}
		return darkLight(dark, light)(s)
	}
}

func primaryPalette(s *DynamicScheme) *TonalPalette        { return s.PrimaryPalette }
func secondaryPalette(s *DynamicScheme) *TonalPalette      { return s.SecondaryPalette }
func tertiaryPalette(s *DynamicScheme) *TonalPalette       { return s.TertiaryPalette }
func neutralPalette(s *DynamicScheme) *TonalPalette        { return s.NeutralPalette }
func neutralVariantPalette(s *DynamicScheme) *TonalPalette { return s.NeutralVariantPalette }
func errorPalette(s *DynamicScheme) *TonalPalette          { return s.ErrorPalette }

func nearerPair(a, b Role) func(*DynamicScheme) *ToneDeltaPair {
	return func(*DynamicScheme) *ToneDeltaPair {
		return &ToneDeltaPair{RoleA: dynamicColors[a], RoleB: dynamicColors[b], Delta: 10, Polarity: PolarityNearer}
	}
}

func fixedPair(a, b Role) func(*DynamicScheme) *ToneDeltaPair {
	return func(*DynamicScheme) *ToneDeltaPair {
		return &ToneDeltaPair{RoleA: dynamicColors[a], RoleB: dynamicColors[b], Delta: 10, Polarity: PolarityLighter, StayTogether: true}
	}
}

func init() {
	defs := []*DynamicColor{
		{Name: RoleBackground, Palette: neutralPalette, Tone: darkLight(6, 98), IsBackground: true},
		{Name: RoleOnBackground, Palette: neutralPalette, Tone: darkLight(90, 10), Background: role(RoleBackground), ContrastCurve: curveOnBg},
		{Name: RoleSurface, Palette: neutralPalette, Tone: darkLight(6, 98), IsBackground: true},
		{Name: RoleSurfaceDim, Palette: neutralPalette, Tone: darkLight(6, 87), IsBackground: true},
		{Name: RoleSurfaceBright, Palette: neutralPalette, Tone: darkLight(24, 98), IsBackground: true},
		{Name: RoleSurfaceContainerLowest, Palette: neutralPalette, Tone: darkLight(4, 100), IsBackground: true},
		{Name: RoleSurfaceContainerLow, Palette: neutralPalette, Tone: darkLight(10, 96), IsBackground: true},
		{Name: RoleSurfaceContainer, Palette: neutralPalette, Tone: darkLight(12, 94), IsBackground: true},
		{Name: RoleSurfaceContainerHigh, Palette: neutralPalette, Tone: darkLight(17, 92), IsBackground: true},
		{Name: RoleSurfaceContainerHighest, Palette: neutralPalette, Tone: darkLight(22, 90), IsBackground: true},
		{Name: RoleOnSurface, Palette: neutralPalette, Tone: darkLight(90, 10), Background: highestSurface, ContrastCurve: curveText},
		{Name: RoleSurfaceVariant, Palette: neutralVariantPalette, Tone: darkLight(30, 90), IsBackground: true},
		{Name: RoleOnSurfaceVariant, Palette: neutralVariantPalette, Tone: darkLight(80, 30), Background: highestSurface, ContrastCurve: curveSubtleText},
		{Name: RoleInverseSurface, Palette: neutralPalette, Tone: darkLight(90, 20)},
		{Name: RoleInverseOnSurface, Palette: neutralPalette, Tone: darkLight(20, 95), Background: role(RoleInverseSurface), ContrastCurve: curveText},
		{Name: RoleOutline, Palette: neutralVariantPalette, Tone: darkLight(60, 50), Background: highestSurface, ContrastCurve: curveOutline},
		{Name: RoleOutlineVariant, Palette: neutralVariantPalette, Tone: darkLight(30, 80), Background: highestSurface, ContrastCurve: curveOutlineSoft},
		{Name: RoleShadow, Palette: neutralPalette, Tone: constTone(0)},
		{Name: RoleScrim, Palette: neutralPalette, Tone: constTone(0)},
		{Name: RoleSurfaceTint, Palette: primaryPalette, Tone: darkLight(80, 40), IsBackground: true},

		{
			Name: RolePrimary, Palette: primaryPalette, Tone: monoOr(100, 0, 80, 40), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveAccent,
			ToneDeltaPair: nearerPair(RolePrimaryContainer, RolePrimary),
		},
		{Name: RoleOnPrimary, Palette: primaryPalette, Tone: monoOr(10, 90, 20, 100), Background: role(RolePrimary), ContrastCurve: curveText},
		{
			Name: RolePrimaryContainer, Palette: primaryPalette, IsBackground: true,
			Tone: func(s *DynamicScheme) float64 {
				if s.isFidelity() {
					return float64(s.SourceColorHCT.Tone)
				}
				return monoOr(85, 25, 30, 90)(s)
			},
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: nearerPair(RolePrimaryContainer, RolePrimary),
		},
		{
			Name: RoleOnPrimaryContainer, Palette: primaryPalette,
			Tone: func(s *DynamicScheme) float64 {
				if s.isFidelity() {
					return foregroundTone(dynamicColors[RolePrimaryContainer].Tone(s), 4.5)
				}
				return monoOr(0, 100, 90, 10)(s)
			},
			Background: role(RolePrimaryContainer), ContrastCurve: curveText,
		},
		{Name: RoleInversePrimary, Palette: primaryPalette, Tone: darkLight(40, 80), Background: role(RoleInverseSurface), ContrastCurve: curveAccent},

		{
			Name: RoleSecondary, Palette: secondaryPalette, Tone: darkLight(80, 40), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveAccent,
			ToneDeltaPair: nearerPair(RoleSecondaryContainer, RoleSecondary),
		},
		{Name: RoleOnSecondary, Palette: secondaryPalette, Tone: monoOr(10, 100, 20, 100), Background: role(RoleSecondary), ContrastCurve: curveText},
		{
			Name: RoleSecondaryContainer, Palette: secondaryPalette, IsBackground: true,
			Tone: func(s *DynamicScheme) float64 {
				initial := darkLight(30, 90)(s)
				switch {
				case s.isMonochrome():
					return darkLight(30, 85)(s)
				case !s.isFidelity():
					return initial
				}
				return findDesiredChromaByTone(s.SecondaryPalette.Hue, s.SecondaryPalette.Chroma, initial, !s.IsDark)
			},
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: nearerPair(RoleSecondaryContainer, RoleSecondary),
		},
		{
			Name: RoleOnSecondaryContainer, Palette: secondaryPalette,
			Tone: func(s *DynamicScheme) float64 {
				if s.isFidelity() {
					return foregroundTone(dynamicColors[RoleSecondaryContainer].Tone(s), 4.5)
				}
				return darkLight(90, 10)(s)
			},
			Background: role(RoleSecondaryContainer), ContrastCurve: curveText,
		},

		{
			Name: RoleTertiary, Palette: tertiaryPalette, Tone: monoOr(90, 25, 80, 40), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveAccent,
			ToneDeltaPair: nearerPair(RoleTertiaryContainer, RoleTertiary),
		},
		{Name: RoleOnTertiary, Palette: tertiaryPalette, Tone: monoOr(10, 90, 20, 100), Background: role(RoleTertiary), ContrastCurve: curveText},
		{
			Name: RoleTertiaryContainer, Palette: tertiaryPalette, IsBackground: true,
			Tone: func(s *DynamicScheme) float64 {
				switch {
				case s.isMonochrome():
					return darkLight(60, 49)(s)
				case !s.isFidelity():
					return darkLight(30, 90)(s)
				}
				proposed := s.TertiaryPalette.HCT(float64(s.SourceColorHCT.Tone))
				return float64(fixIfDisliked(proposed).Tone)
			},
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: nearerPair(RoleTertiaryContainer, RoleTertiary),
		},
		{
			Name: RoleOnTertiaryContainer, Palette: tertiaryPalette,
			Tone: func(s *DynamicScheme) float64 {
				switch {
				case s.isMonochrome():
					return darkLight(0, 100)(s)
				case !s.isFidelity():
					return darkLight(90, 10)(s)
				}
				return foregroundTone(dynamicColors[RoleTertiaryContainer].Tone(s), 4.5)
			},
			Background: role(RoleTertiaryContainer), ContrastCurve: curveText,
		},

		{
			Name: RoleError, Palette: errorPalette, Tone: darkLight(80, 40), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveAccent,
			ToneDeltaPair: nearerPair(RoleErrorContainer, RoleError),
		},
		{Name: RoleOnError, Palette: errorPalette, Tone: darkLight(20, 100), Background: role(RoleError), ContrastCurve: curveText},
		{
			Name: RoleErrorContainer, Palette: errorPalette, Tone: darkLight(30, 90), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: nearerPair(RoleErrorContainer, RoleError),
		},
		{Name: RoleOnErrorContainer, Palette: errorPalette, Tone: darkLight(90, 10), Background: role(RoleErrorContainer), ContrastCurve: curveText},
	}

	defs = append(defs, fixedRoles(primaryPalette, RolePrimaryFixed, RolePrimaryFixedDim, RoleOnPrimaryFixed, RoleOnPrimaryFixedVariant,
		[4]float64{40, 30, 100, 90}, [4]float64{90, 80, 10, 30})...)
	defs = append(defs, fixedRoles(secondaryPalette, RoleSecondaryFixed, RoleSecondaryFixedDim, RoleOnSecondaryFixed, RoleOnSecondaryFixedVariant,
		[4]float64{80, 70, 10, 25}, [4]float64{90, 80, 10, 30})...)
	defs = append(defs, fixedRoles(tertiaryPalette, RoleTertiaryFixed, RoleTertiaryFixedDim, RoleOnTertiaryFixed, RoleOnTertiaryFixedVariant,
		[4]float64{40, 30, 100, 90}, [4]float64{90, 80, 10, 30})...)

	dynamicColors = make(map[Role]*DynamicColor, len(defs))
	for _, dc := range defs {
		dynamicColors[dc.Name] = dc
	}
}

// fixedRoles defines the four roles of a fixed accent family. Tones are
// fixed, dim, on-fixed and on-fixed-variant, for monochrome and other variants.
func fixedRoles(palette func(*DynamicScheme) *TonalPalette, fixed, dim, on, onVariant Role, mono, normal [4]float64) []*DynamicColor {
	tone := func(i int) func(*DynamicScheme) float64 {
		return func(s *DynamicScheme) float64 {
			if s.isMonochrome() {
				return mono[i]
			}
			return normal[i]
		}
	}
	return []*DynamicColor{
		{
			Name: fixed, Palette: palette, Tone: tone(0), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: fixedPair(fixed, dim),
		},
		{
			Name: dim, Palette: palette, Tone: tone(1), IsBackground: true,
			Background: highestSurface, ContrastCurve: curveContainer,
			ToneDeltaPair: fixedPair(fixed, dim),
		},
		{
			Name: on, Palette: palette, Tone: tone(2),
			Background: role(dim), SecondBackground: role(fixed), ContrastCurve: curveText,
		},
		{
			Name: onVariant, Palette: palette, Tone: tone(3),
			Background: role(dim), SecondBackground: role(fixed), ContrastCurve: curveSubtleText,
		},
	}
}
