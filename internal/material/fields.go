package material

import "github.com/jmylchreest/m3theme/internal/colour"

// SchemeFields lists every token a flattened scheme carries, in output order.
var SchemeFields = []Role{
	RoleBackground,
	RoleOnBackground,
	RoleSurface,
	RoleSurfaceDim,
	RoleSurfaceBright,
	RoleSurfaceContainerLowest,
	RoleSurfaceContainerLow,
	RoleSurfaceContainer,
	RoleSurfaceContainerHigh,
	RoleSurfaceContainerHighest,
	RoleOnSurface,
	RoleSurfaceVariant,
	RoleOnSurfaceVariant,
	RoleInverseSurface,
	RoleInverseOnSurface,
	RoleOutline,
	RoleOutlineVariant,
	RoleShadow,
	RoleScrim,
	RoleSurfaceTint,
	RolePrimary,
	RoleOnPrimary,
	RolePrimaryContainer,
	RoleOnPrimaryContainer,
	RoleInversePrimary,
	RoleSecondary,
	RoleOnSecondary,
	RoleSecondaryContainer,
	RoleOnSecondaryContainer,
	RoleTertiary,
	RoleOnTertiary,
	RoleTertiaryContainer,
	RoleOnTertiaryContainer,
	RoleError,
	RoleOnError,
	RoleErrorContainer,
	RoleOnErrorContainer,
	RolePrimaryFixed,
	RolePrimaryFixedDim,
	RoleOnPrimaryFixed,
	RoleOnPrimaryFixedVariant,
	RoleSecondaryFixed,
	RoleSecondaryFixedDim,
	RoleOnSecondaryFixed,
	RoleOnSecondaryFixedVariant,
	RoleTertiaryFixed,
	RoleTertiaryFixedDim,
	RoleOnTertiaryFixed,
	RoleOnTertiaryFixedVariant,
	RoleSourceColorArgb,
}

// Palette family names.
const (
	PalettePrimary        = "primaryPalette"
	PaletteSecondary      = "secondaryPalette"
	PaletteTertiary       = "tertiaryPalette"
	PaletteNeutral        = "neutralPalette"
	PaletteNeutralVariant = "neutralVariantPalette"
)

// PaletteFields lists the palette families a flattened scheme carries.
var PaletteFields = []string{
	PalettePrimary,
	PaletteSecondary,
	PaletteTertiary,
	PaletteNeutral,
	PaletteNeutralVariant,
}

// Roles returns a copy of SchemeFields.
func (s *DynamicScheme) Roles() []Role {
	return append([]Role(nil), SchemeFields...)
}

// Get resolves a role. RoleSourceColorArgb yields the source colour and
// unknown roles yield 0.
func (s *DynamicScheme) Get(r Role) colour.ARGB {
	if r == RoleSourceColorArgb {
		return s.SourceColorARGB
	}
	dc := dynamicColors[r]
	if dc == nil {
		return 0
	}
	return dc.ARGB(s)
}

// Palette returns a palette family by name, or nil.
func (s *DynamicScheme) Palette(name string) *TonalPalette {
	switch name {
	case PalettePrimary:
		return s.PrimaryPalette
	case PaletteSecondary:
		return s.SecondaryPalette
	case PaletteTertiary:
		return s.TertiaryPalette
	case PaletteNeutral:
		return s.NeutralPalette
	case PaletteNeutralVariant:
		return s.NeutralVariantPalette
	}
	return nil
}
