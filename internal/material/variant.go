// Package material builds Material Design 3 dynamic colour schemes on top of
// the HCT colour space.
package material

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned when a variant name is not recognised.
var ErrUnknownVariant = errors.New("unknown scheme variant")

// Variant selects the palette construction rules of a scheme.
type Variant string

// Supported variants.
const (
	VariantMonochrome    Variant = "monochrome"
	VariantNeutral       Variant = "neutral"
	VariantTonalSpot     Variant = "tonal_spot"
	VariantVibrant       Variant = "vibrant"
	VariantExpressive    Variant = "expressive"
	VariantFidelity      Variant = "fidelity"
	VariantContent       Variant = "content"
	VariantRainbow       Variant = "rainbow"
	VariantFruitSalad    Variant = "fruit_salad"
	VariantImageFidelity Variant = "image_fidelity"
)

// DefaultVariant is used when no variant is given.
const DefaultVariant = VariantTonalSpot

var variantDescriptions = map[Variant]string{
	VariantMonochrome:    "Grayscale palettes, the source hue is ignored",
	VariantNeutral:       "Near-grayscale with a hint of the source hue",
	VariantTonalSpot:     "Calm, low-chroma palettes around the source hue",
	VariantVibrant:       "Maximum-chroma primary, hue-shifted accents",
	VariantExpressive:    "Primary rotated away from the source, playful accents",
	VariantFidelity:      "Primary matches the source colour exactly",
	VariantContent:       "Like fidelity, tuned for colours taken from content",
	VariantRainbow:       "Playful accents over grayscale neutrals",
	VariantFruitSalad:    "Playful, hue-rotated primary and secondary",
	VariantImageFidelity: "Fidelity with primary, secondary and tertiary taken from image colours",
}

// Variants returns every supported variant in display order.
func Variants() []Variant {
	return []Variant{
		VariantMonochrome,
		VariantNeutral,
		VariantTonalSpot,
		VariantVibrant,
		VariantExpressive,
		VariantFidelity,
		VariantContent,
		VariantRainbow,
		VariantFruitSalad,
		VariantImageFidelity,
	}
}

// ParseVariant parses a variant name. Hyphens are accepted in place of
// underscores and matching is case-insensitive. An empty string yields the default.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultVariant, nil
	}
	v := Variant(strings.ReplaceAll(s, "-", "_"))
	if _, ok := variantDescriptions[v]; !ok {
		return "", fmt.Errorf("%w: %q (valid variants: %s)", ErrUnknownVariant, s, variantList())
	}
	return v, nil
}

// Description returns a one-line summary of the variant.
func (v Variant) Description() string {
	return variantDescriptions[v]
}

// String implements pflag.Value.
func (v *Variant) String() string {
	if v == nil || *v == "" {
		return string(DefaultVariant)
	}
	return string(*v)
}

// Set implements pflag.Value.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Variant) Type() string {
	return "variant"
}

func variantList() string {
	names := make([]string, 0, len(variantDescriptions))
	for _, v := range Variants() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
