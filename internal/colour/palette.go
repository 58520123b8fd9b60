package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Palette represents a collection of colours extracted from an image.
// Weights, when present, are the relative population of each colour and sum to 1.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a new Palette with colours and their weights.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Population returns the palette as an ARGB to weight map, merging duplicate
// colours. Palettes without weights count each colour equally.
func (p *Palette) Population() map[ARGB]float64 {
	pop := make(map[ARGB]float64, len(p.Colors))
	for i, c := range p.Colors {
		w := 1.0
		if i < len(p.Weights) {
			w = p.Weights[i]
		}
		pop[FromColor(c)] += w
	}
	return pop
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = FromColor(c).Hex()
	}
	return hexColors
}

// SortByWeight orders colours by descending weight.
func (p *Palette) SortByWeight() {
	if len(p.Weights) != len(p.Colors) {
		return
	}
	idx := make([]int, len(p.Colors))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return p.Weights[idx[a]] > p.Weights[idx[b]]
	})
	colors := make([]color.Color, len(idx))
	weights := make([]float64, len(idx))
	for i, j := range idx {
		colors[i] = p.Colors[j]
		weights[i] = p.Weights[j]
	}
	p.Colors, p.Weights = colors, weights
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	ARGB   uint32  `json:"argb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		argb := FromColor(c)
		colors[i] = ColorJSON{Hex: argb.Hex(), ARGB: uint32(argb)}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}

	return json.MarshalIndent(PaletteJSON{Count: len(p.Colors), Colors: colors}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s\n", i+1, FromColor(c).Hex())
	}
	return sb.String()
}
