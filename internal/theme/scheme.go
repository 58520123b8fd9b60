package theme

import (
	"github.com/jmylchreest/m3theme/internal/material"
)

// StandardTones are the palette tones published with every scheme.
var StandardTones = []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 50, 60, 70, 80, 90, 95, 98, 99, 100}

// Scheme is a flattened dynamic scheme: every role as a "#rrggbb" string
// plus the tonal palettes it was drawn from.
type Scheme struct {
	Tokens   map[string]string  `json:"tokens" yaml:"tokens"`
	Palettes map[string]Palette `json:"palettes" yaml:"palettes"`
}

// Palette is a flattened tonal palette.
type Palette struct {
	Hue      float64        `json:"hue" yaml:"hue"`
	Chroma   float64        `json:"chroma" yaml:"chroma"`
	KeyColor string         `json:"keyColor" yaml:"keyColor"`
	Tones    map[int]string `json:"tones" yaml:"tones"`
}

// Token returns the hex value of a role, or "" when absent.
func (s Scheme) Token(r material.Role) string {
	return s.Tokens[string(r)]
}

// Flatten resolves every role and palette of a dynamic scheme.
func Flatten(ds *material.DynamicScheme) Scheme {
	out := Scheme{
		Tokens:   make(map[string]string, len(material.SchemeFields)),
		Palettes: make(map[string]Palette, len(material.PaletteFields)),
	}
	for _, r := range material.SchemeFields {
		out.Tokens[string(r)] = ds.Get(r).Hex()
	}
	for _, name := range material.PaletteFields {
		p := ds.Palette(name)
		tones := make(map[int]string, len(StandardTones))
		for _, t := range StandardTones {
			tones[t] = p.Tone(float64(t)).Hex()
		}
		out.Palettes[name] = Palette{
			Hue:      p.Hue,
			Chroma:   p.Chroma,
			KeyColor: p.KeyColor.Hex(),
			Tones:    tones,
		}
	}
	return out
}
