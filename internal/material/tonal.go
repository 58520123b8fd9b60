package material

import (
	"sync"

	"cogentcore.org/core/colors/cam/hct"

	"github.com/jmylchreest/m3theme/internal/colour"
)

// TonalPalette is a hue and chroma pair from which any tone can be drawn.
type TonalPalette struct {
	Hue      float64
	Chroma   float64
	KeyColor colour.ARGB

	mu    sync.Mutex
	cache map[float64]colour.ARGB
}

// FromHueAndChroma creates a palette; the key colour is the tone 50 member.
func FromHueAndChroma(hue, chroma float64) *TonalPalette {
	hue = sanitizeDegrees(hue)
	return &TonalPalette{
		Hue:      hue,
		Chroma:   chroma,
		KeyColor: argbFromHCT(hct.New(float32(hue), float32(chroma), 50)),
	}
}

// FromARGB creates a palette with the hue and chroma of c, which becomes the key colour.
func FromARGB(c colour.ARGB) *TonalPalette {
	h := hct.FromColor(c.RGBA())
	return &TonalPalette{
		Hue:      float64(h.Hue),
		Chroma:   float64(h.Chroma),
		KeyColor: c,
	}
}

// Tone returns the palette colour at tone t (0 black, 100 white).
func (p *TonalPalette) Tone(t float64) colour.ARGB {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.cache[t]; ok {
		return c
	}
	if p.cache == nil {
		p.cache = make(map[float64]colour.ARGB)
	}
	c := argbFromHCT(p.HCT(t))
	p.cache[t] = c
	return c
}

// HCT returns the palette member at tone t without rounding to sRGB.
func (p *TonalPalette) HCT(t float64) hct.HCT {
	return hct.New(float32(p.Hue), float32(p.Chroma), float32(clamp(t, 0, 100)))
}

func argbFromHCT(h hct.HCT) colour.ARGB {
	return colour.FromColor(h.AsRGBA())
}
