// Package colour provides colour parsing, image quantisation and
// dominant-colour scoring.
package colour

import (
	"fmt"
	"image/color"
)

// ARGB is a 32-bit colour packed as 0xAARRGGBB.
type ARGB uint32

// FromRGB packs opaque 8-bit channels.
func FromRGB(r, g, b uint8) ARGB {
	return ARGB(0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromColor converts any color.Color to an opaque ARGB value.
// Alpha-premultiplied channels are un-premultiplied first.
func FromColor(c color.Color) ARGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB(n.R, n.G, n.B)
}

// Alpha returns the alpha channel.
func (c ARGB) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c ARGB) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c ARGB) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c ARGB) Blue() uint8 { return uint8(c) }

// Hex returns the colour as "#rrggbb". Alpha is dropped.
func (c ARGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red(), c.Green(), c.Blue())
}

// RGBA returns the colour as an opaque color.RGBA.
func (c ARGB) RGBA() color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 255}
}

// String implements fmt.Stringer.
func (c ARGB) String() string {
	return fmt.Sprintf("0x%08x", uint32(c))
}
