package colour

import (
	"image/color"
	"testing"
)

func TestARGBChannels(t *testing.T) {
	c := ARGB(0x802c4f7c)
	if c.Alpha() != 0x80 || c.Red() != 0x2c || c.Green() != 0x4f || c.Blue() != 0x7c {
		t.Errorf("channels of %s = %d %d %d %d", c, c.Alpha(), c.Red(), c.Green(), c.Blue())
	}
	if got := c.Hex(); got != "#2c4f7c" {
		t.Errorf("Hex() = %s, want #2c4f7c", got)
	}
	if got := c.RGBA(); got != (color.RGBA{R: 0x2c, G: 0x4f, B: 0x7c, A: 255}) {
		t.Errorf("RGBA() = %v", got)
	}
	if got := c.String(); got != "0x802c4f7c" {
		t.Errorf("String() = %s", got)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want ARGB
	}{
		{"rgba", color.RGBA{R: 10, G: 20, B: 30, A: 255}, 0xff0a141e},
		{"nrgba drops alpha", color.NRGBA{R: 200, G: 100, B: 50, A: 10}, 0xffc86432},
		{"gray", color.Gray{Y: 128}, 0xff808080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.in); got != tt.want {
				t.Errorf("FromColor() = %s, want %s", got, tt.want)
			}
		})
	}
}
