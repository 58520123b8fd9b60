package colour

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// stripes builds an image of vertical bands, one per colour, with the given widths.
func stripes(height int, bands []color.Color, widths []int) *image.NRGBA {
	total := 0
	for _, w := range widths {
		total += w
	}
	img := image.NewNRGBA(image.Rect(0, 0, total, height))
	x := 0
	for i, c := range bands {
		for dx := 0; dx < widths[i]; dx++ {
			for y := 0; y < height; y++ {
				img.Set(x+dx, y, c)
			}
		}
		x += widths[i]
	}
	return img
}

func TestDominantColours(t *testing.T) {
	seed := int64(42)
	img := stripes(10,
		[]color.Color{color.NRGBA{R: 255, A: 255}, color.NRGBA{G: 255, A: 255}, color.NRGBA{B: 255, A: 255}},
		[]int{15, 9, 6},
	)

	got, err := DominantColours(img, 3, DominantOptions{Seed: &seed})
	if err != nil {
		t.Fatalf("DominantColours() error = %v", err)
	}

	want := []ARGB{0xffff0000, 0xff00ff00, 0xff0000ff}
	if len(got) != len(want) {
		t.Fatalf("DominantColours() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DominantColours()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDominantColoursLimitsCount(t *testing.T) {
	seed := int64(1)
	img := stripes(4,
		[]color.Color{color.NRGBA{R: 255, A: 255}, color.NRGBA{B: 255, A: 255}},
		[]int{8, 2},
	)

	got, err := DominantColours(img, 1, DominantOptions{Seed: &seed})
	if err != nil {
		t.Fatalf("DominantColours() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0xffff0000 {
		t.Errorf("DominantColours() = %v, want [red]", got)
	}
}

func TestDominantColoursGrayscaleFallsBack(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	got, err := DominantColours(img, 3, DefaultDominantOptions())
	if err != nil {
		t.Fatalf("DominantColours() error = %v", err)
	}
	if len(got) != 1 || got[0] != FallbackSource {
		t.Errorf("DominantColours() = %v, want [%s]", got, FallbackSource)
	}
}

func TestDominantColoursTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	_, err := DominantColours(img, 3, DefaultDominantOptions())
	if !errors.Is(err, ErrNoOpaquePixels) {
		t.Errorf("DominantColours() error = %v, want ErrNoOpaquePixels", err)
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, maxDim int
		wantW, wantH int
	}{
		{"landscape", 500, 250, 128, 128, 64},
		{"portrait", 100, 400, 128, 32, 128},
		{"already small", 64, 32, 128, 64, 32},
		{"disabled", 500, 250, 0, 500, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			b := Downscale(img, tt.maxDim).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Downscale() = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
