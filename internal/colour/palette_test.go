package colour

import (
	"encoding/json"
	"image/color"
	"strings"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestPalettePopulation(t *testing.T) {
	tests := []struct {
		name    string
		colors  []color.Color
		weights []float64
		want    map[ARGB]float64
	}{
		{
			name:   "unweighted counts each colour once",
			colors: []color.Color{color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}},
			want:   map[ARGB]float64{0xffff0000: 1, 0xff00ff00: 1},
		},
		{
			name:    "duplicates merge",
			colors:  []color.Color{color.RGBA{R: 255, A: 255}, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}},
			weights: []float64{0.25, 0.25, 0.5},
			want:    map[ARGB]float64{0xffff0000: 0.5, 0xff0000ff: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPaletteWithWeights(tt.colors, tt.weights).Population()
			if len(got) != len(tt.want) {
				t.Fatalf("Population() has %d entries, want %d", len(got), len(tt.want))
			}
			for c, w := range tt.want {
				if got[c] != w {
					t.Errorf("Population()[%s] = %v, want %v", c, got[c], w)
				}
			}
		})
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0x2c, G: 0x4f, B: 0x7c, A: 255},
	})

	got := palette.ToHex()
	want := []string{"#ff0000", "#2c4f7c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPaletteSortByWeight(t *testing.T) {
	palette := NewPaletteWithWeights(
		[]color.Color{color.RGBA{R: 1, A: 255}, color.RGBA{R: 2, A: 255}, color.RGBA{R: 3, A: 255}},
		[]float64{0.2, 0.5, 0.3},
	)
	palette.SortByWeight()

	wantWeights := []float64{0.5, 0.3, 0.2}
	wantRed := []uint8{2, 3, 1}
	for i := range wantWeights {
		if palette.Weights[i] != wantWeights[i] {
			t.Errorf("Weights[%d] = %v, want %v", i, palette.Weights[i], wantWeights[i])
		}
		if r := FromColor(palette.Colors[i]).Red(); r != wantRed[i] {
			t.Errorf("Colors[%d] red = %d, want %d", i, r, wantRed[i])
		}
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPaletteWithWeights(
		[]color.Color{color.RGBA{R: 255, A: 255}},
		[]float64{1},
	)

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if decoded.Count != 1 || decoded.Colors[0].Hex != "#ff0000" || decoded.Colors[0].ARGB != 0xffff0000 {
		t.Errorf("ToJSON() = %s", data)
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}

	got := NewPalette([]color.Color{color.RGBA{G: 255, A: 255}}).String()
	if !strings.Contains(got, "1 colors") || !strings.Contains(got, "#00ff00") {
		t.Errorf("String() = %q", got)
	}
}
