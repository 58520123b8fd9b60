package material

import (
	"errors"
	"math"
	"testing"
)

func TestParseContrastLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"default", 0, false},
		{"medium", 0.5, false},
		{"HIGH", 1, false},
		{"reduced", -1, false},
		{"max", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseContrastLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownContrast) {
					t.Fatalf("ParseContrastLevel(%q) error = %v, want ErrUnknownContrast", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContrastLevel(%q) error = %v", tt.in, err)
			}
			if got.Value() != tt.want {
				t.Errorf("ParseContrastLevel(%q).Value() = %v, want %v", tt.in, got.Value(), tt.want)
			}
		})
	}
}

func TestContrastCurveGet(t *testing.T) {
	c := ContrastCurve{Low: 1, Normal: 3, Medium: 5, High: 9}

	tests := []struct {
		level, want float64
	}{
		{-2, 1},
		{-1, 1},
		{-0.5, 2},
		{0, 3},
		{0.25, 4},
		{0.5, 5},
		{0.75, 7},
		{1, 9},
		{3, 9},
	}
	for _, tt := range tests {
		if got := c.Get(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Get(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRatioOfTones(t *testing.T) {
	if got := ratioOfTones(0, 100); math.Abs(got-21) > 0.05 {
		t.Errorf("ratioOfTones(0, 100) = %v, want 21", got)
	}
	if got := ratioOfTones(50, 50); math.Abs(got-1) > 1e-6 {
		t.Errorf("ratioOfTones(50, 50) = %v, want 1", got)
	}
	if a, b := ratioOfTones(-10, 40), ratioOfTones(0, 40); a != b {
		t.Errorf("out of range tones should clamp: %v != %v", a, b)
	}
}

func TestLighterDarker(t *testing.T) {
	l := lighter(50, 3)
	if l <= 50 || ratioOfTones(l, 50) < 2.96 {
		t.Errorf("lighter(50, 3) = %v (ratio %v)", l, ratioOfTones(l, 50))
	}
	d := darker(50, 3)
	if d < 0 || d >= 50 || ratioOfTones(d, 50) < 2.96 {
		t.Errorf("darker(50, 3) = %v (ratio %v)", d, ratioOfTones(d, 50))
	}

	if got := lighter(90, 21); got != -1 {
		t.Errorf("lighter(90, 21) = %v, want -1", got)
	}
	if got := darker(10, 21); got != -1 {
		t.Errorf("darker(10, 21) = %v, want -1", got)
	}
	if got := lighter(-1, 2); got != -1 {
		t.Errorf("lighter(-1, 2) = %v, want -1", got)
	}
	if got := lighterUnsafe(90, 21); got != 100 {
		t.Errorf("lighterUnsafe(90, 21) = %v, want 100", got)
	}
	if got := darkerUnsafe(10, 21); got != 0 {
		t.Errorf("darkerUnsafe(10, 21) = %v, want 0", got)
	}
}

func TestLstarRoundTrip(t *testing.T) {
	for _, l := range []float64{0, 1, 5, 25, 50, 75, 100} {
		if got := lstarFromY(yFromLstar(l)); math.Abs(got-l) > 1e-9 {
			t.Errorf("lstarFromY(yFromLstar(%v)) = %v", l, got)
		}
	}
}

func TestForegroundTone(t *testing.T) {
	tests := []struct {
		name        string
		bg, ratio   float64
		wantLighter bool
	}{
		{"dark background gets light text", 10, 4.5, true},
		{"light background gets dark text", 90, 4.5, false},
		{"mid background prefers light", 40, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := foregroundTone(tt.bg, tt.ratio)
			if (got > tt.bg) != tt.wantLighter {
				t.Errorf("foregroundTone(%v, %v) = %v", tt.bg, tt.ratio, got)
			}
			if r := ratioOfTones(got, tt.bg); r < tt.ratio-0.05 {
				t.Errorf("foregroundTone(%v, %v) contrast = %v", tt.bg, tt.ratio, r)
			}
		})
	}
}

func TestTonePrefersLightForeground(t *testing.T) {
	if !tonePrefersLightForeground(59.4) {
		t.Error("59.4 should prefer a light foreground")
	}
	if tonePrefersLightForeground(59.5) {
		t.Error("59.5 should prefer a dark foreground")
	}
}
