package colour

import (
	"os"
	"strings"
	"testing"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(0xff2c4f7c, 4)
	want := "\033[48;2;44;79;124m    \033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}

	if got := ColourPreview(0xff000000, 0); !strings.Contains(got, strings.Repeat(" ", defaultWidth)) {
		t.Errorf("ColourPreview() with zero width should use default width, got %q", got)
	}
}

func TestFormatColourWithLabel(t *testing.T) {
	got := FormatColourWithLabel(0xffff0000, "primary", 2)
	if !strings.Contains(got, "primary") || !strings.HasSuffix(got, "#ff0000") {
		t.Errorf("FormatColourWithLabel() = %q", got)
	}

	DisableColourOutput = true
	defer func() { DisableColourOutput = false }()

	got = FormatColourWithLabel(0xffff0000, "primary", 2)
	if strings.Contains(got, "\033[") {
		t.Errorf("FormatColourWithLabel() with colour disabled = %q", got)
	}
	if got := ColourString(0xffff0000, "x"); got != "x" {
		t.Errorf("ColourString() with colour disabled = %q", got)
	}
}

func TestSupportsANSIColoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if SupportsANSIColours(os.Stdout) {
		t.Error("SupportsANSIColours() = true with NO_COLOR set")
	}
}

func TestSupportsANSIColoursNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if SupportsANSIColours(f) {
		t.Error("SupportsANSIColours() = true for a regular file")
	}
}
