package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// DisableColourOutput turns every preview helper into plain text.
var DisableColourOutput = false

// ColourPreview returns a solid block of width cells in the given colour.
func ColourPreview(c ARGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.Red(), c.Green(), c.Blue(), ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// FormatColourWithPreview formats a colour as a swatch followed by its hex code.
func FormatColourWithPreview(c ARGB, width int) string {
	if DisableColourOutput {
		return c.Hex()
	}
	return fmt.Sprintf("%s %s", ColourPreview(c, width), c.Hex())
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(c ARGB, label string, width int) string {
	if DisableColourOutput {
		return fmt.Sprintf("%-20s %s", label, c.Hex())
	}
	return fmt.Sprintf("%s  %-20s %s", ColourPreview(c, width), label, c.Hex())
}

// ColourString returns text in the given foreground colour when colour output is enabled.
func ColourString(c ARGB, text string) string {
	if DisableColourOutput {
		return text
	}
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.Red(), c.Green(), c.Blue(), ansiSuffix)
	return fg + text + ansiReset
}

// SupportsANSIColours reports whether f is a terminal that should receive
// ANSI colour. NO_COLOR and TERM=dumb disable it.
func SupportsANSIColours(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
