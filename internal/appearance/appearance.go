// Package appearance detects whether the user prefers a dark or light colour scheme.
package appearance

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Mode is a colour scheme preference.
type Mode string

const (
	// ModeAuto follows the system preference.
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// EnvVar overrides every other detector when set to "dark" or "light".
const EnvVar = "M3THEME_APPEARANCE"

// ParseMode parses "auto", "dark" or "light". An empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeDark, ModeLight:
		return m, nil
	default:
		return "", fmt.Errorf("invalid appearance %q (valid: auto, dark, light)", s)
	}
}

// String implements pflag.Value.
func (m *Mode) String() string {
	if m == nil || *m == "" {
		return string(ModeAuto)
	}
	return string(*m)
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// Resolve turns the mode into a dark flag, asking prefersDark for auto.
func (m Mode) Resolve(prefersDark func() bool) bool {
	switch m {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		if prefersDark == nil {
			prefersDark = PrefersDark
		}
		return prefersDark()
	}
}

// Detector reports a preference, or ok=false when it has no opinion.
type Detector func() (dark bool, ok bool)

// DefaultDetectors are consulted in order by PrefersDark.
var DefaultDetectors = []Detector{
	EnvDetector,
	GTKThemeDetector,
	ColorFGBGDetector,
	TerminalDetector,
}

// PrefersDark runs DefaultDetectors and falls back to light.
func PrefersDark() bool {
	return Detect(DefaultDetectors...)
}

// Detect returns the first opinion among detectors, or false.
func Detect(detectors ...Detector) bool {
	for _, d := range detectors {
		if dark, ok := d(); ok {
			return dark
		}
	}
	return false
}

// EnvDetector reads M3THEME_APPEARANCE.
func EnvDetector() (bool, bool) {
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case string(ModeDark):
		return true, true
	case string(ModeLight):
		return false, true
	}
	return false, false
}

// GTKThemeDetector treats a GTK_THEME with a ":dark" suffix as dark.
func GTKThemeDetector() (bool, bool) {
	theme := os.Getenv("GTK_THEME")
	if theme == "" {
		return false, false
	}
	return strings.HasSuffix(strings.ToLower(theme), ":dark"), true
}

// ColorFGBGDetector reads the "fg;bg" COLORFGBG convention used by rxvt and
// others. Background indexes 0-6 and 8 are dark.
func ColorFGBGDetector() (bool, bool) {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false, false
	}
	return (bg >= 0 && bg <= 6) || bg == 8, true
}

// TerminalDetector asks the terminal for its background colour.
// It only has an opinion when stdout is a terminal.
func TerminalDetector() (bool, bool) {
	out := termenv.NewOutput(os.Stdout)
	if out.Profile == termenv.Ascii {
		return false, false
	}
	return out.HasDarkBackground(), true
}
