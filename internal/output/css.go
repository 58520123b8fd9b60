package output

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/theme"
)

// CSS renders the scheme as custom properties:
// --md-sys-color-<role> for tokens and --md-ref-palette-<family><tone> for
// palette tones.
type CSS struct {
	// Scoped places the block under [data-theme="light"] or
	// [data-theme="dark"], following the snapshot's mode, instead of :root.
	Scoped bool
}

func (CSS) Name() string        { return "css" }
func (CSS) Description() string { return "CSS custom properties (--md-sys-color-*)" }
func (CSS) MediaType() string   { return "text/css; charset=utf-8" }

// Selector returns the rule selector used for snap.
func (c CSS) Selector(snap *theme.Snapshot) string {
	if !c.Scoped {
		return ":root"
	}
	return fmt.Sprintf("[data-theme=%q]", modeName(snap.Dark))
}

func (c CSS) Format(snap *theme.Snapshot) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "/* m3theme: source %s, variant %s, contrast %s, %s */\n",
		snap.SourceARGB.Hex(), snap.Variant, snap.Contrast, modeName(snap.Dark))
	fmt.Fprintf(&b, "%s {\n", c.Selector(snap))
	fmt.Fprintf(&b, "  color-scheme: %s;\n", modeName(snap.Dark))

	for _, r := range material.SchemeFields {
		hex, ok := snap.Scheme.Tokens[string(r)]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  --md-sys-color-%s: %s;\n", Kebab(string(r)), hex)
	}

	for _, name := range material.PaletteFields {
		p, ok := snap.Scheme.Palettes[name]
		if !ok {
			continue
		}
		family := Kebab(strings.TrimSuffix(name, "Palette"))
		for _, t := range theme.StandardTones {
			if hex, ok := p.Tones[t]; ok {
				fmt.Fprintf(&b, "  --md-ref-palette-%s%d: %s;\n", family, t, hex)
			}
		}
	}

	b.WriteString("}\n")
	return []byte(b.String()), nil
}

// Kebab converts a camelCase token name to kebab-case.
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
