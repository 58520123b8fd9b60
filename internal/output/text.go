package output

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/theme"
)

const swatchWidth = 4

// Text renders a human-readable summary with a table of roles. Swatches are
// plain text when colour.DisableColourOutput is set.
type Text struct{}

func (Text) Name() string        { return "text" }
func (Text) Description() string { return "Human-readable role table with colour swatches" }
func (Text) MediaType() string   { return "text/plain; charset=utf-8" }

func (Text) Format(snap *theme.Snapshot) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Source:   %s\n", colour.FormatColourWithPreview(snap.SourceARGB, swatchWidth))
	if snap.Source != "" {
		fmt.Fprintf(&b, "Input:    %s\n", snap.Source)
	}
	fmt.Fprintf(&b, "Variant:  %s\n", snap.Variant)
	fmt.Fprintf(&b, "Contrast: %s\n", snap.Contrast)
	fmt.Fprintf(&b, "Mode:     %s\n", modeName(snap.Dark))
	if snap.State == theme.StateError {
		fmt.Fprintf(&b, "Error:    %s\n", snap.Error)
	}
	if len(snap.Dominants) > 0 {
		parts := make([]string, len(snap.Dominants))
		for i, d := range snap.Dominants {
			parts[i] = colour.FormatColourWithPreview(d, 2)
		}
		fmt.Fprintf(&b, "Dominant: %s\n", strings.Join(parts, "  "))
	}
	b.WriteByte('\n')

	table := NewTable("ROLE", "COLOUR", "HEX")
	for _, r := range material.SchemeFields {
		hex, ok := snap.Scheme.Tokens[string(r)]
		if !ok {
			continue
		}
		swatch := ""
		if c, err := colour.ParseHex(hex); err == nil && !colour.DisableColourOutput {
			swatch = colour.ColourPreview(c, swatchWidth)
		}
		table.AddRow(string(r), swatch, hex)
	}
	b.WriteString(table.Render())

	return []byte(b.String()), nil
}
