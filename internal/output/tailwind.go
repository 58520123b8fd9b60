package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/theme"
)

//go:embed tailwind.css.tmpl
var tailwindTemplate string

// tailwindRoles maps shadcn/ui variable names to scheme roles.
var tailwindRoles = []struct {
	name string
	role material.Role
}{
	{"background", material.RoleSurface},
	{"foreground", material.RoleOnSurface},
	{"card", material.RoleSurfaceContainerLow},
	{"card-foreground", material.RoleOnSurface},
	{"popover", material.RoleSurfaceContainer},
	{"popover-foreground", material.RoleOnSurface},
	{"primary", material.RolePrimary},
	{"primary-foreground", material.RoleOnPrimary},
	{"secondary", material.RoleSecondaryContainer},
	{"secondary-foreground", material.RoleOnSecondaryContainer},
	{"muted", material.RoleSurfaceContainerHighest},
	{"muted-foreground", material.RoleOnSurfaceVariant},
	{"accent", material.RoleTertiaryContainer},
	{"accent-foreground", material.RoleOnTertiaryContainer},
	{"destructive", material.RoleError},
	{"destructive-foreground", material.RoleOnError},
	{"border", material.RoleOutlineVariant},
	{"input", material.RoleOutline},
	{"ring", material.RolePrimary},
}

// Tailwind renders shadcn/ui style CSS variables holding bare HSL
// components, for use as hsl(var(--primary)). Dark schemes use the .dark
// selector.
type Tailwind struct{}

type tailwindVar struct {
	Name  string
	Value string
}

type tailwindData struct {
	Mode     string
	Variant  material.Variant
	Source   string
	Selector string
	Vars     []tailwindVar
}

func (Tailwind) Name() string        { return "tailwind" }
func (Tailwind) Description() string { return "Tailwind CSS / shadcn/ui theme variables (HSL)" }
func (Tailwind) MediaType() string   { return "text/css; charset=utf-8" }

func (Tailwind) Format(snap *theme.Snapshot) ([]byte, error) {
	tmpl, err := template.New("tailwind").Parse(tailwindTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	data := tailwindData{
		Mode:     modeName(snap.Dark),
		Variant:  snap.Variant,
		Source:   snap.SourceARGB.Hex(),
		Selector: ":root",
	}
	if snap.Dark {
		data.Selector = ".dark"
	}
	for _, m := range tailwindRoles {
		hex, ok := snap.Scheme.Tokens[string(m.role)]
		if !ok {
			continue
		}
		c, err := colour.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", m.role, err)
		}
		data.Vars = append(data.Vars, tailwindVar{Name: m.name, Value: toHSL(c)})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// toHSL formats c as "hue saturation% lightness%", e.g. "222.2 47.4% 11.2%".
func toHSL(c colour.ARGB) string {
	h, s, l := colorful.Color{
		R: float64(c.Red()) / 255,
		G: float64(c.Green()) / 255,
		B: float64(c.Blue()) / 255,
	}.Hsl()
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s*100, l*100)
}
