package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/output"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List scheme variants and contrast levels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderVariants())
		},
	}
}

func renderVariants() string {
	variants := output.NewTable("VARIANT", "DESCRIPTION")
	variants.SetColumnMaxWidth(1, 60)
	for _, v := range material.Variants() {
		name := string(v)
		if v == material.DefaultVariant {
			name += " (default)"
		}
		variants.AddRow(name, v.Description())
	}

	levels := output.NewTable("CONTRAST", "LEVEL")
	for _, c := range material.ContrastLevels() {
		levels.AddRow(string(c), fmt.Sprintf("%+.1f", c.Value()))
	}

	var b strings.Builder
	b.WriteString(variants.Render())
	b.WriteByte('\n')
	b.WriteString(levels.Render())
	return b.String()
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
