package output

import (
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/m3theme/internal/theme"
)

// YAML renders the full snapshot as YAML.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) Description() string { return "Snapshot with tokens and tonal palettes as YAML" }
func (YAML) MediaType() string   { return "application/yaml" }

func (YAML) Format(snap *theme.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}
