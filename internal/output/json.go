package output

import (
	"encoding/json"

	"github.com/jmylchreest/m3theme/internal/theme"
)

// JSON renders the full snapshot as indented JSON.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) Description() string { return "Snapshot with tokens and tonal palettes as JSON" }
func (JSON) MediaType() string   { return "application/json" }

func (JSON) Format(snap *theme.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
