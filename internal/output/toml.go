package output

import (
	"bytes"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/jmylchreest/m3theme/internal/theme"
)

// TOML renders the snapshot as a TOML document. Tone keys become strings
// since TOML tables only have string keys.
type TOML struct{}

type tomlDocument struct {
	Source    string                 `toml:"source"`
	Variant   string                 `toml:"variant"`
	Contrast  string                 `toml:"contrast"`
	Dark      bool                   `toml:"dark"`
	State     string                 `toml:"state,omitempty"`
	Error     string                 `toml:"error,omitempty"`
	Dominants []string               `toml:"dominants,omitempty"`
	Tokens    map[string]string      `toml:"tokens"`
	Palettes  map[string]tomlPalette `toml:"palettes"`
}

type tomlPalette struct {
	Hue      float64           `toml:"hue"`
	Chroma   float64           `toml:"chroma"`
	KeyColor string            `toml:"key_color"`
	Tones    map[string]string `toml:"tones"`
}

func (TOML) Name() string        { return "toml" }
func (TOML) Description() string { return "Tokens and tonal palettes as TOML" }
func (TOML) MediaType() string   { return "application/toml" }

func (TOML) Format(snap *theme.Snapshot) ([]byte, error) {
	doc := tomlDocument{
		Source:   snap.Source,
		Variant:  string(snap.Variant),
		Contrast: string(snap.Contrast),
		Dark:     snap.Dark,
		State:    string(snap.State),
		Error:    snap.Error,
		Tokens:   snap.Scheme.Tokens,
		Palettes: make(map[string]tomlPalette, len(snap.Scheme.Palettes)),
	}
	for _, d := range snap.Dominants {
		doc.Dominants = append(doc.Dominants, d.Hex())
	}
	for name, p := range snap.Scheme.Palettes {
		tones := make(map[string]string, len(p.Tones))
		for t, hex := range p.Tones {
			tones[strconv.Itoa(t)] = hex
		}
		doc.Palettes[name] = tomlPalette{Hue: p.Hue, Chroma: p.Chroma, KeyColor: p.KeyColor, Tones: tones}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
