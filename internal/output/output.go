// Package output renders theme snapshots in the formats m3theme can emit.
package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/m3theme/internal/theme"
)

// ErrUnknownFormat is returned for a format name that is not registered.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter renders a snapshot to bytes.
type Formatter interface {
	// Name is the value accepted by --format (e.g. "json", "css").
	Name() string

	// Description is a one-line human-readable summary.
	Description() string

	// MediaType is the Content-Type used when serving this format.
	MediaType() string

	// Format renders the snapshot.
	Format(snap *theme.Snapshot) ([]byte, error)
}

// Registry holds formatters by name.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter, replacing any with the same name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[strings.ToLower(name)]
	return f, ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the registered formatters.
func (r *Registry) All() map[string]Formatter {
	out := make(map[string]Formatter, len(r.formatters))
	for name, f := range r.formatters {
		out[name] = f
	}
	return out
}

// Format renders snap with the named formatter.
func (r *Registry) Format(name string, snap *theme.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, name, strings.Join(r.List(), ", "))
	}
	data, err := f.Format(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", f.Name(), err)
	}
	return data, nil
}

// Default returns a registry with every built-in formatter.
func Default() *Registry {
	r := NewRegistry()
	r.Register(JSON{})
	r.Register(CSS{})
	r.Register(YAML{})
	r.Register(TOML{})
	r.Register(Text{})
	r.Register(Tailwind{})
	return r
}

var defaultRegistry = Default()

// Format renders snap with a built-in formatter.
func Format(name string, snap *theme.Snapshot) ([]byte, error) {
	return defaultRegistry.Format(name, snap)
}

// Names lists the built-in format names.
func Names() []string {
	return defaultRegistry.List()
}
