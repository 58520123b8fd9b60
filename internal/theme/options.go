package theme

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/signal"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

// Options are the reactive inputs of a Theme besides its source. Nil
// accessors use the defaults: tonal_spot, default contrast, the system
// dark preference and anonymous cross-origin requests.
type Options struct {
	Variant       signal.Accessor[material.Variant]
	ContrastLevel signal.Accessor[material.ContrastLevel]
	Dark          signal.Accessor[bool]
	CrossOrigin   signal.Accessor[httputil.CrossOrigin]
}

// Option configures a Theme.
type Option func(*Theme)

// WithLogger sets the logger. Defaults to a null logger.
func WithLogger(logger hclog.Logger) Option {
	return func(t *Theme) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithLoader replaces the image loader.
func WithLoader(loader ImageLoader) Option {
	return func(t *Theme) {
		if loader != nil {
			t.loader = loader
		}
	}
}

// WithExtractOptions tunes dominant colour extraction for image sources.
func WithExtractOptions(opts colour.DominantOptions) Option {
	return func(t *Theme) {
		t.extract = opts
	}
}

// WithPrefersDark replaces system dark-mode detection, used when
// Options.Dark is nil.
func WithPrefersDark(fn func() bool) Option {
	return func(t *Theme) {
		if fn != nil {
			t.prefersDark = fn
		}
	}
}
