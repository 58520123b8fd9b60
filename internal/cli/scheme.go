package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/m3theme/internal/appearance"
	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/config"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/server"
	"github.com/jmylchreest/m3theme/internal/signal"
	"github.com/jmylchreest/m3theme/internal/theme"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
	"github.com/jmylchreest/m3theme/internal/watch"
)

// schemeFlags are the scheme inputs shared by generate and serve. Flags
// that were not set on the command line fall back to the config file.
type schemeFlags struct {
	variant     material.Variant
	contrast    material.ContrastLevel
	crossOrigin string
	timeout     time.Duration
	cache       bool
	watch       bool
}

func (f *schemeFlags) register(fs *pflag.FlagSet) {
	f.variant = material.DefaultVariant
	f.contrast = material.ContrastDefault
	fs.Var(&f.variant, "variant", "scheme variant (see 'm3theme variants')")
	fs.Var(&f.contrast, "contrast", "contrast level (default, medium, high, reduced)")
	fs.StringVar(&f.crossOrigin, "cross-origin", "anonymous", "credential policy for image URLs (anonymous, use-credentials)")
	fs.DurationVar(&f.timeout, "timeout", httputil.DefaultTimeout, "timeout for fetching image URLs")
	fs.BoolVar(&f.cache, "cache", false, "cache downloaded images")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when the source image or config file changes")
}

// schemeSettings are fully resolved scheme inputs.
type schemeSettings struct {
	source      string
	variant     material.Variant
	contrast    material.ContrastLevel
	dark        bool
	crossOrigin httputil.CrossOrigin
}

// resolve merges flags, positional arguments and cfg.
func (f *schemeFlags) resolve(cmd *cobra.Command, g *globalOptions, cfg *config.Config, args []string) (schemeSettings, error) {
	flags := cmd.Flags()
	s := schemeSettings{source: cfg.Source}
	if len(args) > 0 {
		s.source = args[0]
	}

	var err error
	if flags.Changed("variant") {
		s.variant = f.variant
	} else if s.variant, err = material.ParseVariant(cfg.Variant); err != nil {
		return s, err
	}

	if flags.Changed("contrast") {
		s.contrast = f.contrast
	} else if s.contrast, err = material.ParseContrastLevel(cfg.Contrast); err != nil {
		return s, err
	}

	co := cfg.CrossOrigin
	if flags.Changed("cross-origin") {
		co = f.crossOrigin
	}
	if s.crossOrigin, err = httputil.ParseCrossOrigin(co); err != nil {
		return s, err
	}

	mode := g.mode
	if !flags.Changed("theme") {
		if mode, err = appearance.ParseMode(cfg.Appearance); err != nil {
			return s, err
		}
	}
	s.dark = mode.Resolve(appearance.PrefersDark)
	return s, nil
}

// liveInputs are the signals a running theme reads.
type liveInputs struct {
	server.Inputs
	CrossOrigin *signal.Signal[httputil.CrossOrigin]
}

func newLiveInputs(s schemeSettings) liveInputs {
	return liveInputs{
		Inputs: server.Inputs{
			Source:   signal.New(s.source),
			Variant:  signal.New(s.variant),
			Contrast: signal.New(s.contrast),
			Dark:     signal.New(s.dark),
		},
		CrossOrigin: signal.New(s.crossOrigin),
	}
}

// apply pushes s into the signals. The source goes last so an image load
// starts with the new options in place.
func (in liveInputs) apply(s schemeSettings) {
	in.CrossOrigin.Set(s.crossOrigin)
	in.Variant.Set(s.variant)
	in.Contrast.Set(s.contrast)
	in.Dark.Set(s.dark)
	in.Source.Set(s.source)
}

// newTheme builds the theme for in. With denyPrivate set, image downloads
// refuse loopback, private and link-local addresses.
func (f *schemeFlags) newTheme(ctx context.Context, cmd *cobra.Command, g *globalOptions, in liveInputs, denyPrivate bool) *theme.Theme {
	lo := g.cfg.LoaderOptions(g.logger.Named("image"))
	lo.Fetch.DenyPrivate = denyPrivate
	if cmd.Flags().Changed("timeout") {
		lo.Fetch.Timeout = f.timeout
	}
	if cmd.Flags().Changed("cache") {
		lo.Cache = f.cache
	}

	return theme.New(ctx, in.Source, theme.Options{
		Variant:       in.Variant,
		ContrastLevel: in.Contrast,
		Dark:          in.Dark,
		CrossOrigin:   in.CrossOrigin,
	},
		theme.WithLogger(g.logger.Named("theme")),
		theme.WithLoader(theme.NewImageLoader(lo)),
		theme.WithExtractOptions(g.cfg.DominantOptions()),
	)
}

// startWatchers reloads the theme when a local source image or the config
// file changes. It returns the number of files being watched.
func (f *schemeFlags) startWatchers(ctx context.Context, cmd *cobra.Command, g *globalOptions, th *theme.Theme, in liveInputs, args []string) (int, error) {
	logger := g.logger.Named("watch")
	watched := 0

	if src := in.Source.Get(); colour.ClassifySource(src) == colour.SourceFile {
		w, err := watch.New(src, watch.WithLogger(logger))
		if err != nil {
			return watched, err
		}
		watched++
		go func() {
			defer w.Close()
			if err := w.Run(ctx, th.Reload); err != nil {
				logger.Error("source watcher stopped", "error", err)
			}
		}()
		logger.Info("watching source image", "path", w.Path())
	}

	if path := g.cfg.Path(); path != "" {
		w, err := watch.New(path, watch.WithLogger(logger))
		if err != nil {
			return watched, err
		}
		watched++
		go func() {
			defer w.Close()
			err := w.Run(ctx, func() {
				cfg, err := config.Load(path)
				if err != nil {
					logger.Warn("ignoring config change", "error", err)
					return
				}
				s, err := f.resolve(cmd, g, cfg, args)
				if err != nil {
					logger.Warn("ignoring config change", "error", err)
					return
				}
				logger.Info("config reloaded", "path", path)
				in.apply(s)
			})
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
		logger.Info("watching config", "path", w.Path())
	}

	if watched == 0 {
		return 0, fmt.Errorf("nothing to watch: the source is not a local file and no config file was loaded")
	}
	return watched, nil
}
