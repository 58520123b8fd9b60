package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/output"
	"github.com/jmylchreest/m3theme/internal/security"
	"github.com/jmylchreest/m3theme/internal/theme"
)

type generateOptions struct {
	schemeFlags
	format    string
	output    string
	preview   bool
	cssScoped bool
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [source]",
		Short: "Generate a Material 3 colour scheme",
		Long: `Generate a Material 3 colour scheme from a source colour or image.

The source may be a hex colour (#rgb, #rrggbb, #aarrggbb), an rgb()/rgba()
colour, a packed ARGB integer (decimal or 0x-prefixed), a local image file
or an http(s) image URL. Without an argument the config file's source is used.

Examples:
  # JSON scheme from a hex colour
  m3theme generate '#6750a4'

  # Dark CSS custom properties from a wallpaper
  m3theme generate --theme dark --format css ~/Pictures/wallpaper.jpg

  # Vibrant, high-contrast scheme with a terminal preview
  m3theme generate --variant vibrant --contrast high --format text '#00897b'

  # Keep theme.css in sync with the wallpaper
  m3theme generate --format css --output theme.css --watch ~/Pictures/wallpaper.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, g, args)
		},
	}

	o.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.format, "format", "f", "json", fmt.Sprintf("output format (%s)", joinNames(output.Names())))
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "print a colour table to stderr")
	cmd.Flags().BoolVar(&o.cssScoped, "css-scoped", false, `css: scope properties to [data-theme="light|dark"] instead of :root`)
	return cmd
}

func (o *generateOptions) run(cmd *cobra.Command, g *globalOptions, args []string) error {
	ctx := cmd.Context()
	logger := g.logger

	settings, err := o.resolve(cmd, g, g.cfg, args)
	if err != nil {
		return err
	}
	if settings.source == "" {
		return fmt.Errorf("no source given: pass a colour or image, or set source in the config file")
	}

	format := g.cfg.Format
	if cmd.Flags().Changed("format") {
		format = o.format
	}
	registry := output.Default()
	if o.cssScoped {
		registry.Register(output.CSS{Scoped: true})
	}
	if _, ok := registry.Get(format); !ok {
		return fmt.Errorf("%w: %q (valid: %s)", output.ErrUnknownFormat, format, joinNames(registry.List()))
	}

	in := newLiveInputs(settings)
	th := o.newTheme(ctx, cmd, g, in, false)
	defer th.Close()

	snap, err := th.Wait(ctx)
	if err != nil {
		return err
	}
	if snap.State == theme.StateError {
		return fmt.Errorf("failed to resolve source %q: %w", settings.source, snap.Err)
	}
	if err := o.write(cmd, registry, format, snap); err != nil {
		return err
	}

	if !o.watch {
		return nil
	}

	updates := make(chan theme.Snapshot, 1)
	unsubscribe := th.Subscribe(func(s theme.Snapshot) {
		if s.State == theme.StateLoading {
			return
		}
		for {
			select {
			case updates <- s:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	defer unsubscribe()

	if _, err := o.startWatchers(ctx, cmd, g, th, in, args); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-updates:
			if s.State == theme.StateError {
				logger.Warn("keeping previous output", "error", s.Err)
				continue
			}
			if err := o.write(cmd, registry, format, s); err != nil {
				logger.Error("failed to write scheme", "error", err)
				continue
			}
			logger.Info("scheme updated", "source", s.SourceARGB.Hex(), "generation", s.Generation)
		}
	}
}

// write renders snap to the output file or stdout, plus the optional
// preview on stderr.
func (o *generateOptions) write(cmd *cobra.Command, registry *output.Registry, format string, snap theme.Snapshot) error {
	colour.DisableColourOutput = o.output != "" || !colour.SupportsANSIColours(os.Stdout)
	data, err := registry.Format(format, &snap)
	if err != nil {
		return err
	}

	if o.output == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := writeFileAtomic(o.output, data); err != nil {
		return err
	}

	if o.preview && !(format == "text" && o.output == "") {
		colour.DisableColourOutput = !colour.SupportsANSIColours(os.Stderr)
		preview, err := registry.Format("text", &snap)
		if err != nil {
			return err
		}
		_, _ = cmd.ErrOrStderr().Write(preview)
	}
	return nil
}

// writeFileAtomic replaces path via a temporary file in the same directory,
// so readers never see a partial scheme.
func writeFileAtomic(path string, data []byte) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := security.ValidateOutputPath(path, cwd); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
