// Package cli provides the command-line interface for m3theme.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/m3theme/internal/appearance"
	"github.com/jmylchreest/m3theme/internal/config"
	"github.com/jmylchreest/m3theme/internal/version"
)

// globalOptions holds persistent flags and the state derived from them
// before any subcommand runs.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	mode       appearance.Mode

	logger hclog.Logger
	cfg    *config.Config
}

// NewRootCmd builds the m3theme command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{mode: appearance.ModeAuto}

	rootCmd := &cobra.Command{
		Use:   "m3theme",
		Short: "Material 3 dynamic colour schemes from a colour or an image",
		Long: `m3theme derives a complete Material 3 colour scheme from a single source:
a hex or rgb() colour, a packed ARGB integer, an image file or an image URL.

Schemes can be written as JSON, CSS custom properties, YAML, TOML or a
human-readable table, or served live over HTTP and WebSocket.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&g.configPath, "config", "", "config file (default: $"+config.EnvVar+" or $XDG_CONFIG_HOME/m3theme/config.toml)")
	pf.VarP(&g.mode, "theme", "t", "appearance (auto, dark, light)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newGenerateCmd(g),
		newExtractCmd(g),
		newServeCmd(g),
		newVariantsCmd(),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error. SIGINT and SIGTERM
// cancel the command context.
func Execute() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func (g *globalOptions) init(cmd *cobra.Command) error {
	g.logger = newLogger(cmd.ErrOrStderr(), g.verbose, g.quiet)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if cfg.Path() != "" {
		g.logger.Debug("loaded config", "path", cfg.Path())
	}
	g.cfg = cfg

	if !cmd.Flags().Changed("theme") {
		mode, err := appearance.ParseMode(cfg.Appearance)
		if err != nil {
			return fmt.Errorf("invalid config appearance: %w", err)
		}
		g.mode = mode
	}
	return nil
}

// prefersDark resolves the appearance mode, detecting the system
// preference for auto.
func (g *globalOptions) prefersDark() bool {
	return g.mode.Resolve(appearance.PrefersDark)
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "m3theme",
		Output: w,
		Level:  level,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
