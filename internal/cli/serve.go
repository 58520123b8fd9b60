package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/server"
)

type serveOptions struct {
	schemeFlags
	addr string
}

func newServeCmd(g *globalOptions) *cobra.Command {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve a live scheme over HTTP and WebSocket",
		Long: `Serve a live Material 3 scheme.

Routes:
  GET  /api/scheme       current snapshot as JSON (?format= for css, yaml, toml, text)
  GET  /api/scheme.css   CSS custom properties
  GET  /api/variants     available variants, contrast levels and formats
  POST /api/theme        update {"source", "variant", "contrast", "dark"}
  GET  /ws               WebSocket; pushes every new snapshot
  GET  /healthz          liveness

Image URLs may not point at private hosts unless fetch.allow_private is
set in the config file. The check applies to the resolved address of every
connection, including redirects.

Examples:
  m3theme serve '#6750a4'
  m3theme serve --addr :8080 --watch ~/Pictures/wallpaper.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, g, args)
		},
	}

	o.register(cmd.Flags())
	cmd.Flags().StringVar(&o.addr, "addr", "", "listen address (default from config, 127.0.0.1:7070)")
	return cmd
}

func (o *serveOptions) run(cmd *cobra.Command, g *globalOptions, args []string) error {
	ctx := cmd.Context()

	settings, err := o.resolve(cmd, g, g.cfg, args)
	if err != nil {
		return err
	}
	if settings.source == "" {
		settings.source = colour.FallbackSource.Hex()
	}

	in := newLiveInputs(settings)
	th := o.newTheme(ctx, cmd, g, in, !g.cfg.Fetch.AllowPrivate)
	defer th.Close()

	srv := server.New(th, in.Inputs, server.Options{
		AllowPrivate: g.cfg.Fetch.AllowPrivate,
		AllowOrigins: g.cfg.Server.AllowOrigins,
		Logger:       g.logger.Named("server"),
	})
	defer srv.Close()

	if o.watch {
		if _, err := o.startWatchers(ctx, cmd, g, th, in, args); err != nil {
			return err
		}
	}

	addr := g.cfg.Server.Addr
	if o.addr != "" {
		addr = o.addr
	}
	return server.ListenAndServe(ctx, addr, srv.Handler(), g.logger.Named("server"))
}
