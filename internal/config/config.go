// Package config loads m3theme settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/m3theme/internal/appearance"
	"github.com/jmylchreest/m3theme/internal/colour"
	imgpkg "github.com/jmylchreest/m3theme/internal/image"
	"github.com/jmylchreest/m3theme/internal/material"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

// EnvVar names a config file to use when no explicit path is given.
const EnvVar = "M3THEME_CONFIG"

// Config is the full set of settings. CLI flags override these values.
type Config struct {
	Source      string `toml:"source"`
	Variant     string `toml:"variant"`
	Contrast    string `toml:"contrast"`
	Appearance  string `toml:"appearance"`
	CrossOrigin string `toml:"cross_origin"`
	Format      string `toml:"format"`

	Fetch   FetchConfig   `toml:"fetch"`
	Cache   CacheConfig   `toml:"cache"`
	Extract ExtractConfig `toml:"extract"`
	Server  ServerConfig  `toml:"server"`

	path string
}

type FetchConfig struct {
	Timeout      Duration          `toml:"timeout"`
	Headers      map[string]string `toml:"headers"`       // credential headers are stripped unless cross_origin = "use-credentials"
	AllowPrivate bool              `toml:"allow_private"` // allow loopback and private image hosts from server clients
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // default: $XDG_CACHE_HOME/m3theme/images
}

type ExtractConfig struct {
	MaxDimension int    `toml:"max_dimension"` // longest image side before quantisation (default 128)
	Clusters     int    `toml:"clusters"`      // quantiser colour budget (default 64)
	Seed         *int64 `toml:"seed,omitempty"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	AllowOrigins []string `toml:"allow_origins"` // WebSocket origins; empty allows same-origin only
}

// Duration is a time.Duration written as a string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Variant:     string(material.DefaultVariant),
		Contrast:    string(material.ContrastDefault),
		Appearance:  string(appearance.ModeAuto),
		CrossOrigin: string(httputil.CrossOriginAnonymous),
		Format:      "json",
		Fetch: FetchConfig{
			Timeout: Duration{httputil.DefaultTimeout},
			Headers: map[string]string{},
		},
		Extract: ExtractConfig{MaxDimension: 128, Clusters: 64},
		Server:  ServerConfig{Addr: "127.0.0.1:7070"},
	}
}

// Load reads configuration. An explicit path must exist. Without one,
// $M3THEME_CONFIG and then the XDG config locations are searched; if no file
// is found the defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	chosen := path
	if chosen == "" {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(chosen) // #nosec G304 - user-specified config path
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to parse config %s: %w", chosen, err)
	}
	cfg.path = chosen

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", chosen, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var out []string
	if env := os.Getenv(EnvVar); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "m3theme", "config.toml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "m3theme", "config.toml"))
	}
	return out
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	d := Defaults()
	if c.Fetch.Timeout.Duration <= 0 {
		c.Fetch.Timeout = d.Fetch.Timeout
	}
	if c.Extract.MaxDimension <= 0 {
		c.Extract.MaxDimension = d.Extract.MaxDimension
	}
	if c.Extract.Clusters <= 0 || c.Extract.Clusters > 256 {
		c.Extract.Clusters = d.Extract.Clusters
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Format == "" {
		c.Format = d.Format
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if _, err := material.ParseVariant(c.Variant); err != nil {
		errs = append(errs, err)
	}
	if _, err := material.ParseContrastLevel(c.Contrast); err != nil {
		errs = append(errs, err)
	}
	if _, err := appearance.ParseMode(c.Appearance); err != nil {
		errs = append(errs, err)
	}
	if _, err := httputil.ParseCrossOrigin(c.CrossOrigin); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FetchOptions returns the HTTP settings for image downloads.
func (c *Config) FetchOptions() httputil.FetchOptions {
	co, _ := httputil.ParseCrossOrigin(c.CrossOrigin)
	return httputil.FetchOptions{
		Timeout:     c.Fetch.Timeout.Duration,
		Headers:     c.Fetch.Headers,
		CrossOrigin: co,
	}
}

// LoaderOptions returns image loader settings.
func (c *Config) LoaderOptions(logger hclog.Logger) imgpkg.SmartLoaderOptions {
	return imgpkg.SmartLoaderOptions{
		Fetch:    c.FetchOptions(),
		Cache:    c.Cache.Enabled,
		CacheDir: c.Cache.Dir,
		Logger:   logger,
	}
}

// DominantOptions returns colour extraction settings.
func (c *Config) DominantOptions() colour.DominantOptions {
	return colour.DominantOptions{
		MaxDimension: c.Extract.MaxDimension,
		Clusters:     c.Extract.Clusters,
		Seed:         c.Extract.Seed,
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
