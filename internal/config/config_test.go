package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Variant != "tonal_spot" || cfg.Extract.Clusters != 64 || cfg.Fetch.Timeout.Duration != httputil.DefaultTimeout {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
source = "#2c4f7c"
variant = "vibrant"
contrast = "high"
cross_origin = "use-credentials"

[fetch]
timeout = "3s"
headers = { Authorization = "Bearer x" }

[cache]
enabled = true

[extract]
clusters = 32
seed = 7

[server]
addr = ":9000"
allow_origins = ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "#2c4f7c" || cfg.Variant != "vibrant" || cfg.Contrast != "high" {
		t.Errorf("top-level values not loaded: %+v", cfg)
	}
	if cfg.Fetch.Timeout.Duration != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.Fetch.Timeout)
	}
	if cfg.Extract.Clusters != 32 || cfg.Extract.MaxDimension != 128 {
		t.Errorf("extract = %+v", cfg.Extract)
	}
	if cfg.Extract.Seed == nil || *cfg.Extract.Seed != 7 {
		t.Errorf("seed = %v, want 7", cfg.Extract.Seed)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	fetch := cfg.FetchOptions()
	if fetch.CrossOrigin != httputil.CrossOriginUseCredentials || fetch.Headers["Authorization"] != "Bearer x" {
		t.Errorf("FetchOptions() = %+v", fetch)
	}
	if dom := cfg.DominantOptions(); dom.Clusters != 32 || dom.Seed == nil {
		t.Errorf("DominantOptions() = %+v", dom)
	}
	if lo := cfg.LoaderOptions(nil); !lo.Cache {
		t.Error("LoaderOptions().Cache = false, want true")
	}
}

func TestLoadSearchPaths(t *testing.T) {
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(xdg, "m3theme"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(xdg, "m3theme"), `variant = "content"`)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "content" {
		t.Errorf("Variant = %s, want content from XDG config", cfg.Variant)
	}

	envPath := writeConfig(t, t.TempDir(), `variant = "rainbow"`)
	t.Setenv(EnvVar, envPath)
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "rainbow" {
		t.Errorf("Variant = %s, want rainbow from $%s", cfg.Variant, EnvVar)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"bad toml", `variant = `, "failed to parse"},
		{"bad variant", `variant = "sparkly"`, "unknown scheme variant"},
		{"bad contrast", `contrast = "max"`, "unknown contrast level"},
		{"bad appearance", `appearance = "dim"`, "invalid appearance"},
		{"bad cross origin", `cross_origin = "everyone"`, "invalid cross-origin"},
		{"bad duration", "[fetch]\ntimeout = \"soon\"", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantSub)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing explicit path expected error")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Source = "#ffffff"
	cfg.Fetch.Timeout = Duration{5 * time.Second}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `timeout = "5s"`) {
		t.Errorf("encoded config missing timeout:\n%s", buf.String())
	}

	decoded := Defaults()
	if _, err := toml.Decode(buf.String(), decoded); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if decoded.Source != "#ffffff" || decoded.Fetch.Timeout.Duration != 5*time.Second {
		t.Errorf("round trip lost values: %+v", decoded)
	}
}
