package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/signal"
	"github.com/jmylchreest/m3theme/internal/theme"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

type fixture struct {
	srv    *httptest.Server
	theme  *theme.Theme
	inputs Inputs
}

func solidLoader(c color.Color) theme.ImageLoader {
	return theme.ImageLoaderFunc(func(_ context.Context, _ string, _ httputil.CrossOrigin) (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.Set(x, y, c)
			}
		}
		return img, nil
	})
}

func newFixture(t *testing.T, inputs Inputs, opts Options) *fixture {
	t.Helper()
	if inputs.Source == nil {
		inputs.Source = signal.New("#6750a4")
	}
	th := theme.New(context.Background(), inputs.Source, theme.Options{
		Variant:       accessorOrNil(inputs.Variant),
		ContrastLevel: accessorOrNil(inputs.Contrast),
		Dark:          accessorOrNil(inputs.Dark),
	}, theme.WithLoader(solidLoader(color.RGBA{R: 0x20, G: 0x80, B: 0x40, A: 0xff})), theme.WithPrefersDark(func() bool { return false }))

	s := New(th, inputs, opts)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		srv.Close()
		th.Close()
	})
	return &fixture{srv: srv, theme: th, inputs: inputs}
}

func accessorOrNil[T comparable](s *signal.Signal[T]) signal.Accessor[T] {
	if s == nil {
		return nil
	}
	return s
}

func fullInputs() Inputs {
	return Inputs{
		Source:   signal.New("#6750a4"),
		Variant:  signal.New(material.VariantTonalSpot),
		Contrast: signal.New(material.ContrastDefault),
		Dark:     signal.New(false),
	}
}

func (f *fixture) post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(f.srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestGetScheme(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{})

	resp, data := f.get(t, "/api/scheme")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var snap theme.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Scheme.Tokens["primary"] != f.theme.Scheme().Tokens["primary"] {
		t.Errorf("primary = %s, want %s", snap.Scheme.Tokens["primary"], f.theme.Scheme().Tokens["primary"])
	}
	if snap.State != theme.StateDone {
		t.Errorf("state = %s, want done", snap.State)
	}
}

func TestGetSchemeFormats(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{})

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/api/scheme.css", http.StatusOK, "text/css", "--md-sys-color-primary:"},
		{"/api/scheme?format=yaml", http.StatusOK, "application/yaml", "tokens:"},
		{"/api/scheme?format=toml", http.StatusOK, "application/toml", "[tokens]"},
		{"/api/scheme?format=xml", http.StatusBadRequest, "application/json", "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, data := f.get(t, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestVariantsAndHealth(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{})

	_, data := f.get(t, "/api/variants")
	var body struct {
		Variants  []variantInfo `json:"variants"`
		Contrasts []string      `json:"contrasts"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Variants) != len(material.Variants()) || len(body.Contrasts) != 4 {
		t.Errorf("variants = %d, contrasts = %d", len(body.Variants), len(body.Contrasts))
	}
	for _, v := range body.Variants {
		if v.Description == "" {
			t.Errorf("variant %s has no description", v.Name)
		}
	}

	resp, data := f.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"status":"ok"`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, data)
	}

	resp, _ = f.post(t, "/api/scheme", "{}")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/scheme status = %d, want 405", resp.StatusCode)
	}
}

func TestUpdateTheme(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{})
	before := f.theme.Snapshot()

	resp, data := f.post(t, "/api/theme", `{"source":"#00ff00","variant":"vibrant","contrast":"high","dark":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	snap := f.theme.Snapshot()
	if snap.Variant != material.VariantVibrant || snap.Contrast != material.ContrastHigh || !snap.Dark {
		t.Errorf("inputs not applied: variant=%s contrast=%s dark=%v", snap.Variant, snap.Contrast, snap.Dark)
	}
	if snap.SourceARGB != 0xff00ff00 {
		t.Errorf("SourceARGB = %s, want ff00ff00", snap.SourceARGB)
	}
	if snap.Generation <= before.Generation {
		t.Errorf("generation did not advance: %d -> %d", before.Generation, snap.Generation)
	}
	if f.inputs.Source.Get() != "#00ff00" {
		t.Errorf("source signal = %q", f.inputs.Source.Get())
	}
}

func TestUpdateThemeRejects(t *testing.T) {
	tests := []struct {
		name   string
		inputs func() Inputs
		opts   Options
		body   string
		status int
	}{
		{"invalid json", fullInputs, Options{}, `{`, http.StatusBadRequest},
		{"unknown field", fullInputs, Options{}, `{"colour":"#fff"}`, http.StatusBadRequest},
		{"invalid source", fullInputs, Options{}, `{"source":"not a colour"}`, http.StatusBadRequest},
		{"invalid variant", fullInputs, Options{}, `{"variant":"sparkly"}`, http.StatusBadRequest},
		{"invalid contrast", fullInputs, Options{}, `{"contrast":"max"}`, http.StatusBadRequest},
		{"private url", fullInputs, Options{}, `{"source":"http://127.0.0.1/a.png"}`, http.StatusBadRequest},
		{"fixed input", func() Inputs { return Inputs{Source: signal.New("#ffffff")} }, Options{}, `{"variant":"content"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.inputs(), tt.opts)
			before := f.theme.Snapshot()

			resp, data := f.post(t, "/api/theme", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, data)
			}
			if !strings.Contains(string(data), `"error"`) {
				t.Errorf("body has no error: %s", data)
			}
			if after := f.theme.Snapshot(); after.Generation != before.Generation {
				t.Error("rejected update changed the theme")
			}
		})
	}
}

func TestUpdateImageSourceWait(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{AllowPrivate: true})

	resp, data := f.post(t, "/api/theme?wait=true", `{"source":"http://127.0.0.1:1/wallpaper.png"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var snap theme.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State != theme.StateDone || len(snap.Dominants) == 0 {
		t.Errorf("state = %s, dominants = %v", snap.State, snap.Dominants)
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func readSnapshot(t *testing.T, conn *websocket.Conn) theme.Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.Type != "scheme" || msg.Snapshot == nil {
		t.Fatalf("unexpected message %+v", msg)
	}
	return *msg.Snapshot
}

func TestWebSocketBroadcast(t *testing.T) {
	f := newFixture(t, fullInputs(), Options{})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(f.srv), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	initial := readSnapshot(t, conn)
	if initial.Variant != material.VariantTonalSpot {
		t.Errorf("initial variant = %s", initial.Variant)
	}

	if resp, data := f.post(t, "/api/theme", `{"variant":"expressive"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d: %s", resp.StatusCode, data)
	}

	next := readSnapshot(t, conn)
	if next.Variant != material.VariantExpressive {
		t.Errorf("broadcast variant = %s, want expressive", next.Variant)
	}
	if next.Generation <= initial.Generation {
		t.Errorf("broadcast generation %d not after %d", next.Generation, initial.Generation)
	}
}

func TestWebSocketOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		wantOK  bool
	}{
		{"no origin", nil, "", true},
		{"foreign origin", nil, "http://evil.example", false},
		{"allowed origin", []string{"http://app.example"}, "http://app.example", true},
		{"wildcard", []string{"*"}, "http://anything.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fullInputs(), Options{AllowOrigins: tt.allowed})
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL(f.srv), header)
			if conn != nil {
				conn.Close()
			}
			if tt.wantOK && err != nil {
				t.Errorf("Dial() error = %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Error("Dial() expected origin rejection")
				} else if resp != nil && resp.StatusCode != http.StatusForbidden {
					t.Errorf("status = %d, want 403", resp.StatusCode)
				}
			}
		})
	}
}

func TestOriginCheckerSameHost(t *testing.T) {
	check := originChecker(nil)
	r := httptest.NewRequest(http.MethodGet, "http://localhost:7070/ws", nil)
	r.Header.Set("Origin", "http://localhost:7070")
	if !check(r) {
		t.Error("same-origin request rejected")
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), hclog.NewNullLogger())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}
