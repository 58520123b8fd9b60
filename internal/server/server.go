// Package server exposes a live theme over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/m3theme/internal/colour"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/output"
	"github.com/jmylchreest/m3theme/internal/security"
	"github.com/jmylchreest/m3theme/internal/signal"
	"github.com/jmylchreest/m3theme/internal/theme"
)

const maxRequestBody = 64 << 10

// Inputs are the signals a Theme was built from. POST /api/theme writes to
// them; nil signals make the matching field read-only.
type Inputs struct {
	Source   *signal.Signal[string]
	Variant  *signal.Signal[material.Variant]
	Contrast *signal.Signal[material.ContrastLevel]
	Dark     *signal.Signal[bool]
}

// Options configures a Server.
type Options struct {
	// AllowPrivate permits image sources on loopback or private hosts and
	// local image files.
	AllowPrivate bool

	// AllowOrigins lists extra origins allowed to open /ws.
	AllowOrigins []string

	Logger  hclog.Logger
	Formats *output.Registry
}

// Server serves a theme.
type Server struct {
	theme    *theme.Theme
	inputs   Inputs
	opts     Options
	logger   hclog.Logger
	formats  *output.Registry
	ws       *connManager
	upgrader websocket.Upgrader
	unsub    func()
}

// New creates a Server and starts broadcasting theme changes to WebSocket
// clients. Call Close to stop.
func New(t *theme.Theme, inputs Inputs, opts Options) *Server {
	s := &Server{
		theme:   t,
		inputs:  inputs,
		opts:    opts,
		logger:  opts.Logger,
		formats: opts.Formats,
		ws:      newConnManager(),
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	if s.formats == nil {
		s.formats = output.Default()
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(opts.AllowOrigins),
	}
	s.unsub = t.Subscribe(s.ws.broadcast)
	return s
}

// Register adds the server's routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/scheme", s.handleScheme)
	mux.HandleFunc("GET /api/scheme.css", s.handleSchemeCSS)
	mux.HandleFunc("GET /api/variants", s.handleVariants)
	mux.HandleFunc("POST /api/theme", s.handleUpdate)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns an http.Handler serving every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return s.logRequests(mux)
}

// Close stops broadcasting and disconnects WebSocket clients.
func (s *Server) Close() {
	s.unsub()
	s.ws.closeAll()
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger hclog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Trace("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.theme.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"state":      snap.State,
		"generation": snap.Generation,
		"clients":    s.ws.count(),
	})
}

// handleScheme serves the snapshot; ?format= selects another formatter.
func (s *Server) handleScheme(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	s.writeFormatted(w, format)
}

func (s *Server) handleSchemeCSS(w http.ResponseWriter, r *http.Request) {
	s.writeFormatted(w, "css")
}

func (s *Server) writeFormatted(w http.ResponseWriter, format string) {
	f, ok := s.formats.Get(format)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", output.ErrUnknownFormat, format))
		return
	}
	snap := s.theme.Snapshot()
	data, err := f.Format(&snap)
	if err != nil {
		s.logger.Error("failed to format scheme", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", f.MediaType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

type variantInfo struct {
	Name        material.Variant `json:"name"`
	Description string           `json:"description"`
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	variants := make([]variantInfo, 0, len(material.Variants()))
	for _, v := range material.Variants() {
		variants = append(variants, variantInfo{Name: v, Description: v.Description()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"variants":  variants,
		"contrasts": material.ContrastLevels(),
		"formats":   s.formats.List(),
	})
}

type updateRequest struct {
	Source   *string `json:"source"`
	Variant  *string `json:"variant"`
	Contrast *string `json:"contrast"`
	Dark     *bool   `json:"dark"`
}

// handleUpdate validates every field before applying any of them. With
// ?wait=true it responds once an image source has settled.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	var (
		variant  material.Variant
		contrast material.ContrastLevel
		err      error
	)
	if req.Source != nil {
		if err := s.checkSource(*req.Source); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Variant != nil {
		if variant, err = material.ParseVariant(*req.Variant); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Contrast != nil {
		if contrast, err = material.ParseContrastLevel(*req.Contrast); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	for field, ok := range map[string]bool{
		"source":   req.Source == nil || s.inputs.Source != nil,
		"variant":  req.Variant == nil || s.inputs.Variant != nil,
		"contrast": req.Contrast == nil || s.inputs.Contrast != nil,
		"dark":     req.Dark == nil || s.inputs.Dark != nil,
	} {
		if !ok {
			writeError(w, http.StatusConflict, fmt.Errorf("%s is fixed by the server configuration", field))
			return
		}
	}

	if req.Variant != nil {
		s.inputs.Variant.Set(variant)
	}
	if req.Contrast != nil {
		s.inputs.Contrast.Set(contrast)
	}
	if req.Dark != nil {
		s.inputs.Dark.Set(*req.Dark)
	}
	if req.Source != nil {
		s.inputs.Source.Set(*req.Source)
	}
	s.logger.Debug("theme updated", "source", req.Source != nil, "variant", variant, "contrast", contrast)

	snap := s.theme.Snapshot()
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		if snap, err = s.theme.Wait(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	status := http.StatusOK
	if snap.State == theme.StateLoading {
		status = http.StatusAccepted
	}
	writeJSON(w, status, snap)
}

// checkSource rejects sources a remote client should not be able to use.
func (s *Server) checkSource(src string) error {
	switch kind := colour.ClassifySource(src); kind {
	case colour.SourceURL:
		return security.ValidateImageURL(src, s.opts.AllowPrivate)
	case colour.SourceFile:
		if !s.opts.AllowPrivate {
			return fmt.Errorf("local image files are not allowed")
		}
		return nil
	default:
		_, err := colour.ParseColour(src)
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
