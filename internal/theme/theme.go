// Package theme turns a source colour or image into a live Material scheme.
// A Theme watches its inputs and rebuilds the scheme whenever one changes.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/m3theme/internal/appearance"
	"github.com/jmylchreest/m3theme/internal/colour"
	imgpkg "github.com/jmylchreest/m3theme/internal/image"
	"github.com/jmylchreest/m3theme/internal/material"
	"github.com/jmylchreest/m3theme/internal/signal"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

// ErrClosed is returned by Wait after Close.
var ErrClosed = errors.New("theme closed")

// State is the lifecycle state of a Theme.
type State string

const (
	StateIdle    State = ""
	StateLoading State = "loading"
	StateDone    State = "done"
	StateError   State = "error"
)

// Snapshot is a consistent view of a Theme at one point in time.
type Snapshot struct {
	Scheme     Scheme                 `json:"scheme" yaml:"scheme"`
	State      State                  `json:"state" yaml:"state"`
	Err        error                  `json:"-" yaml:"-"`
	Error      string                 `json:"error,omitempty" yaml:"error,omitempty"`
	Source     string                 `json:"source" yaml:"source"`
	SourceARGB colour.ARGB            `json:"sourceArgb" yaml:"sourceArgb"`
	Dominants  []colour.ARGB          `json:"dominants,omitempty" yaml:"dominants,omitempty"`
	Variant    material.Variant       `json:"variant" yaml:"variant"`
	Contrast   material.ContrastLevel `json:"contrast" yaml:"contrast"`
	Dark       bool                   `json:"dark" yaml:"dark"`
	Generation uint64                 `json:"generation" yaml:"generation"`
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// Theme derives a Material scheme from a reactive source.
type Theme struct {
	logger      hclog.Logger
	loader      ImageLoader
	extract     colour.DominantOptions
	prefersDark func() bool

	source signal.Accessor[string]
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	mu         sync.Mutex
	snap       Snapshot
	sourceErr  error
	loadGen    uint64
	cancelLoad context.CancelFunc
	changed    chan struct{}
	systemDark bool
	closed     bool
	unwatch    []func()

	notifyMu     sync.Mutex
	subs         []subscriber
	nextSub      uint64
	lastNotified uint64
}

// New creates a Theme and derives its first scheme synchronously. Image
// sources are loaded in the background; use Wait to block until they settle.
// Cancelling ctx stops in-flight loads.
func New(ctx context.Context, source signal.Accessor[string], opts Options, options ...Option) *Theme {
	t := &Theme{
		logger:      hclog.NewNullLogger(),
		extract:     colour.DefaultDominantOptions(),
		prefersDark: appearance.PrefersDark,
		source:      source,
		opts:        opts,
		changed:     make(chan struct{}),
	}
	for _, o := range options {
		o(t)
	}
	if t.loader == nil {
		t.loader = NewImageLoader(imgpkg.SmartLoaderOptions{Logger: t.logger.Named("image")})
	}
	if t.source == nil {
		t.source = signal.Of("")
	}
	if t.opts.Dark == nil {
		t.systemDark = t.prefersDark()
	}
	t.ctx, t.cancel = context.WithCancel(ctx)

	t.mu.Lock()
	t.applySourceLocked(t.source.Get())
	snap := t.rebuildLocked()
	t.mu.Unlock()
	t.notify(snap)

	t.unwatch = append(t.unwatch, signal.Watch(t.source, func(string) { t.onSourceChange() }))
	if t.opts.Variant != nil {
		t.unwatch = append(t.unwatch, signal.Watch(t.opts.Variant, func(material.Variant) { t.rebuild() }))
	}
	if t.opts.ContrastLevel != nil {
		t.unwatch = append(t.unwatch, signal.Watch(t.opts.ContrastLevel, func(material.ContrastLevel) { t.rebuild() }))
	}
	if t.opts.Dark != nil {
		t.unwatch = append(t.unwatch, signal.Watch(t.opts.Dark, func(bool) { t.rebuild() }))
	}
	if t.opts.CrossOrigin != nil {
		t.unwatch = append(t.unwatch, signal.Watch(t.opts.CrossOrigin, func(httputil.CrossOrigin) { t.onCrossOriginChange() }))
	}

	return t
}

// Scheme returns the current flattened scheme.
func (t *Theme) Scheme() Scheme {
	return t.Snapshot().Scheme
}

// State returns the current state.
func (t *Theme) State() State {
	return t.Snapshot().State
}

// Err returns the error behind StateError, if any.
func (t *Theme) Err() error {
	return t.Snapshot().Err
}

// Snapshot returns a copy of the current theme state.
func (t *Theme) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Subscribe registers fn to receive every published snapshot. fn runs on
// the goroutine that caused the change and must not block for long or
// change the theme's inputs synchronously.
func (t *Theme) Subscribe(fn func(Snapshot)) func() {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	id := t.nextSub
	t.nextSub++
	t.subs = append(t.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.notifyMu.Lock()
			defer t.notifyMu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Wait blocks until the theme is not loading and returns the snapshot.
func (t *Theme) Wait(ctx context.Context) (Snapshot, error) {
	for {
		t.mu.Lock()
		snap, changed, closed := t.snap, t.changed, t.closed
		t.mu.Unlock()

		if snap.State != StateLoading {
			return snap, nil
		}
		if closed {
			return snap, ErrClosed
		}

		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-changed:
		}
	}
}

// Close stops watching inputs, cancels in-flight loads and waits for them.
func (t *Theme) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	unwatch := t.unwatch
	t.unwatch = nil
	close(t.changed)
	t.changed = make(chan struct{})
	t.mu.Unlock()

	for _, stop := range unwatch {
		stop()
	}
	t.cancel()
	t.loads.Wait()
}

// Reload resolves the current source again. Image sources are re-read, so
// an edited wallpaper file yields a new scheme.
func (t *Theme) Reload() {
	t.onSourceChange()
}

// onCrossOriginChange reloads image sources with the new credential policy.
func (t *Theme) onCrossOriginChange() {
	if colour.ClassifySource(t.source.Get()).IsImage() {
		t.onSourceChange()
	}
}

func (t *Theme) onSourceChange() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	var snap Snapshot
	if t.applySourceLocked(t.source.Get()) {
		snap = t.rebuildLocked()
	} else {
		snap = t.publishLocked()
	}
	t.mu.Unlock()
	t.notify(snap)
}

// applySourceLocked resolves a new source. It reports whether the scheme
// must be rebuilt now; image sources rebuild when their load finishes.
func (t *Theme) applySourceLocked(src string) bool {
	t.snap.Source = src
	t.loadGen++
	if t.cancelLoad != nil {
		t.cancelLoad()
		t.cancelLoad = nil
	}

	kind := colour.ClassifySource(src)
	if kind.IsImage() {
		t.logger.Debug("loading image source", "source", src, "kind", kind)
		t.sourceErr = nil
		t.snap.State = StateLoading
		t.snap.Err = nil
		t.snap.Error = ""
		t.startLoadLocked(src, t.loadGen)
		return false
	}

	argb, err := colour.ParseColour(src)
	if err != nil {
		t.logger.Warn("invalid theme source", "source", src, "error", err)
		t.sourceErr = err
		t.snap.State = StateError
		t.snap.Err = err
		t.snap.Error = err.Error()
		return false
	}

	t.logger.Debug("colour source", "source", src, "argb", argb)
	t.sourceErr = nil
	t.snap.State = StateIdle
	t.snap.Err = nil
	t.snap.Error = ""
	t.snap.SourceARGB = argb
	t.snap.Dominants = nil
	return true
}

func (t *Theme) startLoadLocked(src string, gen uint64) {
	ctx, cancel := context.WithCancel(t.ctx)
	t.cancelLoad = cancel
	crossOrigin := signal.Get(t.opts.CrossOrigin, httputil.CrossOriginAnonymous)
	extract := t.extract

	t.loads.Add(1)
	go func() {
		defer t.loads.Done()
		defer cancel()

		dominants, err := t.loadDominants(ctx, src, crossOrigin, extract)

		t.mu.Lock()
		if gen != t.loadGen || t.closed {
			t.mu.Unlock()
			t.logger.Trace("discarding superseded image load", "source", src)
			return
		}
		t.cancelLoad = nil
		t.snap.State = StateIdle
		if err != nil {
			t.logger.Error("failed to load image source", "source", src, "error", err)
			t.sourceErr = err
			t.snap.SourceARGB = 0
			t.snap.Dominants = nil
		} else {
			t.logger.Debug("image source resolved", "source", src, "dominants", len(dominants))
			t.snap.SourceARGB = dominants[0]
			t.snap.Dominants = dominants
		}
		snap := t.rebuildLocked()
		t.mu.Unlock()
		t.notify(snap)
	}()
}

func (t *Theme) loadDominants(ctx context.Context, src string, crossOrigin httputil.CrossOrigin, opts colour.DominantOptions) ([]colour.ARGB, error) {
	img, err := t.loader.Load(ctx, src, crossOrigin)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	dominants, err := colour.DominantColours(img, colour.DefaultDominantCount, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	return dominants, nil
}

func (t *Theme) rebuild() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	snap := t.rebuildLocked()
	t.mu.Unlock()
	t.notify(snap)
}

// rebuildLocked builds the scheme from the current inputs and publishes it.
// A failed build keeps the previous scheme and moves to StateError.
func (t *Theme) rebuildLocked() Snapshot {
	variant := signal.Get(t.opts.Variant, material.DefaultVariant)
	contrast := signal.Get(t.opts.ContrastLevel, material.ContrastDefault)
	dark := signal.Get(t.opts.Dark, t.systemDark)

	ds, err := material.BuildDynamicScheme(t.snap.SourceARGB, variant, dark, contrast.Value(), t.snap.Dominants)
	if err != nil {
		t.logger.Warn("failed to build scheme", "variant", variant, "error", err)
		t.snap.State = StateError
		t.snap.Err = err
		t.snap.Error = err.Error()
		return t.publishLocked()
	}

	t.snap.Scheme = Flatten(ds)
	t.snap.Variant = ds.Variant
	t.snap.Contrast = contrast
	t.snap.Dark = dark

	switch {
	case t.snap.State == StateLoading:
	case t.sourceErr != nil:
		t.snap.State = StateError
		t.snap.Err = t.sourceErr
		t.snap.Error = t.sourceErr.Error()
	default:
		t.snap.State = StateDone
		t.snap.Err = nil
		t.snap.Error = ""
	}
	t.logger.Debug("scheme rebuilt", "variant", ds.Variant, "dark", dark, "contrast", contrast, "state", t.snap.State)
	return t.publishLocked()
}

// publishLocked bumps the generation, wakes waiters and returns a copy to
// deliver to subscribers.
func (t *Theme) publishLocked() Snapshot {
	t.snap.Generation++
	close(t.changed)
	t.changed = make(chan struct{})
	snap := t.snap
	snap.Dominants = append([]colour.ARGB(nil), t.snap.Dominants...)
	return snap
}

// notify delivers snap unless a newer snapshot has already been delivered.
func (t *Theme) notify(snap Snapshot) {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()
	if snap.Generation <= t.lastNotified {
		return
	}
	t.lastNotified = snap.Generation
	for _, s := range t.subs {
		s.fn(snap)
	}
}
