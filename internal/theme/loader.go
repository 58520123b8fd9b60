package theme

import (
	"context"
	"image"

	imgpkg "github.com/jmylchreest/m3theme/internal/image"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

// ImageLoader loads an image source (URL or file path) for colour extraction.
type ImageLoader interface {
	Load(ctx context.Context, src string, crossOrigin httputil.CrossOrigin) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string, crossOrigin httputil.CrossOrigin) (image.Image, error)

// Load calls f.
func (f ImageLoaderFunc) Load(ctx context.Context, src string, crossOrigin httputil.CrossOrigin) (image.Image, error) {
	return f(ctx, src, crossOrigin)
}

type smartLoader struct {
	loader *imgpkg.SmartLoader
}

// NewImageLoader returns the default loader, backed by image.SmartLoader.
func NewImageLoader(opts imgpkg.SmartLoaderOptions) ImageLoader {
	return smartLoader{loader: imgpkg.NewSmartLoader(opts)}
}

func (l smartLoader) Load(ctx context.Context, src string, crossOrigin httputil.CrossOrigin) (image.Image, error) {
	return l.loader.WithCrossOrigin(crossOrigin).Load(ctx, src)
}
