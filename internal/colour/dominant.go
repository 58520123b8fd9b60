package colour

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DominantOptions configures DominantColours.
type DominantOptions struct {
	// MaxDimension bounds the longest image side before quantisation. Defaults to 128.
	MaxDimension int

	// Clusters is the quantiser's colour budget. Defaults to 64.
	Clusters int

	// Seed makes quantisation deterministic.
	Seed *int64
}

// DefaultDominantOptions returns the defaults used when sampling theme sources.
func DefaultDominantOptions() DominantOptions {
	return DominantOptions{MaxDimension: 128, Clusters: 64}
}

func (o DominantOptions) withDefaults() DominantOptions {
	d := DefaultDominantOptions()
	if o.MaxDimension <= 0 {
		o.MaxDimension = d.MaxDimension
	}
	if o.Clusters <= 0 {
		o.Clusters = d.Clusters
	}
	return o
}

// DefaultDominantCount is the number of colours a theme keeps from an image.
const DefaultDominantCount = 3

// DominantColours samples an image and returns up to n colours ranked by
// Score. The first entry is the suggested theme source colour.
func DominantColours(img image.Image, n int, opts DominantOptions) ([]ARGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if n <= 0 {
		n = DefaultDominantCount
	}
	opts = opts.withDefaults()

	small := Downscale(img, opts.MaxDimension)

	extractor := NewKMeansExtractor(ExtractorOptions{Seed: opts.Seed})
	palette, err := extractor.Extract(small, opts.Clusters)
	if err != nil {
		return nil, fmt.Errorf("failed to quantise image: %w", err)
	}

	scoreOpts := DefaultScoreOptions()
	scoreOpts.Desired = n
	return Score(palette.Population(), scoreOpts), nil
}

// Downscale returns img resized so its longest side is at most maxDim.
// Images already within bounds are returned unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	nw, nh := maxDim, maxDim
	if w >= h {
		nh = max(h*maxDim/w, 1)
	} else {
		nw = max(w*maxDim/h, 1)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
