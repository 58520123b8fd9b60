package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/m3theme/internal/colour"
	imgpkg "github.com/jmylchreest/m3theme/internal/image"
	httputil "github.com/jmylchreest/m3theme/internal/util/http"
)

type extractOptions struct {
	count       int
	format      string
	preview     bool
	raw         bool
	crossOrigin string
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	o := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract source colours from an image",
		Long: `Extract the colours of an image that make good scheme sources.

Colours are quantised, scored for chroma and coverage, and returned best
first. The first colour is the one 'generate' uses for the same image.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Top three source colours
  m3theme extract wallpaper.jpg

  # Five colours with terminal swatches
  m3theme extract --count 5 --preview wallpaper.png

  # Raw quantised palette with weights, as JSON
  m3theme extract --raw --count 16 --format json https://example.com/wall.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, g, args[0])
		},
	}

	cmd.Flags().IntVarP(&o.count, "count", "n", colour.DefaultDominantCount, "number of colours to extract (1-256)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "hex", "output format (hex, json)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour previews in terminal")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "print the quantised palette instead of scored source colours")
	cmd.Flags().StringVar(&o.crossOrigin, "cross-origin", "", "credential policy for image URLs (default from config)")
	return cmd
}

type extractResult struct {
	Source  string   `json:"source"`
	Colours []string `json:"colours"`
}

func (o *extractOptions) run(cmd *cobra.Command, g *globalOptions, src string) error {
	if o.count < 1 || o.count > 256 {
		return fmt.Errorf("count must be between 1 and 256, got %d", o.count)
	}
	if o.format != "hex" && o.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: hex, json)", o.format)
	}
	if !imgpkg.IsURL(src) {
		if err := imgpkg.ValidateImagePath(src); err != nil {
			return fmt.Errorf("invalid image path: %w", err)
		}
	}

	co := g.cfg.CrossOrigin
	if o.crossOrigin != "" {
		co = o.crossOrigin
	}
	policy, err := httputil.ParseCrossOrigin(co)
	if err != nil {
		return err
	}

	g.logger.Debug("loading image", "source", src)
	loader := imgpkg.NewSmartLoader(g.cfg.LoaderOptions(g.logger.Named("image"))).WithCrossOrigin(policy)
	img, err := loader.Load(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	g.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	out := cmd.OutOrStdout()
	colour.DisableColourOutput = !o.preview || !colour.SupportsANSIColours(os.Stdout)

	if o.raw {
		return o.writeRaw(cmd, g, img, src)
	}

	colours, err := colour.DominantColours(img, o.count, g.cfg.DominantOptions())
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	g.logger.Debug("extracted source colours", "count", len(colours))

	if o.format == "json" {
		res := extractResult{Source: src, Colours: make([]string, len(colours))}
		for i, c := range colours {
			res.Colours[i] = c.Hex()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	var b strings.Builder
	for _, c := range colours {
		if o.preview {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
		} else {
			b.WriteString(c.Hex())
		}
		b.WriteByte('\n')
	}
	_, err = fmt.Fprint(out, b.String())
	return err
}

func (o *extractOptions) writeRaw(cmd *cobra.Command, g *globalOptions, img image.Image, src string) error {
	extractor, err := colour.NewExtractor(colour.AlgorithmKMeans, colour.ExtractorOptions{Seed: g.cfg.Extract.Seed})
	if err != nil {
		return err
	}
	palette, err := extractor.Extract(colour.Downscale(img, g.cfg.Extract.MaxDimension), o.count)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	palette.SortByWeight()

	out := cmd.OutOrStdout()
	if o.format == "json" {
		data, err := palette.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	for i, c := range palette.Colors {
		argb := colour.FromColor(c)
		line := argb.Hex()
		if o.preview {
			line = colour.FormatColourWithPreview(argb, 8)
		}
		if i < len(palette.Weights) {
			line = fmt.Sprintf("%s  %5.1f%%", line, palette.Weights[i]*100)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
