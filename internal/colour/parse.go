package colour

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidSource is returned for input that is neither a colour nor an image.
	ErrInvalidSource = errors.New("invalid colour source")

	// ErrNotAColour is returned by ParseColour for image sources.
	ErrNotAColour = errors.New("source is an image, not a colour")
)

// SourceKind classifies a source string.
type SourceKind int

const (
	// SourceInvalid is anything unrecognised.
	SourceInvalid SourceKind = iota
	// SourceHex is "#rgb", "#rrggbb" or "#aarrggbb".
	SourceHex
	// SourceRGBA is "rgb(...)" or "rgba(...)".
	SourceRGBA
	// SourceARGB is a packed integer, decimal or 0x-prefixed.
	SourceARGB
	// SourceURL is an http(s) image URL.
	SourceURL
	// SourceFile is an existing local image file.
	SourceFile
)

// String returns the kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceHex:
		return "hex"
	case SourceRGBA:
		return "rgba"
	case SourceARGB:
		return "argb"
	case SourceURL:
		return "url"
	case SourceFile:
		return "file"
	default:
		return "invalid"
	}
}

// IsImage reports whether the source has to be loaded as an image.
func (k SourceKind) IsImage() bool {
	return k == SourceURL || k == SourceFile
}

var (
	urlRegex  = regexp.MustCompile(`^(http|https)://([\w_-]+(?:(?:\.[\w_-]+)+)|localhost|\[[0-9a-fA-F:]+\])(:\d+)?([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?$`)
	rgbaRegex = regexp.MustCompile(`(?i)^rgba?\s*\(\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)\s*(?:[,/]\s*([0-9.]+%?)\s*)?\)$`)
	hexRegex  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	argbRegex = regexp.MustCompile(`^(0[xX][0-9a-fA-F]{1,8}|[0-9]{1,10})$`)
)

// ClassifySource decides how a source string should be resolved.
func ClassifySource(s string) SourceKind {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return SourceInvalid
	case urlRegex.MatchString(s):
		return SourceURL
	case strings.HasPrefix(strings.ToLower(s), "rgb"):
		return SourceRGBA
	case strings.HasPrefix(s, "#"):
		return SourceHex
	case argbRegex.MatchString(s):
		return SourceARGB
	}
	if info, err := os.Stat(s); err == nil && !info.IsDir() {
		return SourceFile
	}
	return SourceInvalid
}

// ParseColour resolves a colour source (hex, rgba or packed ARGB) to ARGB.
func ParseColour(s string) (ARGB, error) {
	s = strings.TrimSpace(s)
	switch kind := ClassifySource(s); kind {
	case SourceHex:
		return ParseHex(s)
	case SourceRGBA:
		return ParseRGBA(s)
	case SourceARGB:
		return parseARGB(s)
	case SourceURL, SourceFile:
		return 0, fmt.Errorf("%w: %s", ErrNotAColour, s)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSource, s)
	}
}

// ParseHex parses "#rgb", "#rrggbb" or "#aarrggbb". The alpha byte of the
// eight digit form is discarded; the result is always opaque.
func ParseHex(s string) (ARGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("%w: hex colour must start with '#': %q", ErrInvalidSource, s)
	}
	if !hexRegex.MatchString(s) {
		return 0, fmt.Errorf("%w: hex colour must have 3, 6 or 8 hex digits: %q", ErrInvalidSource, s)
	}

	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSource, s, err)
		}
		r, g, b := c.RGB255()
		return FromRGB(r, g, b), nil
	case 9:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSource, s, err)
		}
		return ARGB(0xff000000 | uint32(v)&0x00ffffff), nil
	default:
		return 0, fmt.Errorf("%w: hex colour must have 3, 6 or 8 hex digits: %q", ErrInvalidSource, s)
	}
}

// ParseRGBA parses CSS rgb()/rgba() notation, comma or space separated,
// with optional percentage channels. Alpha is accepted and ignored.
func ParseRGBA(s string) (ARGB, error) {
	m := rgbaRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: malformed rgb/rgba colour: %q", ErrInvalidSource, s)
	}

	var channels [3]uint8
	for i := range channels {
		v, err := parseChannel(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSource, s, err)
		}
		channels[i] = v
	}

	return FromRGB(channels[0], channels[1], channels[2]), nil
}

func parseChannel(s string) (uint8, error) {
	percent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	if percent {
		v = v * 255 / 100
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v)))), nil
}

func parseARGB(s string) (ARGB, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSource, s, err)
	}
	// Packed integers without an alpha byte are treated as opaque.
	if v <= 0xffffff {
		v |= 0xff000000
	}
	return ARGB(v), nil
}
