// Package iching implements the IChing two-dimensional barcode: a GF(2^6)
// Reed-Solomon-protected payload rendered as concentric finder/alignment
// rings and six-bit bar-glyph symbols, and the corresponding decode
// pipeline (binarize -> locate -> rectify -> extract -> content). The
// overall shape — one small façade package delegating to focused internal
// stages — follows the teacher's (ashokshau/qrcode) split between its
// encoder, Reed-Solomon, and writer files, generalised from QR's
// module-table geometry to this format's closed-form sizing.
package iching

import (
	"github.com/ashokshau/iching/internal/binarize"
	"github.com/ashokshau/iching/internal/content"
	"github.com/ashokshau/iching/internal/domainerr"
	"github.com/ashokshau/iching/internal/extract"
	"github.com/ashokshau/iching/internal/locate"
	"github.com/ashokshau/iching/internal/render"
	"github.com/ashokshau/iching/internal/transform"
)

// DefaultResolution is the rendered image side in pixels when Resolution
// is left unset, per spec.md §6.
const DefaultResolution = 1250

// Options configure Encode and Decode. Zero value selects every default.
type Options struct {
	ECLevel    float64
	Resolution int
	RoundEdges bool
	Inverted   bool
}

// Option mutates Options; functional-option pattern, matching the
// teacher's single-struct config style rather than introducing a builder.
type Option func(*Options)

// WithECLevel sets the error-correction fraction in [0, 1].
func WithECLevel(ec float64) Option { return func(o *Options) { o.ECLevel = ec } }

// WithResolution sets the rendered image side in pixels.
func WithResolution(r int) Option { return func(o *Options) { o.Resolution = r } }

// WithRoundEdges sets Options.RoundEdges. Encode does not read it: the
// rendered image is the same with or without it.
func WithRoundEdges() Option { return func(o *Options) { o.RoundEdges = true } }

// WithInverted flips Encode's output polarity or Decode's input polarity;
// it never changes the logical bit matrix, per spec.md §9(b).
func WithInverted() Option { return func(o *Options) { o.Inverted = true } }

func resolveOptions(opts []Option) Options {
	o := Options{Resolution: DefaultResolution}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// ImageData is a raw RGBA raster, width*height*4 bytes, row-major.
type ImageData struct {
	Width, Height int
	Data          []byte
}

// Encoded is Encode's result: the logical codeword grid plus its
// rendered image.
type Encoded struct {
	Version   int
	Size      int
	Data      []int
	ImageData ImageData
}

// Decoded is Decode's result: the recovered payload plus the corner
// points and sizes the locator found, per spec.md §6.
type Decoded struct {
	Version  int
	Size     int
	Data     string
	Patterns locate.Patterns
}

// Encode maps payload through the alphabet, protects it with Reed-Solomon
// parity, and renders it to an RGBA image, per spec.md §4.5-§4.6 and §6.
func Encode(payload string, opts ...Option) (*Encoded, error) {
	o := resolveOptions(opts)

	code, err := content.Encode(payload, o.ECLevel)
	if err != nil {
		return nil, err
	}

	bits, err := render.Render(code.Size, code.Data, o.Resolution)
	if err != nil {
		return nil, err
	}
	rgba := render.ToRGBA(bits, o.Inverted)

	return &Encoded{
		Version: code.Version,
		Size:    code.Size,
		Data:    code.Data,
		ImageData: ImageData{
			Width:  bits.Width,
			Height: bits.Height,
			Data:   rgba,
		},
	}, nil
}

// Decode binarizes an RGBA image, locates the finder/alignment patterns,
// rectifies the perspective, extracts the symbol grid, and runs content
// decoding with Reed-Solomon correction, per spec.md §4.7-§4.11 and §6.
//
// Per spec.md §7, when the first attempt fails at any stage, Decode
// retries once with the image's colour polarity inverted and, if that
// also fails, returns the first attempt's error,
// since a caller-supplied inverted flag and the image's actual polarity
// can disagree in ways the caller didn't anticipate.
func Decode(img ImageData, opts ...Option) (*Decoded, error) {
	o := resolveOptions(opts)

	decoded, err := decodeOnce(img, o.Inverted)
	if err == nil {
		return decoded, nil
	}
	decoded2, err2 := decodeOnce(img, !o.Inverted)
	if err2 == nil {
		return decoded2, nil
	}
	return nil, err
}

func decodeOnce(img ImageData, inverted bool) (*Decoded, error) {
	rgba := img.Data
	if inverted {
		rgba = make([]byte, len(img.Data))
		copy(rgba, img.Data)
		for i := 0; i < len(rgba); i += 4 {
			rgba[i] = 255 - rgba[i]
			rgba[i+1] = 255 - rgba[i+1]
			rgba[i+2] = 255 - rgba[i+2]
		}
	}

	bits, ok := binarize.Binarize(rgba, img.Width, img.Height)
	if !ok {
		return nil, domainerr.ErrResolutionTooSmall
	}

	patterns, err := locate.Locate(bits)
	if err != nil {
		return nil, err
	}

	rectified := transform.Rectify(bits, patterns.TopLeft, patterns.TopRight, patterns.BottomLeft, patterns.BottomRight)

	result, err := extract.Extract(rectified)
	if err != nil {
		return nil, err
	}

	payload, err := content.Decode(result.Version, result.Size, result.Data)
	if err != nil {
		return nil, err
	}

	return &Decoded{
		Version: result.Version,
		Size:    result.Size,
		Data:    payload,
		Patterns: locate.Patterns{
			TopLeft:           patterns.TopLeft,
			TopRight:          patterns.TopRight,
			BottomLeft:        patterns.BottomLeft,
			BottomRight:       patterns.BottomRight,
			FinderAverageSize: patterns.FinderAverageSize,
			AlignmentSize:     patterns.AlignmentSize,
		},
	}, nil
}
