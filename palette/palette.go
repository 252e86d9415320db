/*
Package palette reduces composited textures to a small indexed palette and
writes them as paletted PNG files.

Index 0 of every palette is reserved for fully transparent pixels so that
texture cut-outs survive the reduction. The remaining entries are chosen with
a median cut quantizer.
*/
package palette

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MinColors is the smallest palette that can be requested.
	MinColors = 2
	// MaxColors is the largest palette a PNG can hold.
	MaxColors = 256
)

var errBadSize = errors.New("palette: number of colors must be between 2 and 256")

// Reduce returns a copy of m using at most n colors, including the reserved
// transparent entry.
func Reduce(m image.Image, n int) (*image.Paletted, error) {
	if n < MinColors || n > MaxColors {
		return nil, errBadSize
	}

	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	p := make(color.Palette, 1, n)
	p[0] = color.Transparent
	p = q.Quantize(p, m)
	if len(p) > n {
		p = p[:n]
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm, nil
}

// Encode writes m to w as a paletted PNG of at most n colors.
func Encode(w io.Writer, m image.Image, n int) error {
	pm, err := Reduce(m, n)
	if err != nil {
		return err
	}
	e := png.Encoder{CompressionLevel: png.BestCompression}
	return e.Encode(w, pm)
}
