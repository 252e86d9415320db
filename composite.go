package neonpack

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// GlowFactor is the brightness gain applied to every composited
	// texture.
	GlowFactor = 1.5

	multiplyFactor = 0.5
)

// Composite desaturates src, combines it with a solid overlay of color c
// using the given opacity and blend mode, and brightens the result. The
// returned image has the same dimensions as src, which is left untouched.
//
// Opacity must be within [0, 1]; values outside that range are rejected,
// not clamped.
func Composite(src image.Image, c Color, opacity float64, mode BlendMode) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, invalidf("empty source image")
	}
	if !(opacity >= 0 && opacity <= 1) {
		return nil, invalidf("opacity must be between 0.0 and 1.0, got %v", opacity)
	}
	if !mode.Valid() {
		return nil, invalidf("unknown blend mode %d", int(mode))
	}

	gray := imaging.Grayscale(src)
	overlay := newOverlay(gray.Bounds().Dx(), gray.Bounds().Dy(), c, opacity)

	var m *image.NRGBA
	switch mode {
	case Screen:
		m = blend(gray, overlay, opacity)
	case Multiply:
		m = blend(gray, overlay, opacity*multiplyFactor)
	case Overlay, Normal:
		m = alphaComposite(gray, overlay)
	}

	return glow(m, GlowFactor), nil
}

// newOverlay returns a solid image of color c whose alpha encodes opacity.
func newOverlay(width, height int, c Color, opacity float64) *image.NRGBA {
	return imaging.New(width, height, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * opacity)})
}

// blend linearly interpolates every channel of a towards b by factor f. Both
// images must share the same bounds.
func blend(a, b *image.NRGBA, f float64) *image.NRGBA {
	dst := image.NewNRGBA(a.Rect)
	for i := range dst.Pix {
		dst.Pix[i] = clampTrunc(float64(a.Pix[i]) + f*(float64(b.Pix[i])-float64(a.Pix[i])))
	}
	return dst
}

// alphaComposite draws overlay over bg, driven by the overlay's own alpha.
func alphaComposite(bg, overlay *image.NRGBA) *image.NRGBA {
	// A fully transparent overlay leaves bg unchanged; imaging.Overlay
	// would otherwise divide by zero on transparent background pixels.
	if overlay.Pix[3] != 0 {
		return imaging.Overlay(bg, overlay, image.Point{}, 1.0)
	}
	return imaging.Clone(bg)
}

// glow scales the RGB channels by factor, leaving alpha alone.
func glow(m *image.NRGBA, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(m, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampTrunc(float64(c.R) * factor),
			G: clampTrunc(float64(c.G) * factor),
			B: clampTrunc(float64(c.B) * factor),
			A: c.A,
		}
	})
}

func clampTrunc(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
