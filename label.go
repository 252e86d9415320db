package neonpack

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

var (
	labelBackground = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	labelForeground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Used to centre text when no font face is configured.
const (
	estimatedGlyphWidth = 6
	estimatedTextHeight = 11
)

type labeler struct {
	face font.Face
}

func newLabeler() *labeler {
	return &labeler{face: inconsolata.Regular8x16}
}

// measure returns the size of s in pixels, falling back to a fixed width
// estimate without a face.
func (l *labeler) measure(s string) (int, int) {
	if l.face == nil {
		return len(s) * estimatedGlyphWidth, estimatedTextHeight
	}
	m := l.face.Metrics()
	return font.MeasureString(l.face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// render returns a flat rectangle of the given size with s centred on it.
// A labeler without a face draws with basicfont.
func (l *labeler) render(s string, width, height int) *image.NRGBA {
	m := imaging.New(width, height, labelBackground)

	tw, th := l.measure(s)
	x := (width - tw) / 2
	y := (height - th) / 2

	// Without a face the text is placed by the estimate
	face := l.face
	if face == nil {
		face = basicfont.Face7x13
	}

	d := &font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(labelForeground),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	return m
}
