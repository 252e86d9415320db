package neonpack

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i+0] = c.R
		m.Pix[i+1] = c.G
		m.Pix[i+2] = c.B
		m.Pix[i+3] = c.A
	}
	return m
}

// checker returns a w×h texture alternating between two colors.
func checker(w, h int, a, b color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				m.SetNRGBA(x, y, a)
			} else {
				m.SetNRGBA(x, y, b)
			}
		}
	}
	return m
}

func writePNG(t *testing.T, dir, name string, m image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	return m
}

var (
	opaqueRed = color.NRGBA{R: 255, A: 255}
	stoneGray = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
)
