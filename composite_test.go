package neonpack

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cyan = Color{0, 255, 255}

func TestCompositeRejectsOpacity(t *testing.T) {
	src := solid(4, 4, opaqueRed)
	for _, opacity := range []float64{-0.1, -1, 1.0001, 2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, mode := range BlendModes() {
			m, err := Composite(src, cyan, opacity, mode)
			assert.ErrorIs(t, err, ErrInvalidParameter, "opacity %v mode %s", opacity, mode)
			assert.Nil(t, m)
		}
	}
}

func TestCompositeRejectsBlendMode(t *testing.T) {
	src := solid(4, 4, opaqueRed)
	for _, mode := range []BlendMode{0, -1, Normal + 1, 99} {
		m, err := Composite(src, cyan, 0.5, mode)
		assert.ErrorIs(t, err, ErrInvalidParameter)
		assert.Nil(t, m)
	}
}

func TestCompositeRejectsEmptyImage(t *testing.T) {
	_, err := Composite(image.NewNRGBA(image.Rectangle{}), cyan, 0.5, Screen)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Composite(nil, cyan, 0.5, Screen)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCompositeKeepsDimensions(t *testing.T) {
	// Non-zero origin and a mixture of alpha values
	src := image.NewNRGBA(image.Rect(3, 5, 10, 9))
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: 40, A: uint8(x * y * 3)})
		}
	}

	for _, c := range Colors() {
		for _, opacity := range []float64{0, 0.1, 0.5, 0.6, 1} {
			for _, mode := range BlendModes() {
				m, err := Composite(src, c.Color, opacity, mode)
				require.NoError(t, err)
				assert.Equal(t, src.Bounds().Size(), m.Bounds().Size(), "%s %v %s", c.Name, opacity, mode)
			}
		}
	}
}

func TestCompositeIsDeterministic(t *testing.T) {
	src := checker(16, 16, opaqueRed, color.NRGBA{G: 200, B: 50, A: 128})
	for _, mode := range BlendModes() {
		a, err := Composite(src, Color{255, 0, 255}, 0.4, mode)
		require.NoError(t, err)
		b, err := Composite(src, Color{255, 0, 255}, 0.4, mode)
		require.NoError(t, err)
		assert.Equal(t, a.Pix, b.Pix, mode.String())
	}
}

func TestCompositeDoesNotMutateSource(t *testing.T) {
	src := checker(8, 8, opaqueRed, stoneGray)
	before := append([]uint8(nil), src.Pix...)
	for _, mode := range BlendModes() {
		_, err := Composite(src, cyan, 0.7, mode)
		require.NoError(t, err)
	}
	assert.Equal(t, before, src.Pix)
}

func TestCompositePixels(t *testing.T) {
	// A fully opaque red texture desaturates to gray 76
	tables := []struct {
		name    string
		opacity float64
		mode    BlendMode
		want    color.NRGBA
	}{
		{"screen", 0.3, Screen, color.NRGBA{R: 79, G: 193, B: 193, A: 201}},
		{"multiply", 0.5, Multiply, color.NRGBA{R: 85, G: 180, B: 180, A: 223}},
		{"overlay", 0.5, Overlay, color.NRGBA{R: 57, G: 247, B: 247, A: 255}},
		{"normal", 0.5, Normal, color.NRGBA{R: 57, G: 247, B: 247, A: 255}},
		{"transparent overlay", 0, Normal, color.NRGBA{R: 114, G: 114, B: 114, A: 255}},
		{"screen at zero", 0, Screen, color.NRGBA{R: 114, G: 114, B: 114, A: 255}},
	}

	src := solid(16, 16, opaqueRed)
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, err := Composite(src, cyan, table.opacity, table.mode)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 16, 16), m.Bounds())
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					if got := m.NRGBAAt(x, y); got != table.want {
						t.Fatalf("differing pixel at (%d,%d). want: %#v, got: %#v", x, y, table.want, got)
					}
				}
			}
		})
	}
}

func TestCompositeTransparentPixels(t *testing.T) {
	src := solid(2, 2, color.NRGBA{})
	for _, mode := range []BlendMode{Overlay, Normal} {
		m, err := Composite(src, cyan, 0, mode)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{}, m.NRGBAAt(0, 0))
	}
}

func TestCompositeModesDiffer(t *testing.T) {
	src := solid(4, 4, stoneGray)
	screen, err := Composite(src, cyan, 0.5, Screen)
	require.NoError(t, err)
	multiply, err := Composite(src, cyan, 0.5, Multiply)
	require.NoError(t, err)
	normal, err := Composite(src, cyan, 0.5, Normal)
	require.NoError(t, err)
	overlay, err := Composite(src, cyan, 0.5, Overlay)
	require.NoError(t, err)

	assert.NotEqual(t, screen.Pix, multiply.Pix)
	assert.NotEqual(t, screen.Pix, normal.Pix)
	// Overlay and normal share the same alpha compositing
	assert.Equal(t, normal.Pix, overlay.Pix)
}

func TestClampTrunc(t *testing.T) {
	tables := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{0.99, 0},
		{79.5, 79},
		{254.999, 254},
		{255, 255},
		{382.5, 255},
		{math.NaN(), 0},
	}
	for _, table := range tables {
		assert.Equal(t, table.want, clampTrunc(table.in), "%v", table.in)
	}
}
