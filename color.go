package neonpack

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color in #rrggbb form.
func (c Color) Hex() string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

func (c Color) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// NamedColor pairs a Color with the name used to select it.
type NamedColor struct {
	Name string
	Color
}

// DefaultColor is used when no color is requested.
const DefaultColor = "cyan"

var neonColors = []NamedColor{
	{"red", Color{255, 0, 0}},
	{"orange", Color{255, 165, 0}},
	{"yellow", Color{255, 255, 0}},
	{"lime", Color{50, 255, 50}},
	{"green", Color{0, 255, 0}},
	{"cyan", Color{0, 255, 255}},
	{"blue", Color{0, 100, 255}},
	{"purple", Color{128, 0, 255}},
	{"magenta", Color{255, 0, 255}},
	{"pink", Color{255, 20, 147}},
}

// Colors returns a copy of the neon color table in its declared order.
func Colors() []NamedColor {
	return append([]NamedColor(nil), neonColors...)
}

// ColorNames returns the names of the neon colors in their declared order.
func ColorNames() []string {
	names := make([]string, len(neonColors))
	for i, c := range neonColors {
		names[i] = c.Name
	}
	return names
}

// LookupColor returns the neon color with the given name, ignoring case.
func LookupColor(name string) (NamedColor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range neonColors {
		if c.Name == name {
			return c, nil
		}
	}
	return NamedColor{}, invalidf("unknown color %q, available colors: %s", name, strings.Join(ColorNames(), ", "))
}

// ParseColor accepts a neon color name, a #rrggbb hex value or an R,G,B
// decimal triple. Colors that are not in the table are named after their
// hex value without the leading '#'.
func ParseColor(s string) (NamedColor, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		col, err := colorful.Hex(s)
		if err != nil {
			return NamedColor{}, invalidf("bad hex color %q", s)
		}
		r, g, b := col.RGB255()
		return named(Color{r, g, b}), nil
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return NamedColor{}, invalidf("color must be in format R,G,B, got %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return NamedColor{}, invalidf("color must be in format R,G,B, got %q", s)
			}
			rgb[i] = uint8(v)
		}
		return named(Color{rgb[0], rgb[1], rgb[2]}), nil
	default:
		return LookupColor(s)
	}
}

func named(c Color) NamedColor {
	for _, n := range neonColors {
		if n.Color == c {
			return n
		}
	}
	return NamedColor{Name: strings.TrimPrefix(c.Hex(), "#"), Color: c}
}

// ListColors formats the neon color table, one color per line.
func ListColors() string {
	lines := make([]string, len(neonColors))
	for i, c := range neonColors {
		lines[i] = fmt.Sprintf("  %-8s - %s %s", c.Name, c.Color, c.Hex())
	}
	return strings.Join(lines, "\n")
}
