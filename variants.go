package neonpack

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/neonpack/mcmeta"
)

// Result describes a written texture.
type Result struct {
	Texture string
	Output  string
	Sidecar string
	// Colors holds the row order of a color grid.
	Colors []NamedColor
	// Skipped is non-nil when some grid cells could not be rendered; the
	// output was still written.
	Skipped *GridError
}

func (g *Generator) load(name string) (*Texture, error) {
	path := TexturePath(g.input, name)
	g.logger.Printf("Loading texture: %s\n", path)
	return LoadTexture(path)
}

func (g *Generator) save(m image.Image, path string) (string, error) {
	return SaveTexture(m, path, g.colors)
}

func skipped(err error) (*GridError, error) {
	var gerr *GridError
	if errors.As(err, &gerr) {
		return gerr, nil
	}
	return nil, err
}

// Overlay composites the image at in with a single color overlay and writes
// it to out.
func (g *Generator) Overlay(in, out string, c Color, opacity float64, mode BlendMode) (*Result, error) {
	g.logger.Printf("Loading texture from: %s\n", in)
	tex, err := LoadTexture(in)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Applying neon overlay (color: %s, opacity: %v, mode: %s)\n", c, opacity, mode)
	m, err := Composite(tex.Image, c, opacity, mode)
	if err != nil {
		return nil, err
	}

	path, err := g.save(m, out)
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Saved result to: %s\n", path)

	return &Result{Texture: tex.Name, Output: path}, nil
}

// formatOpacity keeps at least one decimal place, so 1 is written as 1.0.
func formatOpacity(opacity float64) string {
	s := strconv.FormatFloat(opacity, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// BlendsFilename returns the output filename of one blend mode variant.
func BlendsFilename(texture, color string, opacity float64, mode BlendMode) string {
	return fmt.Sprintf("%s-%s-%s-%s%s", texture, color, formatOpacity(opacity), mode, textureExtension)
}

// Blends writes one variant of the named texture per blend mode. Variants
// that fail are reported in the returned error while the others are still
// written.
func (g *Generator) Blends(texture string, c NamedColor, opacity float64) ([]*Result, error) {
	if !(opacity >= 0 && opacity <= 1) {
		return nil, invalidf("opacity must be between 0.0 and 1.0, got %v", opacity)
	}

	tex, err := g.load(texture)
	if err != nil {
		return nil, err
	}

	var results []*Result
	var errs []error
	for _, mode := range BlendModes() {
		out := filepath.Join(g.output, BlendsFilename(tex.Name, c.Name, opacity, mode))
		g.logger.Printf("Creating %s blend: %s\n", mode, filepath.Base(out))

		m, err := Composite(tex.Image, c.Color, opacity, mode)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mode, err))
			continue
		}
		path, err := g.save(m, out)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mode, err))
			continue
		}
		results = append(results, &Result{Texture: tex.Name, Output: path})
	}

	return results, errors.Join(errs...)
}

// ColorGridFilename returns the default output filename of a color grid.
func ColorGridFilename(texture string) string {
	return texture + "-color-grid" + textureExtension
}

// ColorGrid writes a single column grid of the named texture with one row
// per neon color. An empty out selects ColorGridFilename within the output
// directory. If sidecar is set an animation sidecar is written alongside.
func (g *Generator) ColorGrid(texture, out string, sidecar bool) (*Result, error) {
	tex, err := g.load(texture)
	if err != nil {
		return nil, err
	}
	if out == "" {
		out = filepath.Join(g.output, ColorGridFilename(tex.Name))
	}
	return g.colorGrid(tex, out, sidecar)
}

func (g *Generator) colorGrid(tex *Texture, out string, sidecar bool) (*Result, error) {
	order := ColorOrder(tex.Name, g.ordering)
	names := make([]string, len(order))
	for i, c := range order {
		names[i] = c.Name
	}
	g.logger.Printf("Creating 1x%d grid with %s blend mode at %v opacity, %s color order: %s\n", len(order), ColorGridMode, ColorGridOpacity, g.ordering, strings.Join(names, ", "))

	m, err := BuildColorGrid(tex.Image, order)
	gerr, err := skipped(err)
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		for _, c := range gerr.Skipped {
			g.logger.Printf("Warning: failed to create %s overlay: %v\n", c.Label, c.Err)
		}
	}

	path, err := g.save(m, out)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Texture: tex.Name,
		Output:  path,
		Colors:  order,
		Skipped: gerr,
	}

	if sidecar {
		if ok, _ := mcmeta.Exists(path); ok {
			g.logger.Printf("Overwriting sidecar: %s\n", mcmeta.Filename(path))
		}
		if r.Sidecar, err = mcmeta.Write(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	return r, nil
}

// ParameterGridFilename returns the output filename of a parameter grid.
func ParameterGridFilename(texture, color string) string {
	return texture + "-" + color + "-grid" + textureExtension
}

// ParameterGrid writes the blend mode by opacity grid of the named texture
// in color c.
func (g *Generator) ParameterGrid(texture string, c NamedColor) (*Result, error) {
	tex, err := g.load(texture)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Creating grid with %d blend modes and %d opacity levels\n", len(BlendModes()), len(DefaultOpacityLevels()))

	m, err := BuildParameterGrid(tex.Image, c.Color, nil, nil)
	gerr, err := skipped(err)
	if err != nil {
		return nil, err
	}
	if gerr != nil {
		for _, cell := range gerr.Skipped {
			g.logger.Printf("Warning: failed to create %s: %v\n", cell.Label, cell.Err)
		}
	}

	path, err := g.save(m, filepath.Join(g.output, ParameterGridFilename(tex.Name, c.Name)))
	if err != nil {
		return nil, err
	}

	return &Result{Texture: tex.Name, Output: path, Skipped: gerr}, nil
}
