package neonpack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/neonpack/mcmeta"
)

// Failure records a texture that could not be processed.
type Failure struct {
	Texture string
	Err     error
}

// Summary reports the outcome of a batch run.
type Summary struct {
	// Animated lists source textures skipped because they already have
	// an animation sidecar.
	Animated []string
	// Unchanged lists textures skipped because the journal shows they
	// are already up to date.
	Unchanged []string
	Succeeded []*Result
	Failed    []Failure
}

// Total returns the number of textures that were attempted.
func (s *Summary) Total() int {
	return len(s.Succeeded) + len(s.Failed)
}

// SkippedRows returns the number of color grid rows left transparent across
// all successful textures.
func (s *Summary) SkippedRows() int {
	n := 0
	for _, r := range s.Succeeded {
		if r.Skipped != nil {
			n += len(r.Skipped.Skipped)
		}
	}
	return n
}

// isTexture matches the extension exactly as TexturePath always appends a
// lower case one.
func isTexture(name string) bool {
	return filepath.Ext(name) == textureExtension
}

// Textures lists the names of the textures in dir that have no animation
// sidecar, sorted, along with the names of those that do.
func Textures(dir string) ([]string, []string, error) {
	d, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: input directory not found: %s", ErrMissingFile, dir)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: not a directory: %s", ErrMissingFile, dir)
	}

	files, err := d.Readdirnames(0)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	animated := make(map[string]struct{})
	for _, file := range files {
		if name, ok := mcmeta.Texture(file); ok {
			animated[name] = struct{}{}
		}
	}

	var textures, skipped []string
	for _, file := range files {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if file[0] == '.' || !isTexture(file) {
			continue
		}
		name := strings.TrimSuffix(file, filepath.Ext(file))
		if _, ok := animated[name]; ok {
			skipped = append(skipped, name)
			continue
		}
		textures = append(textures, name)
	}

	sort.Strings(textures)
	sort.Strings(skipped)

	return textures, skipped, nil
}

// Batch renders a color grid with an animation sidecar for every texture in
// the input directory that is not already animated, writing each one under
// the same name in the output directory. A failing texture is recorded and
// the batch carries on. The context is checked between textures.
func (g *Generator) Batch(ctx context.Context) (*Summary, error) {
	textures, animated, err := Textures(g.input)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.output, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create directory %s: %v", ErrIO, g.output, err)
	}

	s := &Summary{Animated: animated}

	g.logger.Printf("Processing %d textures, skipping %d animated\n", len(textures), len(animated))

	for i, name := range textures {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		g.logger.Printf("[%3d/%d] Processing: %s\n", i+1, len(textures), name)

		r, err := g.batchOne(name)
		switch {
		case err != nil:
			g.logger.Printf("Failed: %s: %v\n", name, err)
			s.Failed = append(s.Failed, Failure{Texture: name, Err: err})
		case r == nil:
			g.logger.Printf("Unchanged: %s\n", name)
			s.Unchanged = append(s.Unchanged, name)
		default:
			s.Succeeded = append(s.Succeeded, r)
		}
	}

	return s, nil
}

// batchOne returns a nil Result if the journal shows the texture is up to
// date.
func (g *Generator) batchOne(name string) (*Result, error) {
	tex, err := LoadTexture(TexturePath(g.input, name))
	if err != nil {
		return nil, err
	}

	out := TexturePath(g.output, name)

	switch {
	case g.journal != nil && g.force:
		if err := g.journal.Forget(name); err != nil {
			return nil, err
		}
	case g.journal != nil:
		last, err := g.journal.Lookup(name)
		if err != nil {
			return nil, err
		}
		if last.Current(tex.SHA1, g.ordering) && last.Output == out && fileExists(out) && fileExists(mcmeta.Filename(out)) {
			return nil, nil
		}
	}

	r, err := g.colorGrid(tex, out, true)
	if err != nil {
		return nil, err
	}

	// Grids with skipped rows are left out so they are retried next time
	if g.journal != nil && r.Skipped == nil {
		names := make([]string, len(r.Colors))
		for i, c := range r.Colors {
			names[i] = c.Name
		}
		if err := g.journal.Record(Render{
			Texture:  name,
			SHA1:     tex.SHA1,
			Ordering: g.ordering,
			Colors:   names,
			Output:   r.Output,
		}); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && info.Mode().IsRegular()
}
