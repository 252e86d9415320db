/*
Package neonpack generates neon-tinted variants of Minecraft block textures
for resource packs.

Each variant is produced by desaturating a texture, combining it with a solid
color overlay using one of four blend modes and brightening the result. The
variants are then arranged into grids: either a single column with one row
per neon color, suitable for use as an animated texture, or a labelled matrix
of blend modes against opacity levels for choosing parameters.
*/
package neonpack

import (
	"io"
	"log"
)

// Generator renders textures from an input directory into an output
// directory.
type Generator struct {
	input, output string
	ordering      Ordering
	colors        int
	journal       *Journal
	force         bool
	logger        *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithOrdering sets the color grid row ordering. The default is
// OrderRandom.
func WithOrdering(o Ordering) Option {
	return func(g *Generator) {
		g.ordering = o
	}
}

// WithPalette reduces every written texture to at most n colors. Zero
// disables reduction.
func WithPalette(n int) Option {
	return func(g *Generator) {
		g.colors = n
	}
}

// WithJournal records batch renders in j and skips unchanged textures.
func WithJournal(j *Journal) Option {
	return func(g *Generator) {
		g.journal = j
	}
}

// WithForce makes Batch forget any journal entry and render every texture
// again.
func WithForce(force bool) Option {
	return func(g *Generator) {
		g.force = force
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New returns a Generator reading textures from input and writing results
// under output.
func New(input, output string, options ...Option) *Generator {
	g := &Generator{
		input:  input,
		output: output,
		logger: log.New(io.Discard, "", 0),
	}
	for _, o := range options {
		o(g)
	}
	return g
}
