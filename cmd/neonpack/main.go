package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/bodgit/neonpack"
	"github.com/bodgit/neonpack/palette"
	"github.com/urfave/cli/v2"
)

const (
	defaultInput  = "orig/assets/minecraft/textures/blocks"
	defaultOutput = "."
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

func newGenerator(c *cli.Context, options ...neonpack.Option) (*neonpack.Generator, func(), error) {
	options = append(options,
		neonpack.WithLogger(newLogger(c)),
		neonpack.WithPalette(c.Int("palette")),
	)

	closer := func() {}
	if db := c.String("db"); db != "" {
		j, err := neonpack.OpenJournal(db)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, neonpack.WithJournal(j))
		closer = func() { j.Close() }
	}

	return neonpack.New(c.String("input"), c.String("output"), options...), closer, nil
}

func orderingFlag(c *cli.Context) (neonpack.Ordering, error) {
	return neonpack.ParseOrdering(c.String("order"))
}

func parseOpacity(s string) (float64, error) {
	opacity, err := strconv.ParseFloat(s, 64)
	if err != nil || !(opacity >= 0 && opacity <= 1) {
		return 0, fmt.Errorf("%w: opacity must be a number between 0.0 and 1.0", neonpack.ErrInvalidParameter)
	}
	return opacity, nil
}

func usage(c *cli.Context) error {
	_ = cli.ShowCommandHelp(c, c.Command.Name)
	return cli.Exit("", 1)
}

func warnSkipped(c *cli.Context, r *neonpack.Result) {
	if r.Skipped == nil {
		return
	}
	for _, cell := range r.Skipped.Skipped {
		fmt.Fprintf(c.App.ErrWriter, "Warning: skipped %v\n", cell)
	}
}

func overlay(c *cli.Context) error {
	if c.NArg() < 2 {
		return usage(c)
	}

	color, err := neonpack.ParseColor(c.String("color"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	opacity, err := parseOpacity(c.String("opacity"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	mode, err := neonpack.ParseBlendMode(c.String("blend"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, closer, err := newGenerator(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	r, err := g.Overlay(c.Args().Get(0), c.Args().Get(1), color.Color, opacity, mode)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(c.App.Writer, r.Output)

	return nil
}

func blends(c *cli.Context) error {
	if c.NArg() < 3 {
		return usage(c)
	}

	color, err := neonpack.LookupColor(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	opacity, err := parseOpacity(c.Args().Get(2))
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, closer, err := newGenerator(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	results, err := g.Blends(c.Args().Get(0), color, opacity)
	for _, r := range results {
		fmt.Fprintln(c.App.Writer, r.Output)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func grid(c *cli.Context) error {
	if c.NArg() < 2 {
		return usage(c)
	}

	color, err := neonpack.LookupColor(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, closer, err := newGenerator(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	r, err := g.ParameterGrid(c.Args().Get(0), color)
	if err != nil {
		return cli.Exit(err, 1)
	}
	warnSkipped(c, r)
	fmt.Fprintln(c.App.Writer, r.Output)

	return nil
}

func colorGrid(c *cli.Context) error {
	if c.NArg() < 1 {
		return usage(c)
	}

	ordering, err := orderingFlag(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, closer, err := newGenerator(c, neonpack.WithOrdering(ordering))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	r, err := g.ColorGrid(c.Args().Get(0), c.Args().Get(1), c.Bool("mcmeta"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	warnSkipped(c, r)
	fmt.Fprintln(c.App.Writer, r.Output)
	if r.Sidecar != "" {
		fmt.Fprintln(c.App.Writer, r.Sidecar)
	}

	return nil
}

func batch(c *cli.Context) error {
	if c.Bool("dry-run") {
		textures, animated, err := neonpack.Textures(c.String("input"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		for _, t := range animated {
			fmt.Fprintf(c.App.Writer, "skip %s (animated)\n", t)
		}
		for _, t := range textures {
			fmt.Fprintf(c.App.Writer, "process %s\n", t)
		}
		return nil
	}

	ordering, err := orderingFlag(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, closer, err := newGenerator(c, neonpack.WithOrdering(ordering), neonpack.WithForce(c.Bool("force")))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.Batch(ctx)
	if s != nil {
		printSummary(c.App.Writer, s)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(s.Failed) > 0 {
		return cli.Exit(fmt.Sprintf("%d texture(s) failed", len(s.Failed)), 1)
	}

	return nil
}

func printSummary(w io.Writer, s *neonpack.Summary) {
	fmt.Fprintf(w, "Total textures processed: %d\n", s.Total())
	fmt.Fprintf(w, "Successful: %d\n", len(s.Succeeded))
	fmt.Fprintf(w, "Failed: %d\n", len(s.Failed))
	if len(s.Unchanged) > 0 {
		fmt.Fprintf(w, "Unchanged: %d\n", len(s.Unchanged))
	}
	if len(s.Animated) > 0 {
		fmt.Fprintf(w, "Already animated: %d\n", len(s.Animated))
	}
	if n := s.SkippedRows(); n > 0 {
		fmt.Fprintf(w, "Skipped rows: %d\n", n)
		for _, r := range s.Succeeded {
			if r.Skipped == nil {
				continue
			}
			for _, cell := range r.Skipped.Skipped {
				fmt.Fprintf(w, "  - %s: %v\n", r.Texture, cell)
			}
		}
	}
	for _, f := range s.Failed {
		fmt.Fprintf(w, "  - %s: %v\n", f.Texture, f.Err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "neonpack"
	app.Usage = "Neon texture variant generator for Minecraft resource packs"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			EnvVars: []string{"NEONPACK_INPUT"},
			Value:   defaultInput,
			Usage:   "directory containing source textures",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"NEONPACK_OUTPUT"},
			Value:   defaultOutput,
			Usage:   "directory to write generated textures to",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NEONPACK_DB"},
			Usage:   "path to render journal database",
		},
		&cli.IntFlag{
			Name:  "palette",
			Usage: "reduce output to at most `N` colors (0 disables)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:  "list-colors",
			Usage: "list the available neon colors and exit",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("list-colors") {
			fmt.Fprintln(c.App.Writer, neonpack.ListColors())
			return cli.Exit("", 0)
		}
		if n := c.Int("palette"); n != 0 && (n < palette.MinColors || n > palette.MaxColors) {
			return cli.Exit(fmt.Errorf("%w: palette must be between %d and %d colors", neonpack.ErrInvalidParameter, palette.MinColors, palette.MaxColors), 1)
		}
		return nil
	}

	orderFlag := &cli.StringFlag{
		Name:  "order",
		Value: "random",
		Usage: "color row order: random, grouped or fixed",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "overlay",
			Usage:       "Apply a neon overlay to a single texture",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "color",
					Value: neonpack.DefaultColor,
					Usage: "neon color name, #rrggbb or R,G,B",
				},
				&cli.StringFlag{
					Name:  "opacity",
					Value: "0.3",
					Usage: "overlay opacity 0.0-1.0",
				},
				&cli.StringFlag{
					Name:  "blend",
					Value: neonpack.Screen.String(),
					Usage: "blend mode: screen, overlay, multiply, normal",
				},
			},
			Action: overlay,
		},
		{
			Name:        "blends",
			Usage:       "Generate a variant of a texture for every blend mode",
			Description: "Writes TEXTURE-COLOR-OPACITY-MODE.png for each blend mode.",
			ArgsUsage:   "TEXTURE COLOR OPACITY",
			Action:      blends,
		},
		{
			Name:        "grid",
			Usage:       "Generate a blend mode by opacity grid for a texture",
			Description: "Writes TEXTURE-COLOR-grid.png with each cell scaled 8x.",
			ArgsUsage:   "TEXTURE COLOR",
			Action:      grid,
		},
		{
			Name:        "colorgrid",
			Usage:       "Generate a 1x10 grid of a texture in every neon color",
			Description: "Writes TEXTURE-color-grid.png unless OUTPUT is given.",
			ArgsUsage:   "TEXTURE [OUTPUT]",
			Flags: []cli.Flag{
				orderFlag,
				&cli.BoolFlag{
					Name:  "mcmeta",
					Usage: "write an animation sidecar next to the grid",
				},
			},
			Action: colorGrid,
		},
		{
			Name:        "batch",
			Usage:       "Generate animated color grids for every texture",
			Description: "Textures that already have a .png.mcmeta sidecar are skipped.",
			Flags: []cli.Flag{
				orderFlag,
				&cli.BoolFlag{
					Name:  "dry-run",
					Usage: "list textures that would be processed",
				},
				&cli.BoolFlag{
					Name:  "force",
					Usage: "ignore the render journal and render every texture",
				},
			},
			Action: batch,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
