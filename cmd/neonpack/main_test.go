package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/neonpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeTexture(t *testing.T, dir, name string) {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(m.Pix); i += 4 {
		copy(m.Pix[i:], []uint8{120, 120, 120, 255})
	}
	m.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"neonpack"}, args...))
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

func TestExitCodes(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTexture(t, in, "stone.png")
	stone := filepath.Join(in, "stone.png")

	tables := []struct {
		name string
		args []string
		code int
	}{
		{"list colors", []string{"--list-colors"}, 0},
		{"opacity out of range", []string{"overlay", "--opacity", "1.5", stone, filepath.Join(out, "x.png")}, 1},
		{"opacity not a number", []string{"overlay", "--opacity", "NaN", stone, filepath.Join(out, "x.png")}, 1},
		{"unknown blend mode", []string{"overlay", "--blend", "dodge", stone, filepath.Join(out, "x.png")}, 1},
		{"missing input", []string{"overlay", filepath.Join(in, "missing.png"), filepath.Join(out, "x.png")}, 1},
		{"missing arguments", []string{"overlay", stone}, 1},
		{"unknown color", []string{"-i", in, "-o", out, "blends", "stone", "teal", "0.5"}, 1},
		{"palette too small", []string{"--palette", "1", "batch"}, 1},
		{"palette too large", []string{"--palette", "257", "batch"}, 1},
		{"unknown order", []string{"-i", in, "-o", out, "colorgrid", "--order", "sorted", "stone"}, 1},
		{"missing batch input", []string{"-i", filepath.Join(in, "missing"), "-o", out, "batch"}, 1},
		{"overlay", []string{"overlay", "--color", "#ff8800", stone, filepath.Join(out, "neon.png")}, 0},
		{"grid", []string{"-i", in, "-o", out, "grid", "stone", "pink"}, 0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := run(t, table.args...)
			assert.Equal(t, table.code, exitCode(err), "%v", err)
		})
	}

	assert.NoFileExists(t, filepath.Join(out, "x.png"))
	assert.FileExists(t, filepath.Join(out, "neon.png"))
	assert.FileExists(t, filepath.Join(out, "stone-pink-grid.png"))
}

func TestListColors(t *testing.T) {
	stdout, err := run(t, "--list-colors")
	assert.Equal(t, 0, exitCode(err))
	assert.Contains(t, stdout, neonpack.ListColors())
}

func TestColorGrid(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTexture(t, in, "stone.png")

	stdout, err := run(t, "-i", in, "-o", out, "colorgrid", "--order", "fixed", "--mcmeta", "stone")
	require.NoError(t, err)

	grid := filepath.Join(out, "stone-color-grid.png")
	assert.Equal(t, grid+"\n"+grid+".mcmeta\n", stdout)
	assert.FileExists(t, grid+".mcmeta")
}

func TestBlends(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTexture(t, in, "stone.png")

	stdout, err := run(t, "-i", in, "-o", out, "blends", "stone", "cyan", "1")
	require.NoError(t, err)
	for _, mode := range neonpack.BlendModes() {
		assert.Contains(t, stdout, filepath.Join(out, "stone-cyan-1.0-"+mode.String()+".png"))
	}
}

func TestBatch(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTexture(t, in, "stone.png")
	writeTexture(t, in, "dirt.png")

	stdout, err := run(t, "-i", in, "-o", out, "batch", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "process dirt\nprocess stone\n", stdout)
	assert.NoFileExists(t, filepath.Join(out, "stone.png"))

	stdout, err = run(t, "-i", in, "-o", out, "batch")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successful: 2\n")
	assert.FileExists(t, filepath.Join(out, "stone.png.mcmeta"))

	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("garbage"), 0644))
	stdout, err = run(t, "-i", in, "-o", out, "batch")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stdout, "Failed: 1\n")
	assert.Contains(t, stdout, "  - broken: ")
}

func TestBatchJournal(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	db := filepath.Join(t.TempDir(), "journal.db")
	writeTexture(t, in, "stone.png")

	_, err := run(t, "-i", in, "-o", out, "--db", db, "batch", "--order", "grouped")
	require.NoError(t, err)

	stdout, err := run(t, "-i", in, "-o", out, "--db", db, "batch", "--order", "grouped")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Unchanged: 1\n")

	stdout, err = run(t, "-i", in, "-o", out, "--db", db, "batch", "--order", "grouped", "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successful: 1\n")
	assert.NotContains(t, stdout, "Unchanged")
}

func TestPrintSummarySkippedRows(t *testing.T) {
	s := &neonpack.Summary{
		Succeeded: []*neonpack.Result{
			{Texture: "dirt"},
			{
				Texture: "stone",
				Skipped: &neonpack.GridError{Skipped: []neonpack.CellError{
					{Row: 3, Label: "lime", Err: neonpack.ErrInvalidParameter},
				}},
			},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, s)
	assert.Contains(t, buf.String(), "Successful: 2\n")
	assert.Contains(t, buf.String(), "Skipped rows: 1\n")
	assert.Contains(t, buf.String(), "  - stone: lime (row 3, column 0): invalid parameter\n")
}
