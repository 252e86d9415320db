package neonpack

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Fixed parameters of the color grid.
const (
	ColorGridOpacity = 0.6
	ColorGridMode    = Overlay
)

// Fixed parameters of the parameter grid.
const (
	ScaleFactor      = 8
	CellPadding      = 4
	LabelHeight      = 20
	RowLabelWidth    = 100
	ColumnLabelStrip = LabelHeight + 30

	columnLabelWidth = 40
	columnLabelY     = 5
	rowLabelWidth    = 90
	rowLabelX        = 5
)

var gridBackground = color.NRGBA{R: 20, G: 20, B: 20, A: 255}

// DefaultOpacityLevels are the parameter grid columns, 0.1 through 0.9.
func DefaultOpacityLevels() []float64 {
	return []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
}

type compositeFunc func(image.Image, Color, float64, BlendMode) (*image.NRGBA, error)

// BuildColorGrid stacks one composited copy of src per color in a single
// column, top to bottom, without padding. Rows that fail to composite are
// left transparent and reported in a *GridError; the canvas is returned
// regardless.
func BuildColorGrid(src image.Image, order []NamedColor) (*image.NRGBA, error) {
	return buildColorGrid(src, order, Composite)
}

func buildColorGrid(src image.Image, order []NamedColor, composite compositeFunc) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, invalidf("empty source image")
	}
	if len(order) == 0 {
		return nil, invalidf("no colors")
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	canvas := imaging.New(w, h*len(order), color.NRGBA{})

	gerr := new(GridError)
	for row, c := range order {
		cell, err := composite(src, c.Color, ColorGridOpacity, ColorGridMode)
		if err != nil {
			gerr.add(row, 0, c.Name, err)
			continue
		}
		canvas = imaging.Paste(canvas, cell, image.Pt(0, row*h))
	}

	return canvas, gerr.errOrNil()
}

// GridLayout describes the geometry of a parameter grid.
type GridLayout struct {
	Cell          image.Point
	Columns, Rows int
}

// Size returns the canvas dimensions.
func (l GridLayout) Size() image.Point {
	return image.Pt(
		RowLabelWidth+l.Columns*(l.Cell.X+CellPadding)+CellPadding,
		ColumnLabelStrip+l.Rows*(l.Cell.Y+CellPadding)+CellPadding,
	)
}

// Offset returns the top-left corner of the cell at row, col.
func (l GridLayout) Offset(row, col int) image.Point {
	return image.Pt(
		RowLabelWidth+col*(l.Cell.X+CellPadding)+CellPadding,
		ColumnLabelStrip+row*(l.Cell.Y+CellPadding)+CellPadding,
	)
}

// Rect returns the region occupied by the cell at row, col.
func (l GridLayout) Rect(row, col int) image.Rectangle {
	p := l.Offset(row, col)
	return image.Rectangle{Min: p, Max: p.Add(l.Cell)}
}

func (l GridLayout) columnLabel(col int) image.Point {
	return image.Pt(RowLabelWidth+col*(l.Cell.X+CellPadding)+CellPadding+l.Cell.X/2-columnLabelWidth/2, columnLabelY)
}

func (l GridLayout) rowLabel(row int) image.Point {
	return image.Pt(rowLabelX, ColumnLabelStrip+row*(l.Cell.Y+CellPadding)+CellPadding+l.Cell.Y/2-LabelHeight/2)
}

// ScaleNearest enlarges m by an integer factor without interpolation.
func ScaleNearest(m image.Image, factor int) *image.NRGBA {
	b := m.Bounds()
	return imaging.Resize(m, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// BuildParameterGrid renders src with color c for every combination of
// blend mode (rows) and opacity level (columns), each cell scaled by
// ScaleFactor, with labels along the top and left edges. A nil modes or
// levels selects the defaults.
func BuildParameterGrid(src image.Image, c Color, modes []BlendMode, levels []float64) (*image.NRGBA, error) {
	return buildParameterGrid(src, c, modes, levels, Composite, newLabeler())
}

func buildParameterGrid(src image.Image, c Color, modes []BlendMode, levels []float64, composite compositeFunc, lab *labeler) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, invalidf("empty source image")
	}
	if modes == nil {
		modes = BlendModes()
	}
	if levels == nil {
		levels = DefaultOpacityLevels()
	}

	layout := GridLayout{
		Cell:    src.Bounds().Size().Mul(ScaleFactor),
		Columns: len(levels),
		Rows:    len(modes),
	}
	size := layout.Size()
	canvas := imaging.New(size.X, size.Y, gridBackground)

	for col, opacity := range levels {
		canvas = imaging.Paste(canvas, lab.render(fmt.Sprintf("%.1f", opacity), columnLabelWidth, LabelHeight), layout.columnLabel(col))
	}

	gerr := new(GridError)
	for row, mode := range modes {
		canvas = imaging.Paste(canvas, lab.render(mode.String(), rowLabelWidth, LabelHeight), layout.rowLabel(row))

		for col, opacity := range levels {
			cell, err := composite(src, c, opacity, mode)
			if err != nil {
				gerr.add(row, col, fmt.Sprintf("%s at %.1f", mode, opacity), err)
				continue
			}
			canvas = imaging.Overlay(canvas, ScaleNearest(cell, ScaleFactor), layout.Offset(row, col), 1.0)
		}
	}

	return canvas, gerr.errOrNil()
}
