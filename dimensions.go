package code2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Default margins in millimetres.
const (
	DefaultMarginTop    = 20.0
	DefaultMarginBottom = 5.0
	DefaultMarginLeft   = 10.0
	DefaultMarginRight  = 10.0
)

// ptPerMM converts millimetres to PDF points.
const ptPerMM = 72.0 / 25.4

// headerBaseline is the distance from the top edge to the header text baseline.
var headerBaseline = MM(7.5)

// pageSizesMM maps page size names to portrait width and height in mm.
var pageSizesMM = map[string][2]float64{
	PageSizeA4:     {210, 297},
	PageSizeLetter: {215.9, 279.4},
	PageSizeLegal:  {215.9, 355.6},
}

// MM converts millimetres to points.
func MM(v float64) float64 {
	return v * ptPerMM
}

// Dimensions is the page size and margins, all in points.
type Dimensions struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// Margins are page margins in millimetres.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// DefaultMargins returns the default margins.
func DefaultMargins() Margins {
	return Margins{
		Top:    DefaultMarginTop,
		Bottom: DefaultMarginBottom,
		Left:   DefaultMarginLeft,
		Right:  DefaultMarginRight,
	}
}

// DefaultDimensions returns A4 portrait with the default margins.
func DefaultDimensions() Dimensions {
	d, _ := NewPageDimensions(PageSizeA4, OrientationPortrait, DefaultMargins())
	return d
}

// NewDimensionsMM builds Dimensions from millimetre values and validates them.
func NewDimensionsMM(width, height float64, m Margins) (Dimensions, error) {
	d := Dimensions{
		Width:        MM(width),
		Height:       MM(height),
		MarginTop:    MM(m.Top),
		MarginBottom: MM(m.Bottom),
		MarginLeft:   MM(m.Left),
		MarginRight:  MM(m.Right),
	}
	if err := d.Validate(); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

// NewPageDimensions builds Dimensions from a named page size and orientation.
// Both names are case-insensitive; empty values mean a4 and portrait.
func NewPageDimensions(size, orientation string, m Margins) (Dimensions, error) {
	if size == "" {
		size = PageSizeA4
	}
	wh, ok := pageSizesMM[strings.ToLower(size)]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, size)
	}

	w, h := wh[0], wh[1]
	switch strings.ToLower(orientation) {
	case "", OrientationPortrait:
	case OrientationLandscape:
		w, h = h, w
	default:
		return Dimensions{}, fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, orientation)
	}
	return NewDimensionsMM(w, h, m)
}

// Validate checks that sizes are positive, margins non-negative, and that
// the margins leave a text area.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: page size %.2fx%.2fpt must be positive", ErrInvalidDimensions, d.Width, d.Height)
	}
	for _, m := range []float64{d.MarginTop, d.MarginBottom, d.MarginLeft, d.MarginRight} {
		if m < 0 {
			return fmt.Errorf("%w: %.2fpt must not be negative", ErrInvalidMargin, m)
		}
	}
	if d.MaxTextWidth() <= 0 {
		return fmt.Errorf("%w: left and right margins exceed the page width", ErrInvalidMargin)
	}
	if d.MaxTextHeight() <= 0 {
		return fmt.Errorf("%w: top and bottom margins exceed the page height", ErrInvalidMargin)
	}
	return nil
}

// MaxTextWidth is the width available to body text.
func (d Dimensions) MaxTextWidth() float64 {
	return d.Width - d.MarginLeft - d.MarginRight
}

// MaxTextHeight is the height available to body text.
func (d Dimensions) MaxTextHeight() float64 {
	return d.Height - d.MarginTop - d.MarginBottom
}
