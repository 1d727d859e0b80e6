/*
Package pattern implements the FP-GAme pattern format and the piskel C
export it is converted from.

A pattern is one square frame of 8, 16, 24 or 32 pixels a side where every
pixel is a 4-bit index into a 16 color palette. The .pattern file is
height lines of width uppercase hex digits with nothing between the digits
and no newline after the final row.
*/
package pattern

import (
	"errors"
	"fmt"

	"github.com/bodgit/fpgame/palette"
)

var (
	// ErrUnsupportedDimension is returned for a frame width or height
	// other than 8, 16, 24 or 32
	ErrUnsupportedDimension = errors.New("pattern: unsupported dimension")
	// ErrPaletteMismatch is returned when a pixel color has no palette
	// entry
	ErrPaletteMismatch = errors.New("pattern: color not in palette")
	// ErrMalformedHeader is returned when the export metadata is missing
	// or invalid
	ErrMalformedHeader = errors.New("pattern: malformed header")
	// ErrMalformedPixel is returned for pixel data that isn't a packed
	// 32-bit hex value
	ErrMalformedPixel = errors.New("pattern: malformed pixel")
	// ErrTruncated is returned when there are fewer pixels than the header
	// declares
	ErrTruncated = errors.New("pattern: not enough pixel data")
	// ErrMalformedPattern is returned for a .pattern file that isn't a
	// rectangle of hex digits
	ErrMalformedPattern = errors.New("pattern: malformed pattern")
)

// Dimensions lists every supported frame width and height.
var Dimensions = [...]int{8, 16, 24, 32}

// ValidDimension reports whether n is a supported frame width or height.
func ValidDimension(n int) bool {
	for _, d := range Dimensions {
		if n == d {
			return true
		}
	}
	return false
}

// DimensionError records an unsupported frame width or height.
type DimensionError struct {
	Axis  string // "width" or "height"
	Value int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s %d, only %ss of 8, 16, 24, or 32 are supported", ErrUnsupportedDimension, e.Axis, e.Value, e.Axis)
}

func (e *DimensionError) Unwrap() error {
	return ErrUnsupportedDimension
}

func checkDimensions(width, height int) error {
	if !ValidDimension(width) {
		return &DimensionError{Axis: "width", Value: width}
	}
	if !ValidDimension(height) {
		return &DimensionError{Axis: "height", Value: height}
	}
	return nil
}

// MismatchError records the first pixel, in row-major order, whose color
// isn't in the palette.
type MismatchError struct {
	Col, Row int
	Color    palette.Color
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: pixel (%d, %d): %s", ErrPaletteMismatch, e.Col, e.Row, e.Color)
}

func (e *MismatchError) Unwrap() error {
	return ErrPaletteMismatch
}

// Frame is one square image from a sprite sheet, stored row-major.
type Frame struct {
	Width, Height int
	Pixels        []palette.Color
}

// At returns the color of the pixel at column x, row y.
func (f *Frame) At(x, y int) palette.Color {
	return f.Pixels[y*f.Width+x]
}

// Pattern is a frame with every pixel replaced by its palette index.
type Pattern struct {
	Width, Height int
	Indices       []uint8
}

// ColorIndexAt returns the palette index of the pixel at column x, row y.
func (p *Pattern) ColorIndexAt(x, y int) uint8 {
	return p.Indices[y*p.Width+x]
}

// Link maps every pixel of f to the lowest palette index with an identical
// color. The first pixel with no match aborts the whole frame.
func Link(f *Frame, pal palette.Palette) (*Pattern, error) {
	if err := checkDimensions(f.Width, f.Height); err != nil {
		return nil, err
	}
	if len(f.Pixels) != f.Width*f.Height {
		return nil, fmt.Errorf("%w: have %d pixels, need %d", ErrTruncated, len(f.Pixels), f.Width*f.Height)
	}

	p := &Pattern{
		Width:   f.Width,
		Height:  f.Height,
		Indices: make([]uint8, len(f.Pixels)),
	}

	for i, c := range f.Pixels {
		link := pal.Index(c)
		if link < 0 {
			return nil, &MismatchError{
				Col:   i % f.Width,
				Row:   i / f.Width,
				Color: c,
			}
		}
		p.Indices[i] = uint8(link)
	}

	return p, nil
}
