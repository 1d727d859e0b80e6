/*
Package palette implements the FP-GAme palette formats.

A palette is exactly 16 colors, each a 24-bit RGB value. The runtime treats
index 0 as transparent, this package does not enforce that. The .palette file
is one uppercase RRGGBB value per line in index order, with no header and no
newline after the final entry.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

const (
	// Size is the number of colors in an FP-GAme palette
	Size = 16

	hexDigits = 6
)

var (
	// ErrInsufficientData is returned when a source palette has fewer
	// color records than Size
	ErrInsufficientData = errors.New("palette: insufficient palette data")
	// ErrMalformedRecord is returned for a source record that isn't three
	// decimal integers
	ErrMalformedRecord = errors.New("palette: malformed color record")
	// ErrColorRange is returned for a color component outside 0-255
	ErrColorRange = errors.New("palette: color component out of range")
	// ErrMalformedEntry is returned for a .palette line that isn't six
	// hex digits
	ErrMalformedEntry = errors.New("palette: malformed palette entry")
	// ErrEmpty is returned when a .palette file has no entries
	ErrEmpty = errors.New("palette: no palette entries")
)

// Color is a 24-bit RGB color packed as 0xRRGGBB. It implements the
// color.Color interface and is always opaque.
type Color uint32

// RGB packs the three components into a Color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Components returns the red, green and blue components.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	a = 0xffff
	return
}

func (c Color) String() string {
	return fmt.Sprintf("%0*X", hexDigits, uint32(c)&0xffffff)
}

// FromColor drops any alpha from c and returns the nearest Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// ParseColor parses a six digit hex RRGGBB value, either case.
func ParseColor(s string) (Color, error) {
	if len(s) != hexDigits {
		return 0, fmt.Errorf("%w: %q", ErrMalformedEntry, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedEntry, s)
	}
	return Color(v), nil
}

// Palette is an ordered list of colors, the position of each color is the
// index used by patterns.
type Palette []Color

// Index returns the lowest index whose color is identical to c, or -1 if no
// entry matches. Duplicate entries therefore always resolve to the first
// occurrence.
func (p Palette) Index(c Color) int {
	for i, v := range p {
		if v == c {
			return i
		}
	}
	return -1
}

// ColorPalette returns p as a color.Palette with the first entry replaced by
// a fully transparent color, matching how the runtime draws index 0.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	if len(cp) > 0 {
		cp[0] = color.RGBA{}
	}
	return cp
}
