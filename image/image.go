/*
Package image converts between FP-GAme patterns and image.Image.

Rendering turns a pattern and its palette into an *image.Paletted where
index 0 is fully transparent, the same way the runtime draws it. Cutting
goes the other way: a horizontal sprite sheet of square frames is split into
pattern.Frame values ready to be linked against a palette.
*/
package image

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"github.com/bodgit/fpgame/palette"
	"github.com/bodgit/fpgame/pattern"
)

var (
	// ErrBadPalette is returned when a pattern references an index past
	// the end of the palette
	ErrBadPalette = errors.New("image: invalid palette index")
	// ErrSheetSize is returned when a sprite sheet isn't a row of whole
	// square frames
	ErrSheetSize = errors.New("image: sheet is wrong size")
	// ErrScale is returned for a scale factor less than one
	ErrScale = errors.New("image: invalid scale")
)

// Render returns p drawn with pal.
func Render(p *pattern.Pattern, pal palette.Palette) (*image.Paletted, error) {
	m := image.NewPaletted(image.Rect(0, 0, p.Width, p.Height), pal.ColorPalette())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			i := p.ColorIndexAt(x, y)
			if int(i) >= len(pal) {
				return nil, ErrBadPalette
			}
			m.SetColorIndex(x, y, i)
		}
	}
	return m, nil
}

// Scale enlarges m by factor using nearest-neighbour so every source pixel
// becomes a solid square.
func Scale(m image.Image, factor int) (*image.NRGBA, error) {
	if factor < 1 {
		return nil, ErrScale
	}
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst, nil
}
