package image

import (
	"fmt"
	"image"

	"github.com/bodgit/fpgame/palette"
	"github.com/bodgit/fpgame/pattern"
)

// Cut splits a horizontal sprite sheet into square frames of size pixels a
// side, left to right. A size of 0 uses the sheet height. Fully transparent
// pixels become transparent, the color of palette index 0, any other alpha
// is dropped.
func Cut(m image.Image, size int, transparent palette.Color) ([]pattern.Frame, error) {
	b := m.Bounds()
	axis := "width"
	if size == 0 {
		size, axis = b.Dy(), "height"
	}
	if !pattern.ValidDimension(size) {
		return nil, &pattern.DimensionError{Axis: axis, Value: size}
	}
	if b.Dy() != size || b.Dx() == 0 || b.Dx()%size != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not a row of %dx%d frames", ErrSheetSize, b.Dx(), b.Dy(), size, size)
	}

	frames := make([]pattern.Frame, b.Dx()/size)
	for i := range frames {
		f := pattern.Frame{
			Width:  size,
			Height: size,
			Pixels: make([]palette.Color, 0, size*size),
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := m.At(b.Min.X+i*size+x, b.Min.Y+y)
				if _, _, _, a := c.RGBA(); a == 0 {
					f.Pixels = append(f.Pixels, transparent)
					continue
				}
				f.Pixels = append(f.Pixels, palette.FromColor(c))
			}
		}
		frames[i] = f
	}

	return frames, nil
}
