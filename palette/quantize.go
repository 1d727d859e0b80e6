package palette

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// opaquePixels collects every pixel of m that isn't fully transparent into a
// single row image so the quantizer never sees the transparent area.
func opaquePixels(m image.Image) *image.NRGBA {
	b := m.Bounds()
	pixels := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			c.A = 0xff
			pixels = append(pixels, c)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, len(pixels), 1))
	for x, c := range pixels {
		dst.SetNRGBA(x, 0, c)
	}
	return dst
}

// Quantize builds a palette for m using median cut. Index 0 is always key,
// the color the runtime treats as transparent, the remaining entries are
// the quantized colors of the opaque pixels padded with black.
func Quantize(m image.Image, key Color) Palette {
	p := make(Palette, 1, Size)
	p[0] = key

	src := opaquePixels(m)
	if src.Bounds().Dx() > 0 {
		q := quantize.MedianCutQuantizer{}
		for _, c := range q.Quantize(make(color.Palette, 0, Size-1), src) {
			if len(p) == Size {
				break
			}
			p = append(p, FromColor(c))
		}
	}

	for len(p) < Size {
		p = append(p, RGB(0, 0, 0))
	}

	return p
}
