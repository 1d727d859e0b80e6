package fpgame

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	fpimage "github.com/bodgit/fpgame/image"
	"github.com/bodgit/fpgame/palette"
	"github.com/bodgit/fpgame/pattern"
	"github.com/bodgit/fpgame/tilemap"
)

// RotationHint is printed after every rotated tile diagnostic.
const RotationHint = "Fix this by ensuring there are no rotated tiles!"

// Palette converts the GIMP palette src into dest.palette and returns the
// file written.
func (c *Converter) Palette(src, dest string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, p, err := palette.DecodeGPL(f)
	if err != nil {
		return "", err
	}
	if !h.IsGIMP() {
		c.logger.Printf("\"%s\" has no GIMP Palette header, reading records by position anyway\n", src)
	}
	c.logger.Printf("Read %d colors from \"%s\" (%s)\n", len(p), src, h.Name)

	b := new(bytes.Buffer)
	if err := palette.Encode(b, p); err != nil {
		return "", err
	}

	file := dest + PaletteExt
	if err := c.writeFiles([]string{file}, []*bytes.Buffer{b}); err != nil {
		return "", err
	}

	return file, nil
}

// linkFrames converts every frame before anything is written so an
// unmatched color in any frame produces no output at all.
func (c *Converter) linkFrames(frames []pattern.Frame, pal palette.Palette, dest string) ([]string, error) {
	files := make([]string, len(frames))
	bufs := make([]*bytes.Buffer, len(frames))
	for i := range frames {
		p, err := pattern.Link(&frames[i], pal)
		if err != nil {
			return nil, err
		}

		bufs[i] = new(bytes.Buffer)
		if err := pattern.Encode(bufs[i], p); err != nil {
			return nil, err
		}
		files[i] = outputPath(dest, PatternExt, i, len(frames))
	}

	if err := c.writeFiles(files, bufs); err != nil {
		return nil, err
	}

	return files, nil
}

// Pattern converts the piskel C export src into one .pattern file per frame
// using the colors in paletteFile. It returns the files written.
func (c *Converter) Pattern(paletteFile, src, dest string) ([]string, error) {
	pal, err := readPalette(paletteFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := pattern.DecodePiskel(f, pattern.PiskelABGR)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Read %d %dx%d frame(s) from \"%s\" (%s)\n", sheet.FrameCount, sheet.Width, sheet.Height, src, sheet.Layout.Name)

	return c.linkFrames(sheet.Frames, pal, dest)
}

// Tilemap converts the Tiled CSV export src into dest.tilemap with every
// cell using paletteID. Rotated tiles are reported but don't stop the
// conversion.
func (c *Converter) Tilemap(src, dest string, paletteID int) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	g, err := tilemap.Decode(f)
	if err != nil {
		return "", err
	}
	c.logger.Printf("Read %dx%d tiles from \"%s\"\n", g.Cols(), g.Rows(), src)

	if err := tilemap.CheckPaletteID(paletteID); err != nil {
		return "", err
	}

	if g.Oversize() {
		fmt.Fprintf(c.out, "WARNING: %dx%d tiles is larger than the %dx%d tile layer!\n", g.Cols(), g.Rows(), tilemap.LayerWidth, tilemap.LayerHeight)
	}

	b := new(bytes.Buffer)
	rotated, err := tilemap.Encode(b, g, paletteID)
	if err != nil {
		return "", err
	}
	for _, r := range rotated {
		fmt.Fprintln(c.out, r)
		fmt.Fprintln(c.out, RotationHint)
	}

	file := dest + TilemapExt
	if err := c.writeFiles([]string{file}, []*bytes.Buffer{b}); err != nil {
		return "", err
	}

	return file, nil
}

// Quantize builds a palette from the image src and writes dest.palette.
// Index 0 is set to transparent.
func (c *Converter) Quantize(src, dest string, transparent palette.Color) (string, error) {
	m, err := decodeImage(src)
	if err != nil {
		return "", err
	}

	p := palette.Quantize(m, transparent)
	c.logger.Printf("Quantized \"%s\" to %d colors\n", src, len(p))

	b := new(bytes.Buffer)
	if err := palette.Encode(b, p); err != nil {
		return "", err
	}

	file := dest + PaletteExt
	if err := c.writeFiles([]string{file}, []*bytes.Buffer{b}); err != nil {
		return "", err
	}

	return file, nil
}

// Sprite converts a horizontal sprite sheet image into one .pattern file per
// frame, the same as Pattern. A size of 0 uses the image height.
func (c *Converter) Sprite(paletteFile, src, dest string, size int) ([]string, error) {
	pal, err := readPalette(paletteFile)
	if err != nil {
		return nil, err
	}

	m, err := decodeImage(src)
	if err != nil {
		return nil, err
	}

	frames, err := fpimage.Cut(m, size, pal[0])
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Cut %d frame(s) from \"%s\"\n", len(frames), src)

	return c.linkFrames(frames, pal, dest)
}

// Preview renders the .pattern src with the colors in paletteFile to
// dest.png, enlarged by scale.
func (c *Converter) Preview(paletteFile, src, dest string, scale int) (string, error) {
	pal, err := readPalette(paletteFile)
	if err != nil {
		return "", err
	}

	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	p, err := pattern.Decode(f)
	if err != nil {
		return "", err
	}

	m, err := fpimage.Render(p, pal)
	if err != nil {
		return "", err
	}

	scaled, err := fpimage.Scale(m, scale)
	if err != nil {
		return "", err
	}

	b := new(bytes.Buffer)
	if err := png.Encode(b, scaled); err != nil {
		return "", err
	}

	file := dest + PreviewExt
	if err := c.writeFiles([]string{file}, []*bytes.Buffer{b}); err != nil {
		return "", err
	}

	return file, nil
}
