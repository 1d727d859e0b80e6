package fpgame

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/fpgame/palette"
	"github.com/bodgit/fpgame/pattern"
	"github.com/bodgit/fpgame/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPalette = "FF00FF\n000000\nFF0000\n00FF00\n0000FF\nFFFFFF\n808080\n404040\n" +
	"C0C0C0\n800000\n008000\n000080\n808000\n800080\n008080\nFF0000"

func newTestConverter() (*Converter, *bytes.Buffer) {
	out := new(bytes.Buffer)
	return New(out, log.New(ioutil.Discard, "", 0)), out
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	file := filepath.Join(dir, name)
	require.Nil(t, ioutil.WriteFile(file, []byte(content), 0644))
	return file
}

func readTestFile(t *testing.T, file string) string {
	b, err := ioutil.ReadFile(file)
	require.Nil(t, err)
	return string(b)
}

func listDir(t *testing.T, dir string) []string {
	entries, err := ioutil.ReadDir(dir)
	require.Nil(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// piskel renders frames of ABGR pixels the way piskel's C export does.
func piskel(width, height int, frames ...[]uint32) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#include <stdint.h>\n\n")
	fmt.Fprintf(&sb, "#define SPRITE_FRAME_COUNT %d\n", len(frames))
	fmt.Fprintf(&sb, "#define SPRITE_FRAME_WIDTH %d\n", width)
	fmt.Fprintf(&sb, "#define SPRITE_FRAME_HEIGHT %d\n\n", height)
	fmt.Fprintf(&sb, "/* Piskel data for \"sprite\" */\n\n")
	fmt.Fprintf(&sb, "static const uint32_t sprite_data[%d][%d] = {\n", len(frames), width*height)
	for _, frame := range frames {
		sb.WriteString("{\n")
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				fmt.Fprintf(&sb, "0x%08x, ", frame[y*width+x])
			}
			sb.WriteString("\n")
		}
		sb.WriteString("},\n")
	}
	sb.WriteString("};\n")
	return sb.String()
}

func fill(n int, v uint32) []uint32 {
	frame := make([]uint32, n)
	for i := range frame {
		frame[i] = v
	}
	return frame
}

func TestPalette(t *testing.T) {
	dir := t.TempDir()

	records := make([]string, 0, palette.Size+1)
	for i := 0; i <= palette.Size; i++ {
		records = append(records, fmt.Sprintf("%3d %3d %3d\tUntitled", i, i*2, i*15))
	}
	src := writeTestFile(t, dir, "in.gpl", "GIMP Palette\nName: in\nColumns: 4\n#\n"+strings.Join(records, "\n"))

	c, _ := newTestConverter()
	file, err := c.Palette(src, filepath.Join(dir, "out"))
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "out.palette"), file)

	lines := strings.Split(readTestFile(t, file), "\n")
	require.Len(t, lines, palette.Size)
	assert.Equal(t, "000000", lines[0])
	assert.Equal(t, "01020F", lines[1])
	assert.Equal(t, "0F1EE1", lines[15])
}

func TestPaletteShort(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "in.gpl", "GIMP Palette\nName: in\nColumns: 4\n#\n0 0 0\n")

	c, _ := newTestConverter()
	_, err := c.Palette(src, filepath.Join(dir, "out"))
	assert.True(t, errors.Is(err, palette.ErrInsufficientData))
	assert.Equal(t, []string{"in.gpl"}, listDir(t, dir))
}

func TestPatternSingleFrame(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)

	frame := fill(8*8, 0xff0000ff)
	frame[0] = 0xff00ff00
	src := writeTestFile(t, dir, "in.c", piskel(8, 8, frame))

	c, _ := newTestConverter()
	files, err := c.Pattern(pal, src, filepath.Join(dir, "sprite"))
	require.Nil(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sprite.pattern")}, files)

	// Red appears twice in the palette, the lowest index wins
	expected := "32222222" + strings.Repeat("\n22222222", 7)
	assert.Equal(t, expected, readTestFile(t, files[0]))
}

func TestPatternMultiFrame(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)
	src := writeTestFile(t, dir, "in.c", piskel(16, 8, fill(16*8, 0xffff0000), fill(16*8, 0xffffffff)))

	c, _ := newTestConverter()
	files, err := c.Pattern(pal, src, filepath.Join(dir, "sprite"))
	require.Nil(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sprite-0.pattern"),
		filepath.Join(dir, "sprite-1.pattern"),
	}, files)
	assert.NoFileExists(t, filepath.Join(dir, "sprite.pattern"))

	assert.Equal(t, strings.Repeat("4", 16)+strings.Repeat("\n"+strings.Repeat("4", 16), 7), readTestFile(t, files[0]))
	assert.Equal(t, strings.Repeat("5", 16)+strings.Repeat("\n"+strings.Repeat("5", 16), 7), readTestFile(t, files[1]))
}

func TestPatternMismatch(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)

	second := fill(8*8, 0xff000000)
	second[8*2+6] = 0xff123456
	src := writeTestFile(t, dir, "in.c", piskel(8, 8, fill(8*8, 0xff000000), second))

	c, _ := newTestConverter()
	_, err := c.Pattern(pal, src, filepath.Join(dir, "sprite"))

	var mismatch *pattern.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 6, mismatch.Col)
	assert.Equal(t, 2, mismatch.Row)
	assert.Equal(t, "563412", mismatch.Color.String())

	// Nothing is written, not even the frame that converted
	assert.ElementsMatch(t, []string{"in.palette", "in.c"}, listDir(t, dir))
}

func TestPatternDimension(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)
	src := writeTestFile(t, dir, "in.c", piskel(10, 8, fill(10*8, 0xff000000)))

	c, _ := newTestConverter()
	_, err := c.Pattern(pal, src, filepath.Join(dir, "sprite"))
	assert.True(t, errors.Is(err, pattern.ErrUnsupportedDimension))
	assert.ElementsMatch(t, []string{"in.palette", "in.c"}, listDir(t, dir))
}

func TestTilemap(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "in.csv", "3221225477,1,536870914\n2,3,4\n")

	c, out := newTestConverter()
	file, err := c.Tilemap(src, filepath.Join(dir, "map"), 2)
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "map.tilemap"), file)

	assert.Equal(t, "(005,2,3) (001,2,0) (002,2,0)\n(002,2,0) (003,2,0) (004,2,0)", readTestFile(t, file))
	assert.Equal(t, "ERROR: Rotated Tile at row 0 column 2!\n"+RotationHint+"\n", out.String())
}

func TestTilemapOversize(t *testing.T) {
	dir := t.TempDir()
	row := strings.TrimSuffix(strings.Repeat("0,", tilemap.LayerWidth+1), ",")
	src := writeTestFile(t, dir, "in.csv", row)

	c, out := newTestConverter()
	_, err := c.Tilemap(src, filepath.Join(dir, "map"), 0)
	require.Nil(t, err)
	assert.Contains(t, out.String(), "WARNING: 65x1 tiles")
}

func TestTilemapPaletteID(t *testing.T) {
	dir := t.TempDir()
	row := strings.TrimSuffix(strings.Repeat("0,", tilemap.LayerWidth+1), ",")
	src := writeTestFile(t, dir, "in.csv", row)

	c, out := newTestConverter()
	_, err := c.Tilemap(src, filepath.Join(dir, "map"), tilemap.MaxPaletteID+1)
	assert.True(t, errors.Is(err, tilemap.ErrPaletteID))
	assert.Empty(t, out.String())
	assert.Equal(t, []string{"in.csv"}, listDir(t, dir))
}

func TestTilemapEmpty(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "in.csv", "")

	c, _ := newTestConverter()
	_, err := c.Tilemap(src, filepath.Join(dir, "map"), 0)
	assert.True(t, errors.Is(err, tilemap.ErrEmptyGrid))
	assert.Equal(t, []string{"in.csv"}, listDir(t, dir))
}

func writeTestPNG(t *testing.T, dir, name string, m image.Image) string {
	b := new(bytes.Buffer)
	require.Nil(t, png.Encode(b, m))
	return writeTestFile(t, dir, name, b.String())
}

func sheet() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				m.SetNRGBA(x, y, color.NRGBA{0xff, 0, 0, 0xff})
			} else if y > 3 {
				m.SetNRGBA(x, y, color.NRGBA{0, 0xff, 0, 0xff})
			}
		}
	}
	return m
}

func TestSprite(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)
	src := writeTestPNG(t, dir, "in.png", sheet())

	c, _ := newTestConverter()
	files, err := c.Sprite(pal, src, filepath.Join(dir, "sprite"), 0)
	require.Nil(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, strings.Repeat("2", 8)+strings.Repeat("\n"+strings.Repeat("2", 8), 7), readTestFile(t, files[0]))
	assert.Equal(t, strings.Repeat("00000000\n", 4)+"33333333\n33333333\n33333333\n33333333", readTestFile(t, files[1]))
}

func TestQuantize(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, "in.png", sheet())

	c, _ := newTestConverter()
	file, err := c.Quantize(src, filepath.Join(dir, "out"), 0xff00ff)
	require.Nil(t, err)

	p, err := readPalette(file)
	require.Nil(t, err)
	assert.Len(t, p, palette.Size)
	assert.Equal(t, palette.Color(0xff00ff), p[0])
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	pal := writeTestFile(t, dir, "in.palette", testPalette)
	src := writeTestFile(t, dir, "in.pattern", strings.Repeat("01234567\n", 7)+"01234567")

	c, _ := newTestConverter()
	file, err := c.Preview(pal, src, filepath.Join(dir, "out"), 2)
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "out.png"), file)

	f, err := os.Open(file)
	require.Nil(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), m.Bounds())

	_, _, _, a := m.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, color.NRGBAModel.Convert(palette.Color(0xff0000)), color.NRGBAModel.Convert(m.At(4, 15)))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "reference"))
	require.Nil(t, err)
	require.Nil(t, f.Close())
	reference, err := os.Stat(f.Name())
	require.Nil(t, err)

	file := filepath.Join(dir, "out.palette")
	require.Nil(t, writeFile(file, []byte("FF00FF")))
	require.Nil(t, writeFile(file, []byte("000000")))

	info, err := os.Stat(file)
	require.Nil(t, err)
	assert.Equal(t, reference.Mode().Perm(), info.Mode().Perm())
	assert.Equal(t, "000000", readTestFile(t, file))
	assert.ElementsMatch(t, []string{"reference", "out.palette"}, listDir(t, dir))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "sprite.pattern", outputPath("sprite", PatternExt, 0, 1))
	assert.Equal(t, "sprite-0.pattern", outputPath("sprite", PatternExt, 0, 2))
	assert.Equal(t, "sprite-1.pattern", outputPath("sprite", PatternExt, 1, 2))
}
