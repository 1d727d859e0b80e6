package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/fpgame/palette"
)

// PixelLayout describes where each color component sits in a packed 32-bit
// source pixel. Any byte not named is ignored, including alpha.
type PixelLayout struct {
	Name                   string
	RShift, GShift, BShift uint
}

// PiskelABGR is the layout written by piskel's C export, version 1 of the
// format: pixels are 0xAABBGGRR.
var PiskelABGR = PixelLayout{
	Name:   "piskel-c-abgr-v1",
	RShift: 0,
	GShift: 8,
	BShift: 16,
}

// Color extracts the RGB components of v.
func (l PixelLayout) Color(v uint32) palette.Color {
	return palette.RGB(uint8(v>>l.RShift), uint8(v>>l.GShift), uint8(v>>l.BShift))
}

const (
	defineDirective = "#define"
	countSuffix     = "_FRAME_COUNT"
	widthSuffix     = "_FRAME_WIDTH"
	heightSuffix    = "_FRAME_HEIGHT"
)

// Header is the metadata block at the top of a piskel C export:
//
//	#define NEW_PISKEL_FRAME_COUNT 2
//	#define NEW_PISKEL_FRAME_WIDTH 16
//	#define NEW_PISKEL_FRAME_HEIGHT 16
type Header struct {
	Name          string
	FrameCount    int
	Width, Height int
}

// Sheet is a decoded piskel export.
type Sheet struct {
	Header
	Layout PixelLayout
	Frames []Frame
}

func parseDefine(line string, h *Header, seen map[string]bool) error {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != defineDirective {
		return nil
	}

	var target *int
	var suffix string
	switch {
	case strings.HasSuffix(fields[1], countSuffix):
		target, suffix = &h.FrameCount, countSuffix
	case strings.HasSuffix(fields[1], widthSuffix):
		target, suffix = &h.Width, widthSuffix
	case strings.HasSuffix(fields[1], heightSuffix):
		target, suffix = &h.Height, heightSuffix
	default:
		return nil
	}

	v, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("%w: %s: %q", ErrMalformedHeader, fields[1], fields[2])
	}
	*target = v
	h.Name = strings.TrimSuffix(fields[1], suffix)
	seen[suffix] = true

	return nil
}

// readHeader parses the defines and returns the index of the first line of
// pixel data, the line after the array declaration.
func readHeader(lines []string) (Header, int, error) {
	var h Header
	seen := make(map[string]bool)

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, defineDirective) {
			if err := parseDefine(line, &h, seen); err != nil {
				return Header{}, 0, err
			}
			continue
		}

		if strings.Contains(line, "=") && strings.HasSuffix(line, "{") {
			for _, suffix := range []string{countSuffix, widthSuffix, heightSuffix} {
				if !seen[suffix] {
					return Header{}, 0, fmt.Errorf("%w: missing %s", ErrMalformedHeader, suffix)
				}
			}
			if h.FrameCount < 1 {
				return Header{}, 0, fmt.Errorf("%w: frame count %d", ErrMalformedHeader, h.FrameCount)
			}
			return h, i + 1, nil
		}
	}

	return Header{}, 0, fmt.Errorf("%w: no pixel data", ErrMalformedHeader)
}

func readPixels(lines []string, offset int, layout PixelLayout, need int) ([]palette.Color, error) {
	pixels := make([]palette.Color, 0, need)
	for i, line := range lines {
		for _, token := range strings.Split(line, ",") {
			token = strings.Trim(strings.TrimSpace(token), "{};")
			if token == "" {
				continue
			}
			if len(pixels) == need {
				return pixels, nil
			}

			hex := strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
			if len(hex) != 8 || len(hex) == len(token) {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedPixel, offset+i+1, token)
			}
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedPixel, offset+i+1, token)
			}
			pixels = append(pixels, layout.Color(uint32(v)))
		}
	}

	if len(pixels) < need {
		return nil, fmt.Errorf("%w: have %d pixels, need %d", ErrTruncated, len(pixels), need)
	}
	return pixels, nil
}

// DecodePiskel reads a piskel C export from r using layout to unpack each pixel.
// The frame dimensions are validated before any pixel data is read.
func DecodePiskel(r io.Reader, layout PixelLayout) (*Sheet, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	h, start, err := readHeader(lines)
	if err != nil {
		return nil, err
	}

	if err := checkDimensions(h.Width, h.Height); err != nil {
		return nil, err
	}

	size := h.Width * h.Height
	pixels, err := readPixels(lines[start:], start, layout, size*h.FrameCount)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Header: h,
		Layout: layout,
		Frames: make([]Frame, h.FrameCount),
	}
	for i := range sheet.Frames {
		sheet.Frames[i] = Frame{
			Width:  h.Width,
			Height: h.Height,
			Pixels: pixels[i*size : (i+1)*size],
		}
	}

	return sheet, nil
}
