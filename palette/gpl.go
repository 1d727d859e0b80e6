package palette

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GIMP palettes exported by piskel and GIMP carry a four line header
// followed by one "R G B [name]" record per line.
const (
	gplHeaderLines = 4
	gplMagic       = "GIMP Palette"
)

// Header is the fixed-size header block of a GIMP palette.
type Header struct {
	Magic   string // "GIMP Palette"
	Name    string
	Columns int
}

// IsGIMP reports whether the header carries the expected magic string.
func (h Header) IsGIMP() bool {
	return h.Magic == gplMagic
}

func parseHeader(lines []string) Header {
	h := Header{Magic: strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		value := strings.TrimSpace(line[i+1:])
		switch strings.TrimSpace(line[:i]) {
		case "Name":
			h.Name = value
		case "Columns":
			h.Columns, _ = strconv.Atoi(value)
		}
	}
	return h
}

func parseComponent(s string, line int) (uint8, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %q", ErrMalformedRecord, line, s)
	}
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("%w: line %d: %d", ErrColorRange, line, v)
	}
	return uint8(v), nil
}

// DecodeGPL reads a GIMP palette from r. The records are taken purely by
// position: the Size lines immediately after the header, in order.
func DecodeGPL(r io.Reader) (Header, Palette, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return Header{}, nil, err
	}

	if len(lines) < gplHeaderLines+Size {
		have := len(lines) - gplHeaderLines
		if have < 0 {
			have = 0
		}
		return Header{}, nil, fmt.Errorf("%w: got %d color records, need %d", ErrInsufficientData, have, Size)
	}

	h := parseHeader(lines[:gplHeaderLines])

	p := make(Palette, Size)
	for i, record := range lines[gplHeaderLines : gplHeaderLines+Size] {
		line := gplHeaderLines + i + 1
		fields := strings.Fields(record)
		if len(fields) < 3 {
			return Header{}, nil, fmt.Errorf("%w: line %d: %q", ErrMalformedRecord, line, record)
		}

		var rgb [3]uint8
		for j := range rgb {
			v, err := parseComponent(fields[j], line)
			if err != nil {
				return Header{}, nil, err
			}
			rgb[j] = v
		}
		p[i] = RGB(rgb[0], rgb[1], rgb[2])
	}

	return h, p, nil
}
