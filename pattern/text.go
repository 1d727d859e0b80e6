package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes p to w in .pattern format.
func Encode(w io.Writer, p *Pattern) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < p.Height; y++ {
		if y > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		for x := 0; x < p.Width; x++ {
			if _, err := fmt.Fprintf(bw, "%X", p.ColorIndexAt(x, y)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode reads a .pattern file from r.
func Decode(r io.Reader) (*Pattern, error) {
	var rows []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		rows = append(rows, strings.TrimSpace(s.Text()))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedPattern)
	}

	p := &Pattern{
		Width:  len(rows[0]),
		Height: len(rows),
	}
	if err := checkDimensions(p.Width, p.Height); err != nil {
		return nil, err
	}

	p.Indices = make([]uint8, 0, p.Width*p.Height)
	for y, row := range rows {
		if len(row) != p.Width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedPattern, y, len(row), p.Width)
		}
		for x := 0; x < len(row); x++ {
			v, err := strconv.ParseUint(row[x:x+1], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %q", ErrMalformedPattern, y, x, row[x])
			}
			p.Indices = append(p.Indices, uint8(v))
		}
	}

	return p, nil
}
