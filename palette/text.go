package palette

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Encode writes p to w in .palette format.
func Encode(w io.Writer, p Palette) error {
	bw := bufio.NewWriter(w)
	for i, c := range p {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(c.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a .palette file from r. Trailing blank lines are ignored, any
// other line must be six hex digits.
func Decode(r io.Reader) (Palette, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, strings.TrimSpace(s.Text()))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}

	p := make(Palette, len(lines))
	for i, line := range lines {
		c, err := ParseColor(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		p[i] = c
	}

	return p, nil
}
