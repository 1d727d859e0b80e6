package tilemap

import (
	"bufio"
	"fmt"
	"io"
)

// CheckPaletteID returns ErrPaletteID unless id is between 0 and
// MaxPaletteID.
func CheckPaletteID(id int) error {
	if id < 0 || id > MaxPaletteID {
		return fmt.Errorf("%w: %d", ErrPaletteID, id)
	}
	return nil
}

// Encode writes g to w in .tilemap format with every cell using paletteID.
// Rotated cells are still written, without the rotation bit, and their
// positions are returned in row-major order.
func Encode(w io.Writer, g Grid, paletteID int) ([]RotatedTile, error) {
	if g.Rows() == 0 || g.Cols() == 0 {
		return nil, ErrEmptyGrid
	}
	if err := CheckPaletteID(paletteID); err != nil {
		return nil, err
	}

	var rotated []RotatedTile

	bw := bufio.NewWriter(w)
	for row, cells := range g {
		if len(cells) != g.Cols() {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedGrid, row, len(cells), g.Cols())
		}
		if row > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return nil, err
			}
		}
		for col, c := range cells {
			if c.Rotated() {
				rotated = append(rotated, RotatedTile{Row: row, Col: col})
			}
			if col > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return nil, err
				}
			}
			if _, err := fmt.Fprintf(bw, "(%03X,%X,%X)", c.Address(), paletteID, c.Mirror()); err != nil {
				return nil, err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return nil, err
	}

	return rotated, nil
}
