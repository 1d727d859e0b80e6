package tilemap

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode reads a Tiled CSV export from r. A single trailing comma on a row,
// as written inside .tmx files, is tolerated. A blank first line is an
// empty first row, encoding/csv would otherwise skip it.
func Decode(r io.Reader) (Grid, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if strings.TrimSpace(first) == "" {
		return nil, ErrEmptyGrid
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var g Grid
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if n := len(record); n > 0 && strings.TrimSpace(record[n-1]) == "" {
			record = record[:n-1]
		}

		if row == 0 && len(record) == 0 {
			return nil, ErrEmptyGrid
		}
		if row > 0 && len(record) != g.Cols() {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedGrid, row, len(record), g.Cols())
		}

		cells := make([]Cell, len(record))
		for col, field := range record {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %q", ErrBadCell, row, col, field)
			}
			cells[col] = Cell(v)
		}
		g = append(g, cells)
	}

	if g.Rows() == 0 {
		return nil, ErrEmptyGrid
	}

	return g, nil
}
