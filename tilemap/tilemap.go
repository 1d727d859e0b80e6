/*
Package tilemap implements the conversion of a Tiled CSV layer export into
the FP-GAme .tilemap format.

Each Tiled cell is a 32-bit global tile ID. The top three bits are flags,
MSB first: horizontal mirror, vertical mirror and rotation (anti-diagonal
flip). The remaining 29 bits are the pattern address. The runtime has no
rotation support so a rotated cell only produces a warning, the address and
mirror bits are still written.

A .tilemap file has one line per row, each cell written as (AAA,P,M) where
AAA is the 3 digit hex address, P the hex palette ID and M the hex mirror
value, cells separated by a single space.
*/
package tilemap

import (
	"errors"
	"fmt"
)

const (
	addressMask    = 0x1fffffff
	flagHorizontal = 1 << 31
	flagVertical   = 1 << 30
	flagRotation   = 1 << 29

	// MaxPaletteID is the highest palette a tile layer can reference
	MaxPaletteID = 15

	// LayerWidth and LayerHeight are the size of a runtime tile layer, in
	// tiles
	LayerWidth  = 64
	LayerHeight = 64
)

const (
	// MirrorNone is an unflipped cell
	MirrorNone uint8 = iota
	// MirrorX is a horizontally flipped cell
	MirrorX
	// MirrorY is a vertically flipped cell
	MirrorY
	// MirrorXY is a cell flipped both ways
	MirrorXY
)

var (
	// ErrEmptyGrid is returned when the input has no rows or the first row
	// has no columns
	ErrEmptyGrid = errors.New("tilemap: empty grid")
	// ErrRaggedGrid is returned when rows have differing column counts
	ErrRaggedGrid = errors.New("tilemap: rows have differing column counts")
	// ErrBadCell is returned for a cell that isn't a 32-bit decimal
	// integer
	ErrBadCell = errors.New("tilemap: malformed cell")
	// ErrPaletteID is returned for a palette ID outside 0 to MaxPaletteID
	ErrPaletteID = errors.New("tilemap: palette ID out of range")
)

// Cell is one raw tile reference.
type Cell uint32

// Address returns the 29-bit pattern address.
func (c Cell) Address() uint32 {
	return uint32(c) & addressMask
}

// Horizontal reports whether the horizontal mirror bit is set.
func (c Cell) Horizontal() bool {
	return c&flagHorizontal != 0
}

// Vertical reports whether the vertical mirror bit is set.
func (c Cell) Vertical() bool {
	return c&flagVertical != 0
}

// Rotated reports whether the unsupported rotation bit is set.
func (c Cell) Rotated() bool {
	return c&flagRotation != 0
}

// Mirror returns the two mirror bits, vertical in bit 1 and horizontal in
// bit 0.
func (c Cell) Mirror() uint8 {
	m := MirrorNone
	if c.Vertical() {
		m |= MirrorY
	}
	if c.Horizontal() {
		m |= MirrorX
	}
	return m
}

// Grid is a row-major rectangle of cells.
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns in the first row.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Oversize reports whether g is bigger than a runtime tile layer.
func (g Grid) Oversize() bool {
	return g.Rows() > LayerHeight || g.Cols() > LayerWidth
}

// RotatedTile is the position of a cell with the rotation bit set.
type RotatedTile struct {
	Row, Col int
}

func (r RotatedTile) String() string {
	return fmt.Sprintf("ERROR: Rotated Tile at row %d column %d!", r.Row, r.Col)
}
