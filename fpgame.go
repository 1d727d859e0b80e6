/*
Package fpgame converts assets exported by external editors into the text
formats loaded by the FP-GAme tile, pattern and palette hardware.

Each conversion reads its inputs entirely, converts them in memory and only
then writes its outputs, so a failed conversion never leaves partial output
behind.
*/
package fpgame

import (
	"io"
	"log"
)

// File extensions appended to the destination basename.
const (
	PaletteExt = ".palette"
	PatternExt = ".pattern"
	TilemapExt = ".tilemap"
	PreviewExt = ".png"
)

// Converter runs conversions. Diagnostics the user needs to act on are
// written to out, progress goes to the logger.
type Converter struct {
	out    io.Writer
	logger *log.Logger
}

// New returns a Converter.
func New(out io.Writer, logger *log.Logger) *Converter {
	return &Converter{
		out:    out,
		logger: logger,
	}
}
