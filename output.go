package fpgame

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoders for sprite sheets
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/bodgit/fpgame/palette"
)

// outputPath returns the file written for frame i of n. A single frame uses
// the destination as-is, otherwise the frame index is appended.
func outputPath(dest, ext string, i, n int) string {
	if n == 1 {
		return dest + ext
	}
	return fmt.Sprintf("%s-%d%s", dest, i, ext)
}

// writeFile replaces file with the contents of b via a temporary file in the
// same directory so readers never see a partial file. The temporary file is
// created like os.Create so the umask applies.
func writeFile(file string, b []byte) (err error) {
	tmp := filepath.Join(filepath.Dir(file), fmt.Sprintf(".%s.%d.tmp", filepath.Base(file), os.Getpid()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, file)
}

// writeFiles writes every buffer to its matching file, in order.
func (c *Converter) writeFiles(files []string, bufs []*bytes.Buffer) error {
	for i, file := range files {
		if err := writeFile(file, bufs[i].Bytes()); err != nil {
			return err
		}
		c.logger.Printf("Wrote \"%s\"\n", file)
	}
	return nil
}

func readPalette(file string) (palette.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return palette.Decode(f)
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}
