package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/fpgame"
	"github.com/bodgit/fpgame/palette"
	"github.com/bodgit/fpgame/pattern"
	"github.com/bodgit/fpgame/tilemap"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
	// The converters have always reported problems on stdout
	cli.ErrWriter = os.Stdout
}

func newConverter(c *cli.Context) *fpgame.Converter {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return fpgame.New(c.App.Writer, logger)
}

// exitError maps conversion errors onto the messages users already know.
func exitError(err error) error {
	var mismatch *pattern.MismatchError
	var dimension *pattern.DimensionError
	switch {
	case errors.As(err, &mismatch):
		return cli.NewExitError(fmt.Sprintf("Couldn't find color for pixel (%d, %d): %s", mismatch.Col, mismatch.Row, mismatch.Color), 1)
	case errors.As(err, &dimension):
		axis := strings.Title(dimension.Axis)
		return cli.NewExitError(fmt.Sprintf("Error: %s not supported! Only %ss of 8, 16, 24, or 32 are supported. (got %d)", axis, dimension.Axis, dimension.Value), 1)
	case errors.Is(err, tilemap.ErrEmptyGrid):
		return cli.NewExitError("Malformed .csv file!", 1)
	}
	return cli.NewExitError(err, 1)
}

// checkArgs shows the command help and fails when there aren't exactly n
// arguments.
func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		if err := cli.ShowCommandHelp(c, c.Command.Name); err != nil {
			return err
		}
		return cli.NewExitError("", 1)
	}
	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "fpgame"
	app.Usage = "FP-GAme asset conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "palette",
			Usage:       "Convert a GIMP/piskel .gpl palette",
			Description: "Writes DEST.palette with the 16 colors following the .gpl header, one RRGGBB value per line.",
			ArgsUsage:   "SRC DEST",
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 2); err != nil {
					return err
				}

				if _, err := newConverter(c).Palette(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "pattern",
			Usage:       "Convert a piskel .c export into patterns",
			Description: "Writes DEST.pattern, or DEST-N.pattern for each frame when there is more than one. Every pixel color must be in PALETTE.",
			ArgsUsage:   "PALETTE SRC DEST",
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3); err != nil {
					return err
				}

				if _, err := newConverter(c).Pattern(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "tilemap",
			Usage:       "Convert a Tiled .csv export into a tilemap",
			Description: "Writes DEST.tilemap with every tile using PALETTE_ID (0-15). Rotated tiles are reported but still converted without rotation.",
			ArgsUsage:   "SRC DEST PALETTE_ID",
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3); err != nil {
					return err
				}

				id, err := strconv.Atoi(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if _, err := newConverter(c).Tilemap(c.Args().Get(0), c.Args().Get(1), id); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "quantize",
			Usage:       "Generate a palette from an image",
			Description: "Writes DEST.palette with the transparent color at index 0 and up to 15 colors chosen from IMAGE by median cut.",
			ArgsUsage:   "IMAGE DEST",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "transparent",
					Aliases: []string{"t"},
					EnvVars: []string{"FPGAME_TRANSPARENT"},
					Value:   "FF00FF",
					Usage:   "color used for palette index 0",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 2); err != nil {
					return err
				}

				key, err := palette.ParseColor(c.String("transparent"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if _, err := newConverter(c).Quantize(c.Args().Get(0), c.Args().Get(1), key); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "sprite",
			Usage:       "Convert a sprite sheet image into patterns",
			Description: "Cuts IMAGE into square frames left to right and writes them like the pattern command. Transparent pixels use palette index 0.",
			ArgsUsage:   "PALETTE IMAGE DEST",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Usage:   "frame width and height in pixels, defaults to the image height",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3); err != nil {
					return err
				}

				if _, err := newConverter(c).Sprite(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Int("size")); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render a pattern as a PNG",
			Description: "Writes DEST.png drawn with PALETTE, index 0 is transparent.",
			ArgsUsage:   "PALETTE PATTERN DEST",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "scale",
					EnvVars: []string{"FPGAME_SCALE"},
					Value:   8,
					Usage:   "enlarge each pixel by this factor",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3); err != nil {
					return err
				}

				if _, err := newConverter(c).Preview(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Int("scale")); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
