package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/pixelframe"
	"github.com/bodgit/pixelframe/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pixelframe.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newPixelFrame(c *cli.Context) (*pixelframe.PixelFrame, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return pixelframe.Open(c.String("db"), logger)
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func parseColor(s string) (palette.Color, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 24)
	if err != nil {
		return 0, err
	}
	return palette.Color(v), nil
}

// Each triple is "X,Y,INDEX"
func parseTriples(args []string) (xs, ys, indices []uint8, err error) {
	for _, arg := range args {
		fields := strings.Split(arg, ",")
		if len(fields) != 3 {
			return nil, nil, nil, fmt.Errorf("malformed pixel \"%s\"", arg)
		}
		var triple [3]uint8
		for i, field := range fields {
			if triple[i], err = parseUint8(field); err != nil {
				return nil, nil, nil, err
			}
		}
		xs = append(xs, triple[0])
		ys = append(ys, triple[1])
		indices = append(indices, triple[2])
	}
	return xs, ys, indices, nil
}

func outputFile(c *cli.Context, i int) (*os.File, func(), error) {
	if c.NArg() <= i {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(c.Args().Get(i))
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelframe"
	app.Usage = "Packed 2-bit pixel art management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELFRAME_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "new",
			Usage:     "Create an empty frame",
			ArgsUsage: "NAME SIZE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size, err := parseUint8(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Create(c.Args().First(), size); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "set",
			Usage:     "Set a single pixel by palette index or color",
			ArgsUsage: "NAME X Y [INDEX]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "color",
					Usage: "palette color as #RRGGBB instead of an index",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				x, err := parseUint8(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				y, err := parseUint8(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if s := c.String("color"); s != "" {
					color, err := parseColor(s)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := m.SetColor(c.Args().First(), x, y, color); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				}

				if c.NArg() < 4 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				index, err := parseUint8(c.Args().Get(3))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := m.Set(c.Args().First(), x, y, index); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "paint",
			Usage:     "Set a batch of pixels",
			ArgsUsage: "NAME X,Y,INDEX...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				xs, ys, indices, err := parseTriples(c.Args().Slice()[1:])
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Paint(c.Args().First(), xs, ys, indices); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "fill",
			Usage:     "Reset every pixel to one palette index",
			ArgsUsage: "NAME INDEX",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				index, err := parseUint8(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Fill(c.Args().First(), index); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "Print a frame as a text grid",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Show(os.Stdout, c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "svg",
			Usage:     "Render a frame as an SVG document",
			ArgsUsage: "NAME [FILE]",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "units per pixel",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				w, done, err := outputFile(c, 1)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer done()

				if err := m.SVG(w, c.Args().First(), c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export a frame as a PNG",
			ArgsUsage: "NAME FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "pixels per frame pixel",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := m.Export(f, c.Args().First(), c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import an image file into an existing frame",
			ArgsUsage: "NAME FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Import(c.Args().First(), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import-dir",
			Usage:     "Import every image below a directory as its own frame",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "size",
					Value: 32,
					Usage: "size of each created frame",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				size := c.Int("size")
				if size < 0 || size > 255 {
					return cli.NewExitError("size must be in [0,255]", 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.ImportDir(c.Args().First(), uint8(size)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "raw",
			Usage:     "Dump the packed pixel buffer of a frame",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				b, err := m.Raw(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Print(hex.Dump(b))

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List all stored frames",
			Action: func(c *cli.Context) error {
				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				names, err := m.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
		{
			Name:      "rm",
			Usage:     "Delete a frame",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPixelFrame(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Delete(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
