package convert

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/palette"
	"rlebw/parallel"
	"rlebw/raster"
)

type DestParams struct {
	Sources   []string `arg:"" help:"Source files" type:"existingfile"`
	Dest      string   `help:"Destination folder. Relative to the current directory if not absolute." default:"."`
	Overwrite bool     `help:"Replace existing destination files" default:"false"`
}

type CLICmd struct {
	Import struct {
		DestParams
		Dither bool `help:"Apply Floyd-Steinberg dithering" default:"false"`
		Width  int  `help:"Max width, 0 keeps the source width"`
		Height int  `help:"Max height, 0 keeps the source height"`
	} `cmd:"" help:"Convert raster images (png, gif, jpeg, bmp, tiff, webp) to PBM"`
	Export struct {
		DestParams
		Format     string        `help:"Output format" enum:"png,gif,bmp,tiff,pbm" default:"png"`
		Palette    string        `help:"Palette name (bw, inverted, amber, green) or PAL file in RIFF format" default:"bw"`
		PaletteCol color.Palette `kong:"-"`
	} `cmd:"" help:"Convert PBM images to another raster format"`
}

func (c *CLICmd) dest(subCmd string) *DestParams {
	switch subCmd {
	case "import":
		return &c.Import.DestParams
	case "export":
		return &c.Export.DestParams
	}
	return nil
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	conf := c.dest(kctx.Selected().Name)
	if conf == nil {
		return nil
	}

	dest, err := filepath.Abs(conf.Dest)
	if err != nil {
		return fmt.Errorf("invalid destination path %q: %w", conf.Dest, err)
	}
	conf.Dest = dest

	switch kctx.Selected().Name {
	case "import":
		switch {
		case c.Import.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.Import.Width)
		case c.Import.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.Import.Height)
		}
	case "export":
		if c.Export.PaletteCol, err = palette.LoadPalette(c.Export.Palette); err != nil {
			return err
		}
	}

	return checkCollisions(conf.Dest, conf.Sources, c.format(kctx.Selected().Name))
}

func (c *CLICmd) format(subCmd string) string {
	if subCmd == "export" {
		return c.Export.Format
	}
	return "pbm"
}

// checkCollisions fails if two sources map to the same destination file.
func checkCollisions(dir string, sources []string, format string) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		dest := destName(dir, src, format)
		if prev, ok := seen[dest]; ok {
			return fmt.Errorf("%q and %q would both be written to %q", prev, src, dest)
		}
		seen[dest] = src
	}
	return nil
}

func (c *CLICmd) Run(subCmd string, pool *parallel.Pool) error {
	conf := c.dest(subCmd)
	if err := os.MkdirAll(conf.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", conf.Dest, err)
	}

	for _, src := range conf.Sources {
		pool.Submit(func() error {
			logger := slog.Default().With("file", src)
			var err error
			switch subCmd {
			case "import":
				err = c.importFile(logger, src)
			case "export":
				err = c.exportFile(logger, src)
			}
			if err != nil {
				logger.Error("could not convert image", "error", err)
			}
			return err
		})
	}

	err := pool.Wait()
	slog.Info("stats", "processed", pool.Done(), "errors", pool.Failed(),
		"total", len(conf.Sources))

	if err != nil {
		return fmt.Errorf("error processing %d files", pool.Failed())
	}
	return nil
}

func destName(dir, src, format string) string {
	name := filepath.Base(src)
	return filepath.Join(dir, fmt.Sprintf("%s.%s", strings.TrimSuffix(name, filepath.Ext(name)), format))
}

func (c *CLICmd) importFile(logger *slog.Logger, src string) error {
	conf := c.Import
	dest := destName(conf.Dest, src, c.format("import"))
	if err := fileop.CheckDestination(dest, conf.Overwrite); err != nil {
		return err
	}

	img, err := raster.Load(logger, src, raster.Options{
		Width:  conf.Width,
		Height: conf.Height,
		Dither: conf.Dither,
	})
	if err != nil {
		return err
	}
	defer img.Destroy()

	return save(logger, img, "pbm", dest, nil)
}

func (c *CLICmd) exportFile(logger *slog.Logger, src string) error {
	conf := c.Export
	dest := destName(conf.Dest, src, conf.Format)
	if err := fileop.CheckDestination(dest, conf.Overwrite); err != nil {
		return err
	}

	img, err := raster.Load(logger, src, raster.Options{})
	if err != nil {
		return err
	}
	defer img.Destroy()

	return save(logger, img, conf.Format, dest, conf.PaletteCol)
}

func save(logger *slog.Logger, img *bwimage.Image, format, dest string, pal color.Palette) error {
	if err := raster.Save(logger, img, format, dest, pal); err != nil {
		return err
	}
	logger.Info("converted", "dest", dest, "width", img.Width(), "height", img.Height(), "runs", img.RunCount())
	return nil
}
