package generate

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/instr"
	"rlebw/raster"
	"rlebw/rle"
)

type SizeParams struct {
	Width     int    `help:"Image width in pixels" required:""`
	Height    int    `help:"Image height in pixels" required:""`
	Output    string `help:"Destination file, format from the extension (pbm, png, gif, bmp, tiff)" short:"o" required:""`
	Overwrite bool   `help:"Replace the destination if it exists" default:"false"`
	Format    string `kong:"-"`
}

type CLICmd struct {
	Solid struct {
		SizeParams
		Value string `help:"Pixel color" enum:"white,black" default:"white"`
	} `cmd:"" help:"Create an image of a single color"`
	Chessboard struct {
		SizeParams
		Edge  int    `help:"Edge of the squares in pixels" default:"1"`
		First string `help:"Color of the top left square" enum:"white,black" default:"black"`
	} `cmd:"" help:"Create a chessboard pattern"`
}

func (c *CLICmd) params(subCmd string) *SizeParams {
	switch subCmd {
	case "solid":
		return &c.Solid.SizeParams
	case "chessboard":
		return &c.Chessboard.SizeParams
	}
	return nil
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	conf := c.params(kctx.Selected().Name)
	if conf == nil {
		return nil
	}

	if conf.Width <= 0 {
		return fmt.Errorf("invalid width: %d", conf.Width)
	}
	if conf.Height <= 0 {
		return fmt.Errorf("invalid height: %d", conf.Height)
	}

	if kctx.Selected().Name == "chessboard" {
		edge := c.Chessboard.Edge
		switch {
		case edge <= 0:
			return fmt.Errorf("invalid edge: %d", edge)
		case conf.Width%edge != 0:
			return fmt.Errorf("edge %d does not divide width %d", edge, conf.Width)
		case conf.Height%edge != 0:
			return fmt.Errorf("edge %d does not divide height %d", edge, conf.Height)
		}
	}

	output, err := filepath.Abs(conf.Output)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", conf.Output, err)
	}
	conf.Output = output

	if conf.Format, err = raster.FormatFromPath(conf.Output); err != nil {
		return err
	}

	return fileop.CheckDestination(conf.Output, conf.Overwrite)
}

func (c *CLICmd) Run(subCmd string) error {
	conf := c.params(subCmd)
	logger := slog.Default().With("cmd", subCmd, "dest", conf.Output)

	var img *bwimage.Image
	switch subCmd {
	case "solid":
		v, err := rle.ParsePixel(c.Solid.Value)
		if err != nil {
			return err
		}
		img = bwimage.New(conf.Width, conf.Height, v)
	case "chessboard":
		v, err := rle.ParsePixel(c.Chessboard.First)
		if err != nil {
			return err
		}
		counters := instr.New()
		counters.SetName(instr.Runs, "runs")
		counters.SetName(instr.Bytes, "memory_bytes")
		img = bwimage.NewChessboard(conf.Width, conf.Height, c.Chessboard.Edge, v, counters)
		logger.Debug("chessboard built", "counters", counters)
	}
	defer img.Destroy()

	if err := raster.Save(logger, img, conf.Format, conf.Output, nil); err != nil {
		return err
	}
	logger.Info("image created", "width", img.Width(), "height", img.Height(), "runs", img.RunCount())
	return nil
}
