package transform

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/pbm"
	"rlebw/raster"
)

type OutputParams struct {
	Output    string `help:"Destination file, format from the extension (pbm, png, gif, bmp, tiff)" short:"o" required:""`
	Overwrite bool   `help:"Replace the destination if it exists" default:"false"`
	Format    string `kong:"-"`
}

type UnaryParams struct {
	Input string `arg:"" help:"Source image" type:"existingfile"`
	OutputParams
}

type BinaryParams struct {
	First  string `arg:"" help:"First image (top or left)" type:"existingfile"`
	Second string `arg:"" help:"Second image (bottom or right)" type:"existingfile"`
	OutputParams
}

type CLICmd struct {
	Hmirror struct {
		UnaryParams
	} `cmd:"" help:"Flip top to bottom"`
	Vmirror struct {
		UnaryParams
	} `cmd:"" help:"Flip left to right"`
	Bottom struct {
		BinaryParams
	} `cmd:"" help:"Place the second image under the first one"`
	Right struct {
		BinaryParams
	} `cmd:"" help:"Place the second image to the right of the first one"`
}

func (c *CLICmd) output(subCmd string) *OutputParams {
	switch subCmd {
	case "hmirror":
		return &c.Hmirror.OutputParams
	case "vmirror":
		return &c.Vmirror.OutputParams
	case "bottom":
		return &c.Bottom.OutputParams
	case "right":
		return &c.Right.OutputParams
	}
	return nil
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	out := c.output(kctx.Selected().Name)
	if out == nil {
		return nil
	}

	output, err := filepath.Abs(out.Output)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", out.Output, err)
	}
	out.Output = output

	if out.Format, err = raster.FormatFromPath(out.Output); err != nil {
		return err
	}

	return fileop.CheckDestination(out.Output, out.Overwrite)
}

func (c *CLICmd) Run(subCmd string) error {
	var res *bwimage.Image
	var err error
	switch subCmd {
	case "hmirror":
		res, err = unary(c.Hmirror.Input, bwimage.HorizontalMirror)
	case "vmirror":
		res, err = unary(c.Vmirror.Input, bwimage.VerticalMirror)
	case "bottom":
		res, err = binary(c.Bottom.BinaryParams, func(a, b *bwimage.Image) (*bwimage.Image, error) {
			if a.Width() != b.Width() {
				return nil, fmt.Errorf("images have different widths: %s and %s", a, b)
			}
			return bwimage.ReplicateAtBottom(a, b), nil
		})
	case "right":
		res, err = binary(c.Right.BinaryParams, func(a, b *bwimage.Image) (*bwimage.Image, error) {
			if a.Height() != b.Height() {
				return nil, fmt.Errorf("images have different heights: %s and %s", a, b)
			}
			return bwimage.ReplicateAtRight(a, b), nil
		})
	default:
		return fmt.Errorf("unsupported operation: %s", subCmd)
	}
	if err != nil {
		return err
	}
	defer res.Destroy()

	out := c.output(subCmd)
	if err := raster.Save(slog.Default(), res, out.Format, out.Output, nil); err != nil {
		return err
	}
	slog.Info("image transformed", "op", subCmd, "dest", out.Output, "width", res.Width(), "height", res.Height())
	return nil
}

func unary(path string, f func(*bwimage.Image) *bwimage.Image) (*bwimage.Image, error) {
	img, err := pbm.Load(path)
	if err != nil {
		return nil, err
	}
	defer img.Destroy()
	return f(img), nil
}

func binary(p BinaryParams, f func(a, b *bwimage.Image) (*bwimage.Image, error)) (*bwimage.Image, error) {
	a, err := pbm.Load(p.First)
	if err != nil {
		return nil, err
	}
	defer a.Destroy()

	b, err := pbm.Load(p.Second)
	if err != nil {
		return nil, err
	}
	defer b.Destroy()

	return f(a, b)
}
