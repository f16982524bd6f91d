package combine

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/instr"
	"rlebw/pbm"
	"rlebw/raster"
	"rlebw/rle"
)

type OutputParams struct {
	Output    string `help:"Destination file, format from the extension (pbm, png, gif, bmp, tiff)" short:"o" required:""`
	Overwrite bool   `help:"Replace the destination if it exists" default:"false"`
	Format    string `kong:"-"`
}

type BinaryParams struct {
	Left  string `arg:"" help:"First operand" type:"existingfile"`
	Right string `arg:"" help:"Second operand" type:"existingfile"`
	OutputParams
	Decoded bool `help:"Decode rows and combine pixel by pixel instead of merging runs" default:"false"`
	Stats   bool `help:"Print the operation counters" default:"false"`
}

type CLICmd struct {
	And struct {
		BinaryParams
	} `cmd:"" help:"Pixel-wise AND of two images of the same size"`
	Or struct {
		BinaryParams
	} `cmd:"" help:"Pixel-wise OR of two images of the same size"`
	Xor struct {
		BinaryParams
	} `cmd:"" help:"Pixel-wise XOR of two images of the same size"`
	Neg struct {
		Input string `arg:"" help:"Image to negate" type:"existingfile"`
		OutputParams
	} `cmd:"" help:"Complement every pixel"`
}

func (c *CLICmd) binary(subCmd string) *BinaryParams {
	switch subCmd {
	case "and":
		return &c.And.BinaryParams
	case "or":
		return &c.Or.BinaryParams
	case "xor":
		return &c.Xor.BinaryParams
	}
	return nil
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var out *OutputParams
	if p := c.binary(kctx.Selected().Name); p != nil {
		out = &p.OutputParams
	} else if kctx.Selected().Name == "neg" {
		out = &c.Neg.OutputParams
	} else {
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

func (c *CLICmd) Run(subCmd string, out io.Writer) error {
	if subCmd == "neg" {
		img, err := pbm.Load(c.Neg.Input)
		if err != nil {
			return err
		}
		defer img.Destroy()

		res := bwimage.Neg(img)
		defer res.Destroy()
		return raster.Save(slog.Default(), res, c.Neg.Format, c.Neg.Output, nil)
	}

	conf := c.binary(subCmd)
	op, err := rle.ParseOp(subCmd)
	if err != nil {
		return err
	}
	logger := slog.Default().With("op", op, "dest", conf.Output)

	left, err := pbm.Load(conf.Left)
	if err != nil {
		return err
	}
	defer left.Destroy()

	right, err := pbm.Load(conf.Right)
	if err != nil {
		return err
	}
	defer right.Destroy()

	if left.Width() != right.Width() || left.Height() != right.Height() {
		return fmt.Errorf("images have different sizes: %s and %s", left, right)
	}

	counters := instr.New()
	counters.SetName(instr.Ops, "oper")

	var res *bwimage.Image
	if conf.Decoded {
		res = bwimage.CombineDecoded(op, left, right, counters)
	} else {
		res = bwimage.Combine(op, left, right, counters)
	}
	defer res.Destroy()
	logger.Debug("combined", "decoded", conf.Decoded, "counters", counters)

	if conf.Stats {
		if err := writeStats(out, counters.Snapshot()); err != nil {
			return err
		}
	}

	return raster.Save(logger, res, conf.Format, conf.Output, nil)
}

// writeStats prints one "name: value" line per counter, sorted by name.
func writeStats(out io.Writer, stats map[string]uint64) error {
	for _, name := range slices.Sorted(maps.Keys(stats)) {
		if _, err := fmt.Fprintf(out, "%s: %d\n", name, stats[name]); err != nil {
			return err
		}
	}
	return nil
}
