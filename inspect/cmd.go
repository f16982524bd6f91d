package inspect

import (
	"errors"
	"fmt"
	"io"

	"rlebw/bwimage"
	"rlebw/pbm"
)

// ErrDifferent is returned by compare when the images differ.
var ErrDifferent = errors.New("images are different")

type CLICmd struct {
	Info struct {
		Input string `arg:"" help:"PBM image" type:"existingfile"`
	} `cmd:"" help:"Print size and compression statistics"`
	Raw struct {
		Input string `arg:"" help:"PBM image" type:"existingfile"`
	} `cmd:"" help:"Print the pixels, one character per pixel"`
	Rle struct {
		Input string `arg:"" help:"PBM image" type:"existingfile"`
	} `cmd:"" help:"Print the run-length encoded rows"`
	Compare struct {
		First  string `arg:"" help:"First image" type:"existingfile"`
		Second string `arg:"" help:"Second image" type:"existingfile"`
	} `cmd:"" help:"Compare the pixels of two images"`
}

func (c *CLICmd) Run(subCmd string, out io.Writer) error {
	if subCmd == "compare" {
		return compare(out, c.Compare.First, c.Compare.Second)
	}

	var input string
	switch subCmd {
	case "info":
		input = c.Info.Input
	case "raw":
		input = c.Raw.Input
	case "rle":
		input = c.Rle.Input
	default:
		return fmt.Errorf("unsupported operation: %s", subCmd)
	}

	img, err := pbm.Load(input)
	if err != nil {
		return err
	}
	defer img.Destroy()

	switch subCmd {
	case "raw":
		return img.WriteRaw(out)
	case "rle":
		return img.WriteRLE(out)
	}
	return writeInfo(out, input, img)
}

func writeInfo(out io.Writer, name string, img *bwimage.Image) error {
	pixels := img.Width() * img.Height()
	runs := img.RunCount()
	_, err := fmt.Fprintf(out, "file: %s\nwidth: %d\nheight: %d\nruns: %d\nencoded size: %d\nruns per row: %.2f\n",
		name, img.Width(), img.Height(), runs, img.EncodedSize(), float64(runs)/float64(img.Height()))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "pixels per run: %.2f\n", float64(pixels)/float64(runs))
	return err
}

func compare(out io.Writer, first, second string) error {
	a, err := pbm.Load(first)
	if err != nil {
		return err
	}
	defer a.Destroy()

	b, err := pbm.Load(second)
	if err != nil {
		return err
	}
	defer b.Destroy()

	if bwimage.IsDifferent(a, b) {
		fmt.Fprintf(out, "%s and %s are different\n", first, second)
		return ErrDifferent
	}
	_, err = fmt.Fprintf(out, "%s and %s are equal\n", first, second)
	return err
}
