package bench

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"rlebw/fileop"
)

type CLICmd struct {
	And struct {
		Height  int    `help:"Image height" default:"150"`
		Widths  []int  `help:"Image widths" default:"10,20,50,100,120,150,200"`
		Pattern string `help:"Left operand pattern" enum:"solid,chessboard" default:"solid"`
		Decoded bool   `help:"Benchmark the decode based operator" default:"false"`
		Output  string `help:"CSV destination, standard output when empty" short:"o"`
	} `cmd:"" help:"Time the AND operator for growing widths"`
	Chessboard struct {
		Sizes  []int  `help:"Image sizes" default:"100,500,1000,2000,5000,10000"`
		Edges  []int  `help:"Square edges" default:"1,10,25,50,100"`
		Output string `help:"CSV destination, standard output when empty" short:"o"`
	} `cmd:"" help:"Measure runs and memory of chessboard images"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var output *string
	switch kctx.Selected().Name {
	case "and":
		if c.And.Height <= 0 {
			return fmt.Errorf("invalid height: %d", c.And.Height)
		}
		for _, w := range c.And.Widths {
			if w <= 0 {
				return fmt.Errorf("invalid width: %d", w)
			}
		}
		output = &c.And.Output
	case "chessboard":
		for _, s := range c.Chessboard.Sizes {
			if s <= 0 {
				return fmt.Errorf("invalid size: %d", s)
			}
		}
		output = &c.Chessboard.Output
	default:
		return nil
	}

	if *output != "" {
		abs, err := filepath.Abs(*output)
		if err != nil {
			return fmt.Errorf("invalid output path %q: %w", *output, err)
		}
		*output = abs
	}
	return nil
}

func (c *CLICmd) Run(subCmd string, out io.Writer) error {
	logger := slog.Default().With("bench", subCmd)

	var output string
	var write func(io.Writer) error
	switch subCmd {
	case "and":
		res := RunAnd(logger, c.And.Height, c.And.Widths, Pattern(c.And.Pattern), c.And.Decoded)
		output = c.And.Output
		write = func(w io.Writer) error { return WriteAndCSV(w, res) }
	case "chessboard":
		res := RunChessboard(logger, c.Chessboard.Sizes, c.Chessboard.Edges)
		output = c.Chessboard.Output
		write = func(w io.Writer) error { return WriteChessboardCSV(w, res) }
	default:
		return fmt.Errorf("unsupported benchmark: %s", subCmd)
	}

	if output == "" {
		return write(out)
	}
	if err := fileop.WriteFile(output, write); err != nil {
		return err
	}
	logger.Info("results written", "dest", output)
	return nil
}
