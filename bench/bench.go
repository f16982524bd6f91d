// Package bench measures the cost of the boolean operators and of the
// chessboard generator with the instr counters.
package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"rlebw/bwimage"
	"rlebw/instr"
	"rlebw/rle"
)

// Pattern of the left operand of the AND benchmark. The right operand is
// always solid black.
type Pattern string

const (
	PatternSolid      Pattern = "solid"
	PatternChessboard Pattern = "chessboard"
)

type AndResult struct {
	Width   int
	Elapsed time.Duration
	Ops     uint64
}

type ChessboardResult struct {
	Size  int
	Edge  int
	Runs  uint64
	Bytes uint64
}

// RunAnd times the AND of two images of the given height for every width.
func RunAnd(logger *slog.Logger, height int, widths []int, pattern Pattern, decoded bool) []AndResult {
	counters := instr.New()
	counters.SetName(instr.Ops, "oper")

	and := bwimage.And
	if decoded {
		and = bwimage.AndDecoded
	}

	res := make([]AndResult, 0, len(widths))
	for _, width := range widths {
		var left *bwimage.Image
		switch pattern {
		case PatternChessboard:
			left = bwimage.NewChessboard(width, height, 1, rle.White, nil)
		default:
			left = bwimage.New(width, height, rle.White)
		}
		right := bwimage.New(width, height, rle.Black)

		counters.Reset()
		start := time.Now()
		out := and(left, right, counters)
		elapsed := time.Since(start)

		r := AndResult{Width: width, Elapsed: elapsed, Ops: counters.Count(instr.Ops)}
		logger.Debug("and", "width", width, "height", height, "elapsed", elapsed, "counters", counters)
		res = append(res, r)

		out.Destroy()
		left.Destroy()
		right.Destroy()
	}
	return res
}

// RunChessboard records the runs and memory of square chessboards for
// every size and edge where edge divides size.
func RunChessboard(logger *slog.Logger, sizes, edges []int) []ChessboardResult {
	counters := instr.New()
	counters.SetName(instr.Runs, "runs")
	counters.SetName(instr.Bytes, "memory_bytes")

	var res []ChessboardResult
	for _, size := range sizes {
		for _, edge := range edges {
			if edge <= 0 || size%edge != 0 {
				logger.Debug("skipping", "size", size, "edge", edge)
				continue
			}

			counters.Reset()
			img := bwimage.NewChessboard(size, size, edge, rle.White, counters)
			res = append(res, ChessboardResult{
				Size:  size,
				Edge:  edge,
				Runs:  counters.Count(instr.Runs),
				Bytes: counters.Count(instr.Bytes),
			})
			img.Destroy()
		}
	}
	return res
}

func WriteAndCSV(w io.Writer, res []AndResult) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"WIDTH", "Time(s)", "Operations"}}
	for _, r := range res {
		records = append(records, []string{
			strconv.Itoa(r.Width),
			strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 6, 64),
			strconv.FormatUint(r.Ops, 10),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("could not write results: %w", err)
	}
	return nil
}

func WriteChessboardCSV(w io.Writer, res []ChessboardResult) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"Size", "SquareEdge", "Runs", "MemoryBytes"}}
	for _, r := range res {
		records = append(records, []string{
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Edge),
			strconv.FormatUint(r.Runs, 10),
			strconv.FormatUint(r.Bytes, 10),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("could not write results: %w", err)
	}
	return nil
}
