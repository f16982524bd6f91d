// Package rle implements the run-length encoding of a single row of a
// binary image.
//
// A Row stores the value of its first pixel and the lengths of the runs
// that follow. Run values alternate starting from the first value, so the
// encoding of a given pixel sequence is unique. Rows are immutable once
// built; every function that derives a row from another one allocates a
// fresh run slice.
package rle

import (
	"fmt"
	"slices"
	"strings"
)

// Pixel values.
const (
	White uint8 = 0
	Black uint8 = 1
)

type Row struct {
	first uint8
	runs  []int
}

// ParsePixel maps "white"/"black" (or "0"/"1") to a pixel value.
func ParsePixel(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "white", "0":
		return White, nil
	case "black", "1":
		return Black, nil
	}
	return 0, fmt.Errorf("invalid pixel value %q, should be white or black", s)
}

// Solid returns a row made of a single run.
func Solid(width int, value uint8) Row {
	if width <= 0 {
		panic(fmt.Sprintf("rle: invalid width %d", width))
	}
	if value > Black {
		panic(fmt.Sprintf("rle: invalid pixel value %d", value))
	}
	return Row{first: value, runs: []int{width}}
}

func (r Row) First() uint8 {
	return r.first
}

// Runs returns a copy of the run lengths.
func (r Row) Runs() []int {
	return slices.Clone(r.runs)
}

// Width is the sum of the run lengths.
func (r Row) Width() int {
	w := 0
	for _, n := range r.runs {
		w += n
	}
	return w
}

// Valid reports whether r is a well formed encoding of width pixels.
func (r Row) Valid(width int) error {
	if width <= 0 {
		return fmt.Errorf("rle: invalid width %d", width)
	}
	if r.first > Black {
		return fmt.Errorf("rle: invalid first value %d", r.first)
	}
	if len(r.runs) == 0 {
		return fmt.Errorf("rle: empty row")
	}
	sum := 0
	for i, n := range r.runs {
		if n <= 0 {
			return fmt.Errorf("rle: run %d has length %d", i, n)
		}
		sum += n
	}
	if sum != width {
		return fmt.Errorf("rle: runs cover %d pixels, expected %d", sum, width)
	}
	return nil
}

// Pixel returns the value of pixel x. It walks the runs, so it costs
// O(RunCount).
func (r Row) Pixel(x int) uint8 {
	if x < 0 {
		panic(fmt.Sprintf("rle: pixel %d out of range", x))
	}
	v := r.first
	for _, n := range r.runs {
		if x < n {
			return v
		}
		x -= n
		v ^= 1
	}
	panic("rle: pixel out of range")
}

// Clone returns a copy of r that shares no memory with it.
func (r Row) Clone() Row {
	return Row{first: r.first, runs: slices.Clone(r.runs)}
}

// Negated returns a copy of r with every pixel complemented. Only the
// first value changes; run boundaries stay where they are.
func (r Row) Negated() Row {
	return Row{first: r.first ^ 1, runs: slices.Clone(r.runs)}
}

// Reversed returns the row read right to left.
func (r Row) Reversed() Row {
	k := len(r.runs)
	if k == 0 {
		return Row{}
	}
	out := Row{
		first: r.first ^ uint8((k-1)&1),
		runs:  make([]int, k),
	}
	for i, n := range r.runs {
		out.runs[k-1-i] = n
	}
	return out
}

func (r Row) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", r.first)
	for _, n := range r.runs {
		fmt.Fprintf(&sb, " %d", n)
	}
	return sb.String()
}

// RunCount is the number of runs in row.
func RunCount(row Row) int {
	return len(row.runs)
}

// EncodedSize is the number of integers the row takes in the classic
// array layout: the first value, one entry per run and a terminator.
func EncodedSize(row Row) int {
	return len(row.runs) + 2
}
