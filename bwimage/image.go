// Package bwimage stores binary images as a sequence of run-length encoded
// rows and implements the operations on them: construction, comparison,
// boolean combination and geometric transformations.
//
// Every operation leaves its operands untouched and returns a new image
// that shares no row memory with them. Misuse (nil or destroyed images,
// mismatched sizes, invalid dimensions) panics.
package bwimage

import (
	"fmt"
	"unsafe"

	"rlebw/instr"
	"rlebw/rle"
)

type Image struct {
	width, height int
	rows          []rle.Row
}

const intSize = int(unsafe.Sizeof(int(0)))

// newImage allocates the header and the row table. Rows are filled in by
// the caller.
func newImage(width, height int) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("bwimage: invalid size %dx%d", width, height))
	}
	return &Image{
		width:  width,
		height: height,
		rows:   make([]rle.Row, height),
	}
}

func (img *Image) mustBeValid() {
	if img == nil || img.rows == nil {
		panic("bwimage: nil or destroyed image")
	}
}

// New creates an image with every pixel set to value.
func New(width, height int, value uint8) *Image {
	img := newImage(width, height)
	for i := range img.rows {
		img.rows[i] = rle.Solid(width, value)
	}
	return img
}

// NewChessboard creates an image tiled with edge x edge squares of
// alternating colour, the top left square having value first. Both
// dimensions must be multiples of edge.
//
// Counter instr.Runs receives the number of runs of every row and
// instr.Bytes the memory taken by the image.
func NewChessboard(width, height, edge int, first uint8, c *instr.Counters) *Image {
	if edge <= 0 || width%edge != 0 || height%edge != 0 {
		panic(fmt.Sprintf("bwimage: edge %d does not divide %dx%d", edge, width, height))
	}
	if first > rle.Black {
		panic(fmt.Sprintf("bwimage: invalid pixel value %d", first))
	}

	img := newImage(width, height)
	c.Increment(instr.Bytes, int(unsafe.Sizeof(Image{}))+height*int(unsafe.Sizeof(rle.Row{})))

	raw := make([]byte, width)
	for i := range img.rows {
		v := first ^ uint8((i/edge)%2)
		for j := range raw {
			raw[j] = v
			if (j+1)%edge == 0 {
				v ^= 1
			}
		}

		row := rle.Encode(width, raw)
		c.Increment(instr.Bytes, rle.EncodedSize(row)*intSize)
		c.Increment(instr.Runs, rle.RunCount(row))
		img.rows[i] = row
	}

	return img
}

// FromRows builds an image from already encoded rows, taking ownership of
// them. Every row must encode exactly width pixels.
func FromRows(width int, rows []rle.Row) (*Image, error) {
	if width <= 0 || len(rows) == 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, len(rows))
	}
	for i, row := range rows {
		if err := row.Valid(width); err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", i, err)
		}
	}
	return &Image{width: width, height: len(rows), rows: rows}, nil
}

// Destroy releases the rows of img. Destroying a nil or already destroyed
// image does nothing; using a destroyed image in any other way panics.
func (img *Image) Destroy() {
	if img == nil || img.rows == nil {
		return
	}
	for i := range img.rows {
		img.rows[i] = rle.Row{}
	}
	img.rows = nil
	img.width, img.height = 0, 0
}

func (img *Image) Width() int {
	img.mustBeValid()
	return img.width
}

func (img *Image) Height() int {
	img.mustBeValid()
	return img.height
}

// Row returns a copy of row y.
func (img *Image) Row(y int) rle.Row {
	img.mustBeValid()
	return img.rows[y].Clone()
}

// AppendRow appends the pixels of row y to dst.
func (img *Image) AppendRow(dst []byte, y int) []byte {
	img.mustBeValid()
	return rle.AppendDecoded(dst, img.rows[y])
}

func (img *Image) Pixel(x, y int) uint8 {
	img.mustBeValid()
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(fmt.Sprintf("bwimage: pixel (%d,%d) outside %dx%d", x, y, img.width, img.height))
	}
	return img.rows[y].Pixel(x)
}

// EncodedSize is the total number of integers of all rows in the classic
// array layout.
func (img *Image) EncodedSize() int {
	img.mustBeValid()
	n := 0
	for _, row := range img.rows {
		n += rle.EncodedSize(row)
	}
	return n
}

// RunCount is the total number of runs of all rows.
func (img *Image) RunCount() int {
	img.mustBeValid()
	n := 0
	for _, row := range img.rows {
		n += rle.RunCount(row)
	}
	return n
}

func (img *Image) String() string {
	if img == nil || img.rows == nil {
		return "Image(destroyed)"
	}
	return fmt.Sprintf("Image(%d,%d)", img.width, img.height)
}

// IsEqual reports whether a and b have the same size and the same pixels.
// Rows are compared span by span, never by their run arrays.
func IsEqual(a, b *Image) bool {
	a.mustBeValid()
	b.mustBeValid()
	if a.width != b.width || a.height != b.height {
		return false
	}
	for y := range a.rows {
		if !rle.Equal(a.rows[y], b.rows[y]) {
			return false
		}
	}
	return true
}

func IsDifferent(a, b *Image) bool {
	return !IsEqual(a, b)
}
