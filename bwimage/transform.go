package bwimage

import (
	"fmt"

	"rlebw/rle"
)

// HorizontalMirror flips img top to bottom. Rows are copied as they are.
func HorizontalMirror(img *Image) *Image {
	img.mustBeValid()
	res := newImage(img.width, img.height)
	for i := range res.rows {
		res.rows[i] = img.rows[img.height-1-i].Clone()
	}
	return res
}

// VerticalMirror flips img left to right. Reversing a row reverses its
// runs, so rows are not decoded.
func VerticalMirror(img *Image) *Image {
	img.mustBeValid()
	res := newImage(img.width, img.height)
	for i, row := range img.rows {
		res.rows[i] = row.Reversed()
	}
	return res
}

// VerticalMirrorDecoded is VerticalMirror computed on decoded pixels.
func VerticalMirrorDecoded(img *Image) *Image {
	img.mustBeValid()
	res := newImage(img.width, img.height)
	raw := make([]byte, 0, img.width)
	for i, row := range img.rows {
		raw = rle.AppendDecoded(raw[:0], row)
		for l, r := 0, len(raw)-1; l < r; l, r = l+1, r-1 {
			raw[l], raw[r] = raw[r], raw[l]
		}
		res.rows[i] = rle.Encode(img.width, raw)
	}
	return res
}

// ReplicateAtBottom stacks b under a. Both must have the same width.
func ReplicateAtBottom(a, b *Image) *Image {
	a.mustBeValid()
	b.mustBeValid()
	if a.width != b.width {
		panic(fmt.Sprintf("bwimage: width mismatch %d != %d", a.width, b.width))
	}

	res := newImage(a.width, a.height+b.height)
	for i, row := range a.rows {
		res.rows[i] = row.Clone()
	}
	for i, row := range b.rows {
		res.rows[a.height+i] = row.Clone()
	}
	return res
}

// ReplicateAtRight places b to the right of a. Both must have the same
// height.
func ReplicateAtRight(a, b *Image) *Image {
	a.mustBeValid()
	b.mustBeValid()
	if a.height != b.height {
		panic(fmt.Sprintf("bwimage: height mismatch %d != %d", a.height, b.height))
	}

	res := newImage(a.width+b.width, a.height)
	raw := make([]byte, 0, res.width)
	for i := range res.rows {
		raw = rle.AppendDecoded(raw[:0], a.rows[i])
		raw = rle.AppendDecoded(raw, b.rows[i])
		res.rows[i] = rle.Encode(res.width, raw)
	}
	return res
}
