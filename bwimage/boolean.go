package bwimage

import (
	"fmt"

	"rlebw/instr"
	"rlebw/rle"
)

// Neg complements every pixel of img. Rows keep their runs, only the
// first value is flipped, so nothing is decoded.
func Neg(img *Image) *Image {
	img.mustBeValid()
	res := newImage(img.width, img.height)
	for i, row := range img.rows {
		res.rows[i] = row.Negated()
	}
	return res
}

func mustHaveSameSize(a, b *Image) {
	a.mustBeValid()
	b.mustBeValid()
	if a.width != b.width || a.height != b.height {
		panic(fmt.Sprintf("bwimage: size mismatch %dx%d != %dx%d", a.width, a.height, b.width, b.height))
	}
}

// Combine applies op pixel by pixel to two images of the same size. Rows
// are merged run by run; instr.Ops is incremented once per merged span.
func Combine(op rle.Op, a, b *Image, c *instr.Counters) *Image {
	mustHaveSameSize(a, b)
	res := newImage(a.width, a.height)
	for y := range res.rows {
		row, steps := rle.Merge(a.rows[y], b.rows[y], op)
		c.Increment(instr.Ops, steps)
		res.rows[y] = row
	}
	return res
}

// CombineDecoded computes the same result as Combine by decoding both rows,
// applying op to every pixel and encoding the result. instr.Ops is
// incremented once per pixel.
func CombineDecoded(op rle.Op, a, b *Image, c *instr.Counters) *Image {
	mustHaveSameSize(a, b)
	res := newImage(a.width, a.height)

	raw1 := make([]byte, 0, a.width)
	raw2 := make([]byte, 0, a.width)
	for y := range res.rows {
		raw1 = rle.AppendDecoded(raw1[:0], a.rows[y])
		raw2 = rle.AppendDecoded(raw2[:0], b.rows[y])
		for x := range raw1 {
			raw1[x] = op.Apply(raw1[x], raw2[x])
		}
		c.Increment(instr.Ops, a.width)
		res.rows[y] = rle.Encode(a.width, raw1)
	}
	return res
}

func And(a, b *Image, c *instr.Counters) *Image {
	return Combine(rle.And, a, b, c)
}

func Or(a, b *Image, c *instr.Counters) *Image {
	return Combine(rle.Or, a, b, c)
}

func Xor(a, b *Image, c *instr.Counters) *Image {
	return Combine(rle.Xor, a, b, c)
}

func AndDecoded(a, b *Image, c *instr.Counters) *Image {
	return CombineDecoded(rle.And, a, b, c)
}

func OrDecoded(a, b *Image, c *instr.Counters) *Image {
	return CombineDecoded(rle.Or, a, b, c)
}

func XorDecoded(a, b *Image, c *instr.Counters) *Image {
	return CombineDecoded(rle.Xor, a, b, c)
}
