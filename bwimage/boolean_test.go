package bwimage

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rlebw/instr"
	"rlebw/rle"
)

func TestAndScenario(t *testing.T) {
	res := And(New(4, 2, rle.White), New(4, 2, rle.Black), nil)
	assert.Equal(t, [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}}, pixels(res))
	for y := range 2 {
		assert.Equal(t, []int{4}, res.Row(y).Runs())
	}
}

func TestBooleanCorrectness(t *testing.T) {
	ops := map[rle.Op]func(a, b uint8) uint8{
		rle.And: func(a, b uint8) uint8 { return a & b },
		rle.Or:  func(a, b uint8) uint8 { return a | b },
		rle.Xor: func(a, b uint8) uint8 { return a ^ b },
	}

	for name, pair := range fixtures(rand.New(rand.NewPCG(3, 4))) {
		a, b := pair[0], pair[1]
		for op, f := range ops {
			t.Run(name+"/"+op.String(), func(t *testing.T) {
				res := Combine(op, a, b, nil)
				for y := range a.Height() {
					for x := range a.Width() {
						require.Equal(t, f(a.Pixel(x, y), b.Pixel(x, y)), res.Pixel(x, y), "pixel (%d,%d)", x, y)
					}
				}
			})
		}
	}
}

func TestCombinatorEquivalence(t *testing.T) {
	for name, pair := range fixtures(rand.New(rand.NewPCG(5, 6))) {
		for _, op := range []rle.Op{rle.And, rle.Or, rle.Xor} {
			t.Run(name+"/"+op.String(), func(t *testing.T) {
				merged := Combine(op, pair[0], pair[1], nil)
				decoded := CombineDecoded(op, pair[0], pair[1], nil)
				assertImagesIdentical(t, decoded, merged)
				for y := range merged.Height() {
					assert.Equal(t, decoded.Row(y), merged.Row(y), "row %d encoding", y)
				}
			})
		}
	}
}

func TestShortcuts(t *testing.T) {
	a := NewChessboard(6, 6, 3, rle.Black, nil)
	b := NewChessboard(6, 6, 2, rle.Black, nil)
	assertImagesIdentical(t, AndDecoded(a, b, nil), And(a, b, nil))
	assertImagesIdentical(t, OrDecoded(a, b, nil), Or(a, b, nil))
	assertImagesIdentical(t, XorDecoded(a, b, nil), Xor(a, b, nil))
}

func TestOperandsUntouched(t *testing.T) {
	a := NewChessboard(8, 4, 2, rle.Black, nil)
	b := New(8, 4, rle.Black)
	before := pixels(a)
	Xor(a, b, nil)
	Neg(a)
	assert.Equal(t, before, pixels(a))
}

func TestCombineCounters(t *testing.T) {
	a := NewChessboard(10, 3, 1, rle.White, nil)
	b := New(10, 3, rle.Black)

	c := instr.New()
	CombineDecoded(rle.And, a, b, c)
	assert.Equal(t, uint64(30), c.Count(instr.Ops), "one per pixel")

	c.Reset()
	Combine(rle.And, New(10, 3, rle.White), b, c)
	assert.Equal(t, uint64(3), c.Count(instr.Ops), "one span per row")

	c.Reset()
	Combine(rle.And, a, b, c)
	assert.Equal(t, uint64(30), c.Count(instr.Ops), "one span per pixel")
}

func TestCombineSizeMismatch(t *testing.T) {
	assert.Panics(t, func() { And(New(4, 2, rle.White), New(4, 3, rle.White), nil) })
	assert.Panics(t, func() { OrDecoded(New(4, 2, rle.White), New(5, 2, rle.White), nil) })
}

func TestNeg(t *testing.T) {
	img := fromPixels(t, [][]byte{{0, 1, 1}, {1, 1, 1}})
	neg := Neg(img)
	assert.Equal(t, [][]byte{{1, 0, 0}, {0, 0, 0}}, pixels(neg))
	for y := range img.Height() {
		assert.Equal(t, img.Row(y).Runs(), neg.Row(y).Runs())
	}
}

func TestNegInvolution(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for range 10 {
		img := aRandomImage(r, 1+r.IntN(300), 1+r.IntN(10), r.Float64())
		require.True(t, IsEqual(img, Neg(Neg(img))))
		require.True(t, IsDifferent(img, Neg(img)))
	}
}
