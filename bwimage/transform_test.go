package bwimage

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rlebw/rle"
)

func TestHorizontalMirror(t *testing.T) {
	img := fromPixels(t, [][]byte{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}})
	assert.Equal(t, [][]byte{{1, 1, 1}, {1, 0, 1}, {0, 0, 1}}, pixels(HorizontalMirror(img)))
}

func TestVerticalMirror(t *testing.T) {
	img := fromPixels(t, [][]byte{{0, 0, 1, 0}, {1, 0, 1, 1}})
	want := [][]byte{{0, 1, 0, 0}, {1, 1, 0, 1}}
	assert.Equal(t, want, pixels(VerticalMirror(img)))
	assert.Equal(t, want, pixels(VerticalMirrorDecoded(img)))
}

func TestMirrorInvolution(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for range 20 {
		img := aRandomImage(r, 1+r.IntN(150), 1+r.IntN(15), r.Float64())
		require.True(t, IsEqual(img, HorizontalMirror(HorizontalMirror(img))))
		require.True(t, IsEqual(img, VerticalMirror(VerticalMirror(img))))

		// Reversing the runs must match reversing the pixels.
		assertImagesIdentical(t, VerticalMirrorDecoded(img), VerticalMirror(img))
	}
}

func TestMirrorCopiesRows(t *testing.T) {
	img := New(5, 2, rle.Black)
	res := HorizontalMirror(img)
	img.Destroy()
	assert.Equal(t, [][]byte{{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}}, pixels(res))
}

func TestReplicateAtBottom(t *testing.T) {
	a := fromPixels(t, [][]byte{{1, 0, 0, 1}, {0, 0, 0, 0}})
	b := fromPixels(t, [][]byte{{1, 1, 1, 1}, {0, 1, 1, 0}, {1, 0, 1, 0}})
	res := ReplicateAtBottom(a, b)

	assert.Equal(t, 4, res.Width())
	assert.Equal(t, 5, res.Height())
	assert.Equal(t, append(pixels(a), pixels(b)...), pixels(res))
	assert.Panics(t, func() { ReplicateAtBottom(a, New(3, 1, rle.White)) })
}

func TestReplicateAtRight(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 14))
	a := aRandomImage(r, 3, 4, 0.5)
	b := aRandomImage(r, 5, 4, 0.5)
	res := ReplicateAtRight(a, b)

	require.Equal(t, 8, res.Width())
	require.Equal(t, 4, res.Height())
	for y := range 4 {
		for x := range 8 {
			var want uint8
			if x < 3 {
				want = a.Pixel(x, y)
			} else {
				want = b.Pixel(x-3, y)
			}
			require.Equal(t, want, res.Pixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assert.Panics(t, func() { ReplicateAtRight(a, New(5, 3, rle.White)) })
}

func TestReplicateMergesBoundaryRuns(t *testing.T) {
	res := ReplicateAtRight(New(3, 1, rle.Black), New(2, 1, rle.Black))
	assert.Equal(t, []int{5}, res.Row(0).Runs())
}
