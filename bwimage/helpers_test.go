package bwimage

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"rlebw/rle"
)

// fromPixels builds an image from a grid of 0/1 values.
func fromPixels(t *testing.T, pixels [][]byte) *Image {
	t.Helper()
	rows := make([]rle.Row, len(pixels))
	for y, raw := range pixels {
		rows[y] = rle.Encode(len(raw), raw)
	}
	img, err := FromRows(len(pixels[0]), rows)
	require.NoError(t, err)
	return img
}

func pixels(img *Image) [][]byte {
	res := make([][]byte, img.Height())
	for y := range res {
		res[y] = rle.Decode(img.Width(), img.Row(y))
	}
	return res
}

func aRandomImage(r *rand.Rand, width, height int, density float64) *Image {
	img := newImage(width, height)
	raw := make([]byte, width)
	for y := range img.rows {
		for x := range raw {
			raw[x] = 0
			if r.Float64() < density {
				raw[x] = 1
			}
		}
		img.rows[y] = rle.Encode(width, raw)
	}
	return img
}

// fixtures returns pairs of same-sized images covering single-run,
// maximally fragmented and random content.
func fixtures(r *rand.Rand) map[string][2]*Image {
	res := map[string][2]*Image{
		"solid": {New(13, 3, rle.White), New(13, 3, rle.Black)},
		"1x1":   {New(1, 1, rle.Black), New(1, 1, rle.White)},
		"chess": {NewChessboard(12, 6, 1, rle.Black, nil), NewChessboard(12, 6, 1, rle.White, nil)},
		"mixed": {NewChessboard(12, 12, 3, rle.Black, nil), NewChessboard(12, 12, 2, rle.White, nil)},
	}
	for i := range 10 {
		w, h := 1+r.IntN(200), 1+r.IntN(20)
		res[fmt.Sprintf("random%d", i)] = [2]*Image{
			aRandomImage(r, w, h, r.Float64()),
			aRandomImage(r, w, h, r.Float64()),
		}
	}
	return res
}

func assertImagesIdentical(t *testing.T, want, got *Image) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width(), "width")
	require.Equal(t, want.Height(), got.Height(), "height")
	for y := range want.Height() {
		require.Equal(t, rle.Decode(want.Width(), want.Row(y)), rle.Decode(got.Width(), got.Row(y)), "row %d", y)
	}
}
