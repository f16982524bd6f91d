package bwimage

import (
	"bufio"
	"fmt"
	"io"

	"rlebw/rle"
)

// WriteRaw dumps img as text, one character per pixel.
func (img *Image) WriteRaw(w io.Writer) error {
	img.mustBeValid()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width = %d height = %d\nRAW image:\n", img.width, img.height)

	raw := make([]byte, 0, img.width)
	for _, row := range img.rows {
		raw = rle.AppendDecoded(raw[:0], row)
		for i := range raw {
			raw[i] += '0'
		}
		bw.Write(raw)
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

// WriteRLE dumps the encoded rows of img: the first value, the run lengths
// and -1 as end of row marker.
func (img *Image) WriteRLE(w io.Writer) error {
	img.mustBeValid()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width = %d height = %d\nRLE encoding:\n", img.width, img.height)
	for _, row := range img.rows {
		fmt.Fprintf(bw, "%s -1\n", row)
	}
	bw.WriteByte('\n')

	return bw.Flush()
}
