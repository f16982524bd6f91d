package rle

import "fmt"

// Encode compresses the first width bytes of raw. Every encoded byte must
// be White or Black.
func Encode(width int, raw []byte) Row {
	if width <= 0 {
		panic(fmt.Sprintf("rle: invalid width %d", width))
	}
	if len(raw) < width {
		panic(fmt.Sprintf("rle: raw row has %d pixels, expected %d", len(raw), width))
	}

	k := 1
	for i := range width {
		if raw[i] > Black {
			panic(fmt.Sprintf("rle: invalid pixel value %d at %d", raw[i], i))
		}
		if i > 0 && raw[i] != raw[i-1] {
			k++
		}
	}

	row := Row{first: raw[0], runs: make([]int, 0, k)}
	n := 1
	for i := 1; i < width; i++ {
		if raw[i] != raw[i-1] {
			row.runs = append(row.runs, n)
			n = 0
		}
		n++
	}
	row.runs = append(row.runs, n)

	return row
}

// Decode expands row into width bytes. The row must encode exactly width
// pixels.
func Decode(width int, row Row) []byte {
	if err := row.Valid(width); err != nil {
		panic(err.Error())
	}
	return AppendDecoded(make([]byte, 0, width), row)
}

// AppendDecoded appends the pixels of row to dst and returns the extended
// slice.
func AppendDecoded(dst []byte, row Row) []byte {
	if len(row.runs) == 0 {
		panic("rle: empty row")
	}
	v := row.first
	for _, n := range row.runs {
		if n <= 0 {
			panic(fmt.Sprintf("rle: invalid run length %d", n))
		}
		for range n {
			dst = append(dst, v)
		}
		v ^= 1
	}
	return dst
}
