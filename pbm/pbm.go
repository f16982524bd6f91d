// Package pbm reads and writes binary images in the raw PBM ("P4") format.
//
// A P4 file starts with an ASCII header: the magic "P4", the width and the
// height as decimal numbers separated by whitespace, with optional
// comments running from '#' to the end of the line, and a single
// whitespace byte. Rows follow, ceil(width/8) bytes each, most significant
// bit first, 1 meaning black. Padding bits at the end of a row are ignored
// on read and written as 0.
package pbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/rle"
)

const Magic = "P4"

// MaxDimension bounds the width and height accepted by Decode.
const MaxDimension = 1 << 24

// rowBatch caps the rows allocated ahead of the pixel data.
const rowBatch = 1024

// Decode reads a P4 image from r.
func Decode(r io.Reader) (*bwimage.Image, error) {
	br := bufio.NewReader(r)

	width, height, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	nbytes := (width + 7) / 8
	packed := make([]byte, nbytes)
	raw := make([]byte, nbytes*8)
	rows := make([]rle.Row, 0, min(height, rowBatch))
	for y := range height {
		if _, err := io.ReadFull(br, packed); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, &FormatError{Msg: fmt.Sprintf("short pixel data in row %d", y), Err: io.ErrUnexpectedEOF}
			}
			return nil, fmt.Errorf("could not read row %d: %w", y, err)
		}
		unpackBits(packed, raw)
		rows = append(rows, rle.Encode(width, raw))
	}

	return bwimage.FromRows(width, rows)
}

// Encode writes img to w in P4 format.
func Encode(w io.Writer, img *bwimage.Image) error {
	width, height := img.Width(), img.Height()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n", Magic, width, height); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	nbytes := (width + 7) / 8
	packed := make([]byte, nbytes)
	raw := make([]byte, 0, nbytes*8)
	for y := range height {
		raw = img.AppendRow(raw[:0], y)
		for len(raw) < nbytes*8 {
			raw = append(raw, rle.White)
		}
		packBits(raw, packed)
		if _, err := bw.Write(packed); err != nil {
			return fmt.Errorf("could not write row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write pixels: %w", err)
	}
	return nil
}

// Load reads the P4 file at path.
func Load(path string) (*bwimage.Image, error) {
	if err := fileop.CheckSource(path); err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		if errors.Is(err, ErrFormat) {
			return nil, err
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return img, nil
}

// Save writes img to path. The file is replaced atomically: on failure a
// previous file at path is left as it was.
func Save(img *bwimage.Image, path string) error {
	err := fileop.WriteFile(path, func(w io.Writer) error {
		return Encode(w, img)
	})
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// unpackBits expands every byte of packed into 8 pixels, most significant
// bit first. raw must hold 8*len(packed) bytes.
func unpackBits(packed, raw []byte) {
	for b, v := range packed {
		for offset := range 8 {
			raw[8*b+offset] = (v >> (7 - offset)) & 1
		}
	}
}

// packBits is the inverse of unpackBits.
func packBits(raw, packed []byte) {
	for b := range packed {
		var v byte
		for offset := range 8 {
			v = v<<1 | raw[8*b+offset]&1
		}
		packed[b] = v
	}
}
