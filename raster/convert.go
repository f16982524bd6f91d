// Package raster converts between run-length encoded binary images and
// the standard image.Image types, and loads and saves them in the common
// raster file formats.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"rlebw/bwimage"
	"rlebw/palette"
	"rlebw/rle"
)

// Options control the conversion of an arbitrary image to a binary one.
type Options struct {
	// Width and Height bound the size of the result. Zero keeps the source
	// size on that axis; when only one is given the aspect ratio is kept.
	Width, Height int
	// Dither selects Floyd-Steinberg error diffusion instead of
	// thresholding on OKLab lightness.
	Dither bool
}

// ToPaletted renders img with pal (palette.BW when nil). The palette
// index of every pixel is its value.
func ToPaletted(img *bwimage.Image, pal color.Palette) (*image.Paletted, error) {
	if pal == nil {
		pal = palette.BW
	}
	if err := palette.Check(pal); err != nil {
		return nil, err
	}

	width, height := img.Width(), img.Height()
	dest := image.NewPaletted(image.Rect(0, 0, width, height), pal)
	for y := range height {
		// Decodes straight into Pix.
		start := y * dest.Stride
		img.AppendRow(dest.Pix[start:start], y)
	}
	return dest, nil
}

// FromImage converts src to a binary image. Transparent areas are laid
// over white before the conversion.
func FromImage(logger *slog.Logger, src image.Image, opts Options) (*bwimage.Image, error) {
	sr := src.Bounds()
	if sr.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	dr := fitBounds(sr, opts.Width, opts.Height)
	flat := image.NewRGBA64(dr)
	draw.Draw(flat, dr, image.NewUniform(color.White), image.Point{}, draw.Src)
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		draw.Draw(flat, dr, src, sr.Min, draw.Over)
	} else {
		logger.Info("resizing", "width", dr.Dx(), "height", dr.Dy())
		draw.CatmullRom.Scale(flat, dr, src, sr, draw.Over, nil)
	}

	quant := image.NewPaletted(dr, palette.BW)
	if opts.Dither {
		draw.FloydSteinberg.Draw(quant, dr, flat, dr.Min)
	} else {
		quantize(quant, flat, palette.NewLab(palette.BW))
	}

	width := dr.Dx()
	rows := make([]rle.Row, dr.Dy())
	for y := range rows {
		start := y * quant.Stride
		rows[y] = rle.Encode(width, quant.Pix[start:start+width])
	}
	return bwimage.FromRows(width, rows)
}

// quantize maps every pixel of src to the perceptually nearest colour of
// lab.
func quantize(dest *image.Paletted, src *image.RGBA64, lab palette.Lab) {
	r := dest.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dest.Pix[dest.PixOffset(r.Min.X, y):]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x-r.Min.X] = uint8(lab.Index(src.RGBA64At(x, y)))
		}
	}
}

// fitBounds returns the destination rectangle, anchored at the origin, for
// a source of bounds sr scaled to fit within width x height.
func fitBounds(sr image.Rectangle, width, height int) image.Rectangle {
	srcWidth, srcHeight := float64(sr.Dx()), float64(sr.Dy())

	destWidth := float64(width)
	destHeight := float64(height)
	switch {
	case width == 0 && height == 0:
		return image.Rect(0, 0, sr.Dx(), sr.Dy())
	case width == 0:
		destWidth = destHeight * srcWidth / srcHeight
	case height == 0:
		destHeight = destWidth * srcHeight / srcWidth
	default:
		srcAR := srcWidth / srcHeight
		destAR := destWidth / destHeight
		if srcAR < destAR {
			destWidth = destHeight * srcAR
		} else if srcAR > destAR {
			destHeight = destWidth / srcAR
		}
	}

	return image.Rect(0, 0, max(1, int(math.Round(destWidth))), max(1, int(math.Round(destHeight))))
}
