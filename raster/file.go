package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rlebw/bwimage"
	"rlebw/fileop"
	"rlebw/pbm"
)

// Formats lists the output formats accepted by Save.
var Formats = []string{"pbm", "png", "gif", "bmp", "tiff"}

// FormatFromPath guesses the output format from the extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "tif":
		ext = "tiff"
	case "":
		return "", fmt.Errorf("no extension in %q", path)
	}
	if !slices.Contains(Formats, ext) {
		return "", fmt.Errorf("unsupported output format: %s", ext)
	}
	return ext, nil
}

// Load reads a binary image from path. P4 files are decoded directly; any
// other format known to the image package is converted with opts.
func Load(logger *slog.Logger, path string, opts Options) (*bwimage.Image, error) {
	if err := fileop.CheckSource(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if close_err := f.Close(); close_err != nil {
			logger.Error("could not close image", "error", close_err)
		}
	}()

	br := bufio.NewReader(f)
	if magic, err := br.Peek(len(pbm.Magic)); err == nil && string(magic) == pbm.Magic {
		logger.Debug("decoding", "format", "pbm")
		img, err := pbm.Decode(br)
		if err != nil {
			return nil, fmt.Errorf("could not decode image %q: %w", path, err)
		}
		if opts.Width == 0 && opts.Height == 0 {
			return img, nil
		}
		return FromImage(logger, Image(img, nil), opts)
	}

	src, format, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	logger.Debug("decoding", "format", format, "width", src.Bounds().Dx(), "height", src.Bounds().Dy())

	return FromImage(logger, src, opts)
}

// Image returns img as an image.Image rendered with pal. It panics if pal
// does not have two colours.
func Image(img *bwimage.Image, pal color.Palette) image.Image {
	p, err := ToPaletted(img, pal)
	if err != nil {
		panic(err)
	}
	return p
}

// Save writes img to path in the given format, rendering pixels with pal
// (palette.BW when nil). The palette is ignored for pbm.
func Save(logger *slog.Logger, img *bwimage.Image, format, path string, pal color.Palette) error {
	logger.Debug("encoding", "format", format, "dest", path)
	if format == "pbm" {
		return pbm.Save(img, path)
	}

	p, err := ToPaletted(img, pal)
	if err != nil {
		return err
	}

	return fileop.WriteFile(path, func(w io.Writer) error {
		switch format {
		case "png":
			if err := pngEncoder.Encode(w, p); err != nil {
				return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
			}
		case "gif":
			if err := gif.Encode(w, p, &gif.Options{NumColors: 2}); err != nil {
				return fmt.Errorf("could not encode GIF destination %q: %w", path, err)
			}
		case "bmp":
			if err := bmp.Encode(w, p); err != nil {
				return fmt.Errorf("could not encode BMP destination %q: %w", path, err)
			}
		case "tiff":
			if err := tiff.Encode(w, p, &tiff.Options{Compression: tiff.Deflate}); err != nil {
				return fmt.Errorf("could not encode TIFF destination %q: %w", path, err)
			}
		default:
			return fmt.Errorf("unsupported output format: %s", format)
		}
		return nil
	})
}

// encoderBuffers recycles PNG encoder state across saves.
type encoderBuffers sync.Pool

func (p *encoderBuffers) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *encoderBuffers) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

var pngEncoder = png.Encoder{
	CompressionLevel: png.BestCompression,
	BufferPool:       &encoderBuffers{},
}
