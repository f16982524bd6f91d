package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}

	palVersion = []byte{0x00, 0x03}
)

// ReadFrom reads every palette of a RIFF PAL stream.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var res []color.Palette
	for {
		id, _, data, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, fmt.Errorf("could not read chunk #%d: %w", len(res), err)
		}
		if id != dataType {
			return res, fmt.Errorf("unsupported chunk type in #%d: %s", len(res), string(id[:]))
		}

		pal, err := readPalette(data)
		if err != nil {
			return res, fmt.Errorf("could not read chunk #%d: %w", len(res), err)
		}
		res = append(res, pal)
	}

	return res, nil
}

func readPalette(r io.Reader) (color.Palette, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}
	if buf[0] != palVersion[0] || buf[1] != palVersion[1] {
		return nil, fmt.Errorf("unsupported palette version: %d", binary.BigEndian.Uint16(buf))
	}

	count := binary.LittleEndian.Uint16(buf[2:])
	res := make(color.Palette, count)
	for i := range count {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		res[i] = color.RGBA{R: buf[0], G: buf[1], B: buf[2], A: 0xff}
	}

	return res, nil
}

// WriteTo writes pals as a RIFF PAL stream.
func WriteTo(w io.Writer, pals []color.Palette) error {
	n := 4
	for _, pal := range pals {
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	if err := writeBytes(w, riffType[:]); err != nil {
		return fmt.Errorf("could not write RIFF magic: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return fmt.Errorf("could not write document size: %w", err)
	}
	if err := writeBytes(w, palType[:]); err != nil {
		return fmt.Errorf("could not write content type: %w", err)
	}

	for i, pal := range pals {
		if err := writePalette(w, pal); err != nil {
			return fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}
	return nil
}

func writePalette(w io.Writer, pal color.Palette) error {
	chunk := make([]byte, 0, 8+4+len(pal)*4)
	chunk = append(chunk, dataType[:]...)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(4+len(pal)*4))
	chunk = append(chunk, palVersion...)
	chunk = binary.LittleEndian.AppendUint16(chunk, uint16(len(pal)))
	for _, col := range pal {
		c := color.RGBAModel.Convert(col).(color.RGBA)
		chunk = append(chunk, c.R, c.G, c.B, 0x00)
	}
	return writeBytes(w, chunk)
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}
	return nil
}
