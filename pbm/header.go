package pbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

func readHeader(br *bufio.Reader) (width, height int, err error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, 0, &FormatError{Msg: "missing magic", Err: io.ErrUnexpectedEOF}
		}
		return 0, 0, fmt.Errorf("could not read magic: %w", err)
	}
	if string(magic) != Magic {
		return 0, 0, formatErrorf("invalid magic %q", magic)
	}

	// The magic must be followed by whitespace or a comment.
	b, err := br.ReadByte()
	if err != nil {
		return 0, 0, headerError("width", err)
	}
	if !isSpace(b) && b != '#' {
		return 0, 0, formatErrorf("invalid magic %q", string(magic)+string(b))
	}
	if err := br.UnreadByte(); err != nil {
		return 0, 0, err
	}

	if width, err = readDimension(br, "width"); err != nil {
		return 0, 0, err
	}
	if height, err = readDimension(br, "height"); err != nil {
		return 0, 0, err
	}

	// Exactly one whitespace byte separates the header from the pixels.
	if b, err = br.ReadByte(); err != nil {
		return 0, 0, headerError("whitespace after height", err)
	}
	if !isSpace(b) {
		return 0, 0, formatErrorf("whitespace expected after height, got %q", b)
	}

	return width, height, nil
}

// readDimension skips whitespace and comments, then reads a positive
// decimal number.
func readDimension(br *bufio.Reader, name string) (int, error) {
	if err := skipSpaceAndComments(br); err != nil {
		return 0, headerError(name, err)
	}

	n, digits := 0, 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && digits > 0 {
				break
			}
			return 0, headerError(name, err)
		}
		if b < '0' || b > '9' {
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		n = n*10 + int(b-'0')
		digits++
		if n > MaxDimension {
			return 0, formatErrorf("%s exceeds %d", name, MaxDimension)
		}
	}

	switch {
	case digits == 0:
		b, _ := br.ReadByte()
		return 0, formatErrorf("invalid %s: unexpected %q", name, b)
	case n == 0:
		return 0, formatErrorf("invalid %s 0", name)
	}
	return n, nil
}

func skipSpaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(b):
		default:
			return br.UnreadByte()
		}
	}
}

func headerError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Msg: "truncated header reading " + what, Err: io.ErrUnexpectedEOF}
	}
	return fmt.Errorf("could not read %s: %w", what, err)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
