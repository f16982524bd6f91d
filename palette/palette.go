// Package palette maps the two pixel values of a binary image to colours.
//
// A palette is a color.Palette of exactly two entries: index 0 is the
// colour of white pixels and index 1 the colour of black pixels, so a
// pixel value can be used directly as a palette index.
package palette

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"
)

// BW is the default palette.
var BW = color.Palette{color.White, color.Black}

var builtin = map[string]color.Palette{
	"bw":       BW,
	"inverted": {color.Black, color.White},
	"amber":    {color.RGBA{0x1a, 0x10, 0x00, 0xff}, color.RGBA{0xff, 0xb0, 0x00, 0xff}},
	"green":    {color.RGBA{0x00, 0x1a, 0x00, 0xff}, color.RGBA{0x33, 0xff, 0x33, 0xff}},
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPalette returns the built-in palette called name, or reads the first
// palette of the RIFF PAL file at path name.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q, expected one of %s or a PAL file: %w",
			name, strings.Join(Names(), ", "), err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}
	if len(pals) == 0 {
		return nil, fmt.Errorf("no palette in %q", name)
	}
	if err := Check(pals[0]); err != nil {
		return nil, fmt.Errorf("invalid palette %q: %w", name, err)
	}
	return pals[0], nil
}

// Check fails unless pal has exactly two colours.
func Check(pal color.Palette) error {
	if len(pal) != 2 {
		return fmt.Errorf("palette has %d colors, expected 2", len(pal))
	}
	return nil
}
