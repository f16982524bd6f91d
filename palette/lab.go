package palette

import (
	"image/color"
	"math"

	"rlebw/okcolor"
)

// Lab is a palette converted to OKLab for perceptual nearest colour
// matching.
type Lab []okcolor.Lab

func NewLab(pal color.Palette) Lab {
	p := make(Lab, len(pal))
	for i, col := range pal {
		p[i] = okcolor.ToLab(col)
	}
	return p
}

// Index returns the index of the palette colour perceptually closest to c.
func (p Lab) Index(c color.Color) int {
	lc := okcolor.ToLab(c)
	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p {
		sum := lc.Distance(v)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Convert returns the palette colour perceptually closest to c.
func (p Lab) Convert(c color.Color) color.Color {
	if len(p) == 0 {
		return nil
	}
	return p[p.Index(c)]
}
