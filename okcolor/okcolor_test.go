package okcolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabExtremes(t *testing.T) {
	white := ToLab(color.White)
	assert.InDelta(t, 1.0, white.L, 1e-3)
	assert.InDelta(t, 0.0, white.A, 1e-3)
	assert.InDelta(t, 0.0, white.B, 1e-3)

	black := ToLab(color.Black)
	assert.InDelta(t, 0.0, black.L, 1e-9)
}

func TestLightnessIsPerceptual(t *testing.T) {
	green := ToLab(color.RGBA{0x00, 0xff, 0x00, 0xff})
	blue := ToLab(color.RGBA{0x00, 0x00, 0xff, 0xff})
	assert.Greater(t, green.L, 0.8)
	assert.Less(t, blue.L, 0.5)

	// sRGB 0x70 is below the RGB midpoint but perceptually light.
	grey := ToLab(color.Gray{0x70})
	assert.Greater(t, grey.L, 0.5)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{0x00, 0x00, 0x00, 0xff},
		{0xff, 0xff, 0xff, 0xff},
		{0x12, 0x80, 0xe0, 0xff},
		{0xff, 0xb0, 0x00, 0xff},
	} {
		got := color.RGBAModel.Convert(ToLab(c)).(color.RGBA)
		assert.InDelta(t, c.R, got.R, 1, "%v", c)
		assert.InDelta(t, c.G, got.G, 1, "%v", c)
		assert.InDelta(t, c.B, got.B, 1, "%v", c)
		assert.Equal(t, c.A, got.A, "%v", c)
	}
}

func TestDistance(t *testing.T) {
	white, black := ToLab(color.White), ToLab(color.Black)
	assert.InDelta(t, 1.0, white.Distance(black), 1e-3)
	assert.Zero(t, white.Distance(white))

	transparent := ToLab(color.Transparent)
	assert.InDelta(t, 1.0, black.Distance(transparent), 1e-9)
}
