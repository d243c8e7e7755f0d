package preprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gray(v uint8) color.Gray { return color.Gray{Y: v} }

func gradientGray(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SetGray(x, y, gray(uint8((x*255)/(w-1))))
		}
	}
	return g
}

func TestAdaptiveThresholdBinarizes(t *testing.T) {
	src := gradientGray(64, 64)
	out := AdaptiveThreshold(src, thresholdBlock, thresholdOffset)
	require.Equal(t, src.Rect, out.Rect)
	for _, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("non-binary value %d", v)
		}
	}
}

func TestAdaptiveThresholdUniformImageGoesWhite(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	out := AdaptiveThreshold(src, thresholdBlock, thresholdOffset)
	// Uniform pixels sit above mean-offset everywhere.
	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestDenoiseRemovesSaltNoise(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 33, 33))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	src.SetGray(16, 16, gray(0))

	out := Denoise(src)
	assert.Equal(t, uint8(200), out.GrayAt(16, 16).Y)
}

func TestMorphClosePreservesSolidRegions(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 8; y < 24; y++ {
		for x := 8; x < 24; x++ {
			src.SetGray(x, y, gray(255))
		}
	}
	out := MorphClose(src)
	assert.Equal(t, uint8(255), out.GrayAt(16, 16).Y)
	assert.Equal(t, uint8(0), out.GrayAt(2, 2).Y)
}

func TestEqualizeLocalContrastKeepsUsableRange(t *testing.T) {
	// A low-contrast gradient confined to [100, 140].
	src := image.NewGray(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			src.SetGray(x, y, gray(uint8(100+(x*40)/255)))
		}
	}

	out := EqualizeLocalContrast(src, claheTiles, claheClipLimit)
	require.Equal(t, src.Rect, out.Rect)

	lo, hi := uint8(255), uint8(0)
	changed := false
	for i, v := range out.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		if v != src.Pix[i] {
			changed = true
		}
	}
	assert.True(t, changed, "mapping should remap the narrow input range")
	assert.GreaterOrEqual(t, int(hi)-int(lo), 30, "clipped equalization must not collapse contrast")
}
