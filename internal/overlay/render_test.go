package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

func TestRenderLeavesSourceUntouched(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	orig := make([]byte, len(src.Pix))
	copy(orig, src.Pix)

	results := []scanner.DecodeResult{
		result(symbology.QRCode, "hello", image.Rect(100, 120, 180, 200)),
	}
	out := Render(src, results)

	require.NotNil(t, out)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, orig, src.Pix)
}

func TestRenderDarkensHeaderBand(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	out := Render(src, nil)

	inBand := out.RGBAAt(100, 10)
	belowBand := out.RGBAAt(100, headerHeight+40)
	assert.Less(t, inBand.R, uint8(255))
	assert.Equal(t, uint8(255), belowBand.R)
}

func TestRenderDrawsBoxOutline(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	box := image.Rect(100, 120, 180, 200)
	out := Render(src, []scanner.DecodeResult{result(symbology.Code128, "x", box)})

	edge := out.RGBAAt(140, 120)
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, edge)
}

func TestRenderSkipsUndrawableResultWithoutPanic(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	results := []scanner.DecodeResult{
		result(symbology.QRCode, "x", image.Rectangle{}),
		result(symbology.QRCode, "y", image.Rect(90, 90, 300, 300)),
		result(symbology.Code128, "z", image.Rect(10, 40, 60, 80)),
	}
	out := Render(src, results)
	require.NotNil(t, out)

	// The header still counts every result, drawable or not.
	s := Summarize(results)
	assert.Equal(t, 3, s.Total)
}
