package overlay

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
)

// ColorClass selects the annotation color family for a result.
type ColorClass int

const (
	ClassLinear ColorClass = iota
	ClassMatrix
	ClassInverted
)

var (
	linearColor   = colorful.Color{R: 0, G: 0.8, B: 0.2}
	matrixColor   = colorful.Color{R: 1, G: 0.55, B: 0}
	invertedColor = colorful.Color{R: 0.85, G: 0, B: 0.85}
	headerShade   = colorful.Color{R: 40.0 / 255, G: 40.0 / 255, B: 40.0 / 255}
)

// ClassFor picks the color class. Inversion overrides the 1D/2D split so
// inverted hits stand out regardless of symbology family.
func ClassFor(r scanner.DecodeResult) ColorClass {
	if r.ColorInverted {
		return ClassInverted
	}
	if r.Symbology.Is2D() {
		return ClassMatrix
	}
	return ClassLinear
}

// RGBA returns the draw color for a class.
func (c ColorClass) RGBA() color.RGBA {
	var cf colorful.Color
	switch c {
	case ClassMatrix:
		cf = matrixColor
	case ClassInverted:
		cf = invertedColor
	default:
		cf = linearColor
	}
	return toRGBA(cf)
}

// BlendLabelBG mixes the class color into an existing pixel at 70% overlay
// strength for the label background fill.
func (c ColorClass) BlendLabelBG(under color.Color) color.RGBA {
	cu, _ := colorful.MakeColor(under)
	var cf colorful.Color
	switch c {
	case ClassMatrix:
		cf = matrixColor
	case ClassInverted:
		cf = invertedColor
	default:
		cf = linearColor
	}
	return toRGBA(cu.BlendRgb(cf, 0.7))
}

// BlendHeader darkens an original pixel for the summary band, keeping 30%
// of the source image visible.
func BlendHeader(under color.Color) color.RGBA {
	cu, _ := colorful.MakeColor(under)
	return toRGBA(cu.BlendRgb(headerShade, 0.7))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
