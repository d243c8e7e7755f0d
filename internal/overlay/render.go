package overlay

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/utils"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// Render draws the annotated output image for a completed scan. The source
// image is never modified; all drawing happens on a fresh RGBA copy. A plan
// that fails to draw is logged and skipped so one bad result cannot poison
// the whole overlay.
func Render(src image.Image, results []scanner.DecodeResult) *image.RGBA {
	dst := utils.ToRGBA(src)
	bounds := dst.Bounds()

	for i, r := range results {
		plan, ok := ComputePlan(r, i, bounds)
		if !ok {
			slog.Debug("overlay plan skipped",
				"index", i,
				"symbology", r.SymbologyName)
			continue
		}
		drawPlan(dst, plan)
	}

	drawHeader(dst, Summarize(results))
	return dst
}

func drawPlan(dst *image.RGBA, p Plan) {
	col := p.Class.RGBA()

	utils.DrawRect(dst, p.Box, col, rectThickness)
	drawCornerBrackets(dst, p.Box, col)

	if p.DrawBG {
		fillBlended(dst, p.LabelBG, p.Class)
	}
	drawText(dst, p.LabelPos, p.Label, white)

	drawMarker(dst, p.Marker, p.MarkerNum, col)
}

// drawCornerBrackets emphasizes the four box corners with short thick arms.
func drawCornerBrackets(dst *image.RGBA, box image.Rectangle, col color.RGBA) {
	x0, y0 := box.Min.X, box.Min.Y
	x1, y1 := box.Max.X-1, box.Max.Y-1

	arms := [][2]image.Point{
		{image.Pt(x0, y0), image.Pt(x0+cornerSize, y0)},
		{image.Pt(x0, y0), image.Pt(x0, y0+cornerSize)},
		{image.Pt(x1, y0), image.Pt(x1-cornerSize, y0)},
		{image.Pt(x1, y0), image.Pt(x1, y0+cornerSize)},
		{image.Pt(x0, y1), image.Pt(x0+cornerSize, y1)},
		{image.Pt(x0, y1), image.Pt(x0, y1-cornerSize)},
		{image.Pt(x1, y1), image.Pt(x1-cornerSize, y1)},
		{image.Pt(x1, y1), image.Pt(x1, y1-cornerSize)},
	}
	for _, a := range arms {
		utils.DrawLine(dst, a[0], a[1], col, bracketWeight)
	}
}

func drawMarker(dst *image.RGBA, center image.Point, num int, col color.RGBA) {
	utils.DrawFilledCircle(dst, center, markerRadius, col)
	utils.DrawCircleOutline(dst, center, markerRadius, markerRingSize, black)

	label := fmt.Sprintf("%d", num)
	textW := len(label) * textAdvance
	pos := image.Pt(center.X-textW/2, center.Y+textHeight/2-2)
	drawText(dst, pos, label, white)
}

// fillBlended paints a rectangle by mixing the class color into each existing
// pixel, so the label background stays slightly translucent.
func fillBlended(dst *image.RGBA, r image.Rectangle, class ColorClass) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetRGBA(x, y, class.BlendLabelBG(dst.RGBAAt(x, y)))
		}
	}
}

// drawHeader overlays the darkened summary band across the top of the image
// with the total and per-class counters.
func drawHeader(dst *image.RGBA, s Summary) {
	bounds := dst.Bounds()
	bandH := headerHeight
	if bandH > bounds.Dy() {
		bandH = bounds.Dy()
	}
	for y := bounds.Min.Y; y < bounds.Min.Y+bandH; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetRGBA(x, y, BlendHeader(dst.RGBAAt(x, y)))
		}
	}

	line1 := fmt.Sprintf("Found: %d codes", s.Total)
	line2 := fmt.Sprintf("1D: %d | 2D: %d | Inverted: %d", s.OneD, s.TwoD, s.Inverted)
	drawText(dst, image.Pt(bounds.Min.X+10, bounds.Min.Y+30), line1, white)
	drawText(dst, image.Pt(bounds.Min.X+10, bounds.Min.Y+55), line2, white)
}

func drawText(dst *image.RGBA, pos image.Point, text string, col color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(pos.X, pos.Y),
	}
	d.DrawString(text)
}
