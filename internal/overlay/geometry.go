// Package overlay computes and renders the visual annotations for decoded
// barcodes. Geometry planning is a pure function so rendering only ever
// iterates plans that are known to be bounds-safe.
package overlay

import (
	"fmt"
	"image"

	"golang.org/x/image/font/basicfont"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/utils"
)

const (
	cornerSize     = 15
	labelPad       = 5
	labelMargin    = 10
	markerRadius   = 20
	markerMinEdge  = 25
	truncateAt     = 30
	truncateKeep   = 27
	headerHeight   = 80
	rectThickness  = 3
	bracketWeight  = 5
	markerRingSize = 2
)

// Font metrics for the fixed 7x13 face used for all overlay text.
var (
	textHeight  = basicfont.Face7x13.Height
	textAdvance = basicfont.Face7x13.Advance
)

// Plan holds the computed shapes, text, and color class for one result.
type Plan struct {
	Index     int
	Box       image.Rectangle
	Class     ColorClass
	Label     string
	LabelPos  image.Point // baseline-left anchor of the label text
	LabelBG   image.Rectangle
	DrawBG    bool
	Marker    image.Point // numbered circle center
	MarkerNum int
}

// ComputePlan derives the overlay plan for one result. It returns false for
// results that must be excluded from drawing: a non-positive box, or a box
// not fully inside the image bounds. Excluded results stay in the data list;
// only their visual plan is dropped.
func ComputePlan(r scanner.DecodeResult, index int, bounds image.Rectangle) (Plan, bool) {
	if !r.Drawable() {
		return Plan{}, false
	}
	if !r.Box.In(bounds) {
		return Plan{}, false
	}
	// Frames smaller than the marker footprint leave the clamp ranges
	// empty, so such frames get result data only, no annotation.
	if bounds.Dx() < 2*markerMinEdge || bounds.Dy() < 2*markerMinEdge {
		return Plan{}, false
	}

	p := Plan{
		Index:     index,
		Box:       r.Box,
		Class:     ClassFor(r),
		MarkerNum: index + 1,
	}
	p.Label = labelText(r)

	textW := len(p.Label) * textAdvance
	w, h := bounds.Dx(), bounds.Dy()

	// Prefer a label directly above the box; fall back to below when there
	// is not enough vertical room, then clamp inside the frame.
	var pos image.Point
	if r.Box.Min.Y > textHeight+labelMargin {
		pos = image.Pt(r.Box.Min.X, r.Box.Min.Y-labelMargin)
	} else {
		pos = image.Pt(r.Box.Min.X, r.Box.Max.Y+textHeight+labelMargin)
	}
	pos.X = utils.ClampInt(pos.X, 0, w-textW)
	if pos.X < 0 {
		pos.X = 0
	}
	pos.Y = utils.ClampInt(pos.Y, textHeight, h-labelMargin)
	p.LabelPos = pos

	bg := image.Rect(
		pos.X-labelPad,
		pos.Y-textHeight-labelPad,
		pos.X-labelPad+textW+2*labelPad,
		pos.Y-textHeight-labelPad+textHeight+2*labelPad,
	)
	p.LabelBG = bg
	p.DrawBG = bg.In(bounds)

	marker := image.Pt(r.Box.Min.X-markerRadius, r.Box.Min.Y-markerRadius)
	marker.X = utils.ClampInt(marker.X, markerMinEdge, w-markerMinEdge)
	marker.Y = utils.ClampInt(marker.Y, markerMinEdge, h-markerMinEdge)
	p.Marker = marker

	return p, true
}

// labelText builds "{1D|2D}[,INV] {symbology}: {payload}", truncated to 27
// characters plus an ellipsis once it exceeds 30.
func labelText(r scanner.DecodeResult) string {
	class := "1D"
	if r.Symbology.Is2D() {
		class = "2D"
	}
	if r.ColorInverted {
		class += ",INV"
	}
	s := fmt.Sprintf("%s %s: %s", class, r.SymbologyName, r.Payload)
	if len(s) > truncateAt {
		s = s[:truncateKeep] + "..."
	}
	return s
}

// Summary aggregates the header-band counters over all results, drawable or
// not.
type Summary struct {
	Total    int
	OneD     int
	TwoD     int
	Inverted int
}

// Summarize counts result classes for the header band.
func Summarize(results []scanner.DecodeResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Symbology.Is2D() {
			s.TwoD++
		} else {
			s.OneD++
		}
		if r.ColorInverted {
			s.Inverted++
		}
	}
	return s
}
