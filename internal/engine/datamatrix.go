package engine

import (
	"context"
	"image"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/datamatrix"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
	"github.com/MeKo-Tech/labelscan/internal/utils"
)

// matrixTimeBudget bounds one region-decode invocation. The budget is a
// hard limit: an exhausted budget ends the probe loop without retry.
const matrixTimeBudget = 2 * time.Second

// matrixEngine is the specialized 2D-matrix region decoder. It probes a
// bounded number of image regions (equal to the max-codes cap) within a
// fixed time budget, reporting each region's decoded message.
type matrixEngine struct {
	budget time.Duration
}

// NewMatrixEngine returns the region-based DataMatrix decode engine.
func NewMatrixEngine() Engine { return &matrixEngine{budget: matrixTimeBudget} }

func (e *matrixEngine) Name() string { return "datamatrix-region" }

func (e *matrixEngine) Supports() []symbology.Symbology {
	return []symbology.Symbology{symbology.DataMatrix}
}

func (e *matrixEngine) Decode(ctx context.Context, img *image.Gray, opts Options) ([]Hit, error) {
	deadline := time.Now().Add(e.budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	maxProbes := opts.MaxCodes
	if maxProbes < 1 {
		maxProbes = 1
	}
	regions := probeRegions(img.Bounds())
	if len(regions) > maxProbes {
		regions = regions[:maxProbes]
	}

	reader := datamatrix.NewDataMatrixReader()
	defer reader.Reset()

	var hits []Hit
	seen := make(map[string]bool)
	for _, region := range regions {
		if time.Now().After(deadline) || ctx.Err() != nil {
			break
		}
		sub := utils.ToGray(img.SubImage(region))
		src := gozxing.NewLuminanceSourceFromImage(sub)
		bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
		if err != nil {
			continue
		}
		r, err := reader.Decode(bmp, nil)
		reader.Reset()
		if err != nil || r == nil {
			continue
		}
		text := r.GetText()
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true

		hit := Hit{Payload: text, Symbology: symbology.DataMatrix}
		if box, ok := rectFromPoints(r.GetResultPoints()); ok {
			hit.Box = box.Add(region.Min)
			hit.HasBox = true
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// probeRegions lists the sub-rectangles to try, most promising first: the
// whole frame, then the four quadrants, then the centered half-size window.
func probeRegions(b image.Rectangle) []image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return []image.Rectangle{b}
	}
	cx, cy := b.Min.X+w/2, b.Min.Y+h/2
	return []image.Rectangle{
		b,
		image.Rect(b.Min.X, b.Min.Y, cx, cy),
		image.Rect(cx, b.Min.Y, b.Max.X, cy),
		image.Rect(b.Min.X, cy, cx, b.Max.Y),
		image.Rect(cx, cy, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X+w/4, b.Min.Y+h/4, b.Max.X-w/4, b.Max.Y-h/4),
	}
}
