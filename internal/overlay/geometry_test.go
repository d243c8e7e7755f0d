package overlay

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

func result(sym symbology.Symbology, payload string, box image.Rectangle) scanner.DecodeResult {
	return scanner.DecodeResult{
		Payload:       payload,
		Symbology:     sym,
		SymbologyName: sym.String(),
		Box:           box,
		Confidence:    1.0,
	}
}

func TestComputePlanSkipsDegenerateBox(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	r := result(symbology.QRCode, "x", image.Rect(10, 10, 10, 30))
	_, ok := ComputePlan(r, 0, bounds)
	assert.False(t, ok)
}

func TestComputePlanSkipsOutOfBoundsBox(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	r := result(symbology.QRCode, "x", image.Rect(600, 400, 700, 500))
	_, ok := ComputePlan(r, 0, bounds)
	assert.False(t, ok)
}

func TestComputePlanSkipsFramesTooSmallToAnnotate(t *testing.T) {
	bounds := image.Rect(0, 0, 40, 30)
	r := result(symbology.Code128, "x", image.Rect(5, 5, 35, 25))
	_, ok := ComputePlan(r, 0, bounds)
	assert.False(t, ok)

	// One pixel above the marker footprint on both axes is plannable again,
	// with the marker inside its clamp range.
	bounds = image.Rect(0, 0, 50, 50)
	p, ok := ComputePlan(result(symbology.Code128, "x", image.Rect(5, 20, 45, 40)), 0, bounds)
	require.True(t, ok)
	assert.GreaterOrEqual(t, p.Marker.X, markerMinEdge)
	assert.LessOrEqual(t, p.Marker.X, bounds.Dx()-markerMinEdge)
	assert.GreaterOrEqual(t, p.Marker.Y, markerMinEdge)
	assert.LessOrEqual(t, p.Marker.Y, bounds.Dy()-markerMinEdge)
}

func TestComputePlanShapesStayInsideBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	boxes := []image.Rectangle{
		image.Rect(100, 100, 200, 160), // comfortable middle
		image.Rect(0, 0, 60, 40),       // top-left corner
		image.Rect(560, 440, 640, 480), // bottom-right corner
		image.Rect(500, 2, 630, 30),    // near top edge, label must flip below
	}
	for i, box := range boxes {
		p, ok := ComputePlan(result(symbology.Code128, "PAYLOAD", box), i, bounds)
		require.True(t, ok, "box %v", box)

		textW := len(p.Label) * textAdvance
		assert.GreaterOrEqual(t, p.LabelPos.X, 0, "box %v", box)
		assert.LessOrEqual(t, p.LabelPos.X+textW, bounds.Dx(), "box %v", box)
		assert.GreaterOrEqual(t, p.LabelPos.Y, textHeight, "box %v", box)
		assert.LessOrEqual(t, p.LabelPos.Y, bounds.Dy(), "box %v", box)

		assert.GreaterOrEqual(t, p.Marker.X, markerMinEdge, "box %v", box)
		assert.LessOrEqual(t, p.Marker.X, bounds.Dx()-markerMinEdge, "box %v", box)
		assert.GreaterOrEqual(t, p.Marker.Y, markerMinEdge, "box %v", box)
		assert.LessOrEqual(t, p.Marker.Y, bounds.Dy()-markerMinEdge, "box %v", box)

		if p.DrawBG {
			assert.True(t, p.LabelBG.In(bounds), "box %v", box)
		}
	}
}

func TestLabelPlacedBelowWhenBoxNearTop(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	box := image.Rect(100, 4, 220, 60)
	p, ok := ComputePlan(result(symbology.QRCode, "x", box), 0, bounds)
	require.True(t, ok)
	assert.Greater(t, p.LabelPos.Y, box.Max.Y)
}

func TestLabelTruncation(t *testing.T) {
	long := strings.Repeat("A", 60)
	r := result(symbology.Code128, long, image.Rect(50, 50, 150, 100))
	p, ok := ComputePlan(r, 0, image.Rect(0, 0, 1200, 800))
	require.True(t, ok)
	assert.Len(t, p.Label, truncateKeep+3)
	assert.True(t, strings.HasSuffix(p.Label, "..."))
	assert.True(t, strings.HasPrefix(p.Label, "1D Code128: "))
}

func TestLabelClassPrefixes(t *testing.T) {
	box := image.Rect(50, 50, 150, 100)
	bounds := image.Rect(0, 0, 640, 480)

	p, _ := ComputePlan(result(symbology.QRCode, "x", box), 0, bounds)
	assert.True(t, strings.HasPrefix(p.Label, "2D QR:"))

	inv := result(symbology.Code128, "x", box)
	inv.ColorInverted = true
	p, _ = ComputePlan(inv, 0, bounds)
	assert.True(t, strings.HasPrefix(p.Label, "1D,INV Code128:"))
}

func TestClassFor(t *testing.T) {
	assert.Equal(t, ClassLinear, ClassFor(result(symbology.EAN13, "x", image.Rectangle{})))
	assert.Equal(t, ClassMatrix, ClassFor(result(symbology.DataMatrix, "x", image.Rectangle{})))

	inv := result(symbology.DataMatrix, "x", image.Rectangle{})
	inv.ColorInverted = true
	assert.Equal(t, ClassInverted, ClassFor(inv))
}

func TestSummarize(t *testing.T) {
	results := []scanner.DecodeResult{
		result(symbology.Code128, "a", image.Rectangle{}),
		result(symbology.QRCode, "b", image.Rectangle{}),
		result(symbology.DataMatrix, "c", image.Rectangle{}),
	}
	results[0].ColorInverted = true

	s := Summarize(results)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.OneD)
	assert.Equal(t, 2, s.TwoD)
	assert.Equal(t, 1, s.Inverted)
}

func TestMarkerNumberIsOneBased(t *testing.T) {
	p, ok := ComputePlan(result(symbology.QRCode, "x", image.Rect(100, 100, 200, 200)), 2, image.Rect(0, 0, 640, 480))
	require.True(t, ok)
	assert.Equal(t, 3, p.MarkerNum)
}
