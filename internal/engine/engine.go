// Package engine wraps the external barcode decode engines behind one
// capability interface and orchestrates them across scales. Engine-specific
// timeouts, probe caps, and coordinate conventions live inside the adapters;
// the orchestrator only sees normalized hits.
package engine

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// Options controls one engine invocation.
type Options struct {
	// Filter restricts the symbologies to search; empty means the engine
	// must not be invoked at all (the orchestrator enforces this).
	Filter []symbology.Symbology

	// TryHarder enables more exhaustive search (slower but more robust).
	TryHarder bool

	// TryRotate asks for rotation-tolerant search where the engine
	// distinguishes it from TryHarder.
	TryRotate bool

	// WholeImage requests multi-symbol search over the full frame rather
	// than a single fast-path decode.
	WholeImage bool

	// MaxCodes caps the number of hits one invocation may report.
	MaxCodes int
}

// Hit is one raw engine result in the coordinate space of the image the
// engine was handed. Normalization back to original-image space happens in
// the orchestrator.
type Hit struct {
	Payload   string
	Symbology symbology.Symbology
	Box       image.Rectangle
	HasBox    bool
	Details   string
}

// Engine is one external decode capability.
type Engine interface {
	Name() string
	Supports() []symbology.Symbology
	Decode(ctx context.Context, img *image.Gray, opts Options) ([]Hit, error)
}

func fromZXingFormat(f gozxing.BarcodeFormat) (symbology.Symbology, bool) {
	switch f {
	case gozxing.BarcodeFormat_CODE_128:
		return symbology.Code128, true
	case gozxing.BarcodeFormat_CODE_39:
		return symbology.Code39, true
	case gozxing.BarcodeFormat_CODE_93:
		return symbology.Code93, true
	case gozxing.BarcodeFormat_EAN_8:
		return symbology.EAN8, true
	case gozxing.BarcodeFormat_EAN_13:
		return symbology.EAN13, true
	case gozxing.BarcodeFormat_UPC_A:
		return symbology.UPCA, true
	case gozxing.BarcodeFormat_UPC_E:
		return symbology.UPCE, true
	case gozxing.BarcodeFormat_ITF:
		return symbology.ITF, true
	case gozxing.BarcodeFormat_CODABAR:
		return symbology.Codabar, true
	case gozxing.BarcodeFormat_QR_CODE:
		return symbology.QRCode, true
	case gozxing.BarcodeFormat_DATA_MATRIX:
		return symbology.DataMatrix, true
	case gozxing.BarcodeFormat_AZTEC:
		return symbology.Aztec, true
	case gozxing.BarcodeFormat_PDF_417:
		return symbology.PDF417, true
	default:
		return 0, false
	}
}

// rectFromPoints derives a bounding box from engine-reported key points.
func rectFromPoints(pts []gozxing.ResultPoint) (image.Rectangle, bool) {
	if len(pts) == 0 {
		return image.Rectangle{}, false
	}
	minX, minY := pts[0].GetX(), pts[0].GetY()
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.GetX() < minX {
			minX = p.GetX()
		}
		if p.GetY() < minY {
			minY = p.GetY()
		}
		if p.GetX() > maxX {
			maxX = p.GetX()
		}
		if p.GetY() > maxY {
			maxY = p.GetY()
		}
	}
	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1), true
}
