package engine

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// linearEngine is the dedicated 1D linear-symbol decoder used by the
// enhanced profile. One single-format reader per enabled symbology keeps
// the format-specific scan-line heuristics independent of each other.
type linearEngine struct{}

// NewLinearEngine returns the dedicated 1D decode engine.
func NewLinearEngine() Engine { return &linearEngine{} }

func (e *linearEngine) Name() string { return "oned-linear" }

func (e *linearEngine) Supports() []symbology.Symbology {
	return []symbology.Symbology{
		symbology.Code128, symbology.Code39, symbology.Code93,
		symbology.EAN8, symbology.EAN13, symbology.UPCA, symbology.UPCE,
		symbology.ITF, symbology.Codabar,
	}
}

func linearReader(s symbology.Symbology) gozxing.Reader {
	switch s {
	case symbology.Code128:
		return oned.NewCode128Reader()
	case symbology.Code39:
		return oned.NewCode39Reader()
	case symbology.Code93:
		return oned.NewCode93Reader()
	case symbology.EAN8:
		return oned.NewEAN8Reader()
	case symbology.EAN13:
		return oned.NewEAN13Reader()
	case symbology.UPCA:
		return oned.NewUPCAReader()
	case symbology.UPCE:
		return oned.NewUPCEReader()
	case symbology.ITF:
		return oned.NewITFReader()
	case symbology.Codabar:
		return oned.NewCodaBarReader()
	default:
		return nil
	}
}

func (e *linearEngine) Decode(ctx context.Context, img *image.Gray, opts Options) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := gozxing.NewLuminanceSourceFromImage(img)
	bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
	if err != nil {
		return nil, err
	}

	hints := make(map[gozxing.DecodeHintType]interface{})
	if opts.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	var hits []Hit
	for _, sym := range opts.Filter {
		if opts.MaxCodes > 0 && len(hits) >= opts.MaxCodes {
			break
		}
		reader := linearReader(sym)
		if reader == nil {
			continue
		}
		r, decErr := reader.Decode(bmp, hints)
		if decErr != nil || r == nil {
			continue
		}
		if r.GetText() == "" {
			continue
		}
		hit := Hit{Payload: r.GetText(), Symbology: sym}
		if box, ok := rectFromPoints(r.GetResultPoints()); ok {
			hit.Box = box
			hit.HasBox = true
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
