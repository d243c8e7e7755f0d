package engine

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// generalEngine is the multi-symbology decoder. It binarizes the frame once
// and fans out to one native reader per enabled symbology; QR symbols go
// through the multi-symbol reader when whole-image search is requested, so
// several QR codes in a single frame are all reported.
type generalEngine struct{}

// NewGeneralEngine returns the general multi-symbology decode engine.
func NewGeneralEngine() Engine { return &generalEngine{} }

func (e *generalEngine) Name() string { return "zxing-general" }

// Supports lists every symbology backed by a native reader. PDF417 is
// carried in the data model but has no reader, so the orchestrator never
// routes it here.
func (e *generalEngine) Supports() []symbology.Symbology {
	var out []symbology.Symbology
	for _, s := range symbology.All() {
		if s == symbology.PDF417 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// formatReader returns the dedicated reader for one symbology, or nil when
// none exists.
func formatReader(s symbology.Symbology) gozxing.Reader {
	switch s {
	case symbology.QRCode:
		return qrcode.NewQRCodeReader()
	case symbology.DataMatrix:
		return datamatrix.NewDataMatrixReader()
	case symbology.Aztec:
		return aztec.NewAztecReader()
	default:
		return linearReader(s)
	}
}

func (e *generalEngine) Decode(ctx context.Context, img *image.Gray, opts Options) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := gozxing.NewLuminanceSourceFromImage(img)
	bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
	if err != nil {
		return nil, err
	}

	hints := make(map[gozxing.DecodeHintType]interface{})
	// The readers fold rotation tolerance into their exhaustive search
	// mode, so TryRotate maps onto the same hint.
	if opts.TryHarder || opts.TryRotate {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	var results []*gozxing.Result
	for _, sym := range opts.Filter {
		if opts.MaxCodes > 0 && len(results) >= opts.MaxCodes {
			break
		}
		if sym == symbology.QRCode && opts.WholeImage {
			// A failed multi search is a normal negative result, not an
			// engine fault.
			if rs, decErr := multiqr.NewQRCodeMultiReader().DecodeMultiple(bmp, hints); decErr == nil {
				results = append(results, rs...)
			}
			continue
		}
		reader := formatReader(sym)
		if reader == nil {
			continue
		}
		r, decErr := reader.Decode(bmp, hints)
		if decErr != nil || r == nil {
			continue
		}
		results = append(results, r)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		if opts.MaxCodes > 0 && len(hits) >= opts.MaxCodes {
			break
		}
		sym, ok := fromZXingFormat(r.GetBarcodeFormat())
		if !ok {
			continue
		}
		box, hasBox := rectFromPoints(r.GetResultPoints())
		hits = append(hits, Hit{
			Payload:   r.GetText(),
			Symbology: sym,
			Box:       box,
			HasBox:    hasBox,
		})
	}
	return hits, nil
}
