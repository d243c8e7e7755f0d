package scanner

import (
	"image"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// ScanStatus is the outcome class of a single frame scan.
type ScanStatus int

const (
	// StatusSuccess means at least one barcode was decoded.
	StatusSuccess ScanStatus = iota
	// StatusNoCodesFound is a valid negative result, not a fault.
	StatusNoCodesFound
	// StatusProcessingError means the frame session was not active.
	StatusProcessingError
	// StatusInvalidImage means the supplied image buffer was empty or unusable.
	StatusInvalidImage
)

// String returns a human-readable status name.
func (s ScanStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoCodesFound:
		return "no_codes_found"
	case StatusProcessingError:
		return "processing_error"
	case StatusInvalidImage:
		return "invalid_image"
	default:
		return "unknown"
	}
}

// RawImage is a caller-supplied pixel frame. Channels is 1 (grayscale) or
// 3 (interleaved RGB); Pix holds Width*Height*Channels bytes.
type RawImage struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewRawImage builds a RawImage from a decoded image. Color inputs become
// 3-channel RGB, grayscale inputs stay single-channel.
func NewRawImage(img image.Image) RawImage {
	if img == nil {
		return RawImage{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if g, ok := img.(*image.Gray); ok {
		// Copy row by row to drop stride padding.
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			row := g.Pix[y*g.Stride:]
			copy(pix[y*w:(y+1)*w], row[:w])
		}
		return RawImage{Width: w, Height: h, Channels: 1, Pix: pix}
	}
	pix := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pix = append(pix, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return RawImage{Width: w, Height: h, Channels: 3, Pix: pix}
}

// Empty reports whether the frame carries no usable pixel data.
func (r RawImage) Empty() bool {
	return r.Width <= 0 || r.Height <= 0 || len(r.Pix) == 0 ||
		(r.Channels != 1 && r.Channels != 3) ||
		len(r.Pix) != r.Width*r.Height*r.Channels
}

// Gray converts the frame to a single-channel grayscale image. Multi-channel
// frames use the Rec. 601 luma weights; the returned image owns its buffer.
func (r RawImage) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	if r.Empty() {
		return g
	}
	if r.Channels == 1 {
		copy(g.Pix, r.Pix)
		return g
	}
	for i := 0; i < r.Width*r.Height; i++ {
		red := int(r.Pix[i*3])
		green := int(r.Pix[i*3+1])
		blue := int(r.Pix[i*3+2])
		g.Pix[i] = byte((299*red + 587*green + 114*blue) / 1000)
	}
	return g
}

// Bounds returns the frame rectangle in original-image pixel space.
func (r RawImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// DecodeResult is one decoded barcode, normalized to the canonical model.
// Box is always expressed in original-image pixel space.
type DecodeResult struct {
	Payload       string              `json:"payload"`
	Symbology     symbology.Symbology `json:"-"`
	SymbologyName string              `json:"symbology"`
	Box           image.Rectangle     `json:"box"`
	Confidence    float64             `json:"confidence"`
	ColorInverted bool                `json:"color_inverted"`
	FormatDetails string              `json:"format_details,omitempty"`
}

// Drawable reports whether the result carries a box the overlay can render.
func (d DecodeResult) Drawable() bool {
	return d.Box.Dx() > 0 && d.Box.Dy() > 0
}

// ScanOutcome is the result of one ProcessFrame call. A new outcome is
// produced per call; the previous one is discarded, not retained as history.
type ScanOutcome struct {
	Status  ScanStatus
	Results []DecodeResult
}
