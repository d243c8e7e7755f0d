// Package preprocess implements the image-transform pipeline that runs
// before decoding. A Profile is an ordered list of stages plus the scale
// ladder the orchestrator loops the general decoder over; Baseline and
// Enhanced are the two supported variants.
package preprocess

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/labelscan/internal/utils"
)

// Kind selects the preprocessing variant.
type Kind int

const (
	// Baseline decodes the raw grayscale frame unmodified.
	Baseline Kind = iota
	// Enhanced applies the low-resolution recovery stages before decoding.
	Enhanced
)

// String returns the profile name.
func (k Kind) String() string {
	switch k {
	case Baseline:
		return "baseline"
	case Enhanced:
		return "enhanced"
	default:
		return "unknown"
	}
}

// ParseKind converts a profile name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "baseline":
		return Baseline, nil
	case "enhanced":
		return Enhanced, nil
	default:
		return 0, fmt.Errorf("unknown preprocessing profile %q", s)
	}
}

// Stage is one deterministic grayscale transform.
type Stage struct {
	Name  string
	Apply func(*image.Gray) *image.Gray
}

// Profile describes a preprocessing variant: an optional upscale factor,
// the ordered stages, and the decode scale ladder.
type Profile struct {
	Kind     Kind
	PreScale float64
	Stages   []Stage
	Ladder   []float64
}

// ForKind returns the stage list and scale ladder for the given variant.
func ForKind(k Kind) Profile {
	if k == Baseline {
		return Profile{Kind: Baseline, PreScale: 1.0, Ladder: []float64{1.0}}
	}
	return Profile{
		Kind:     Enhanced,
		PreScale: 2.0,
		Stages: []Stage{
			{Name: "equalize", Apply: func(g *image.Gray) *image.Gray {
				return EqualizeLocalContrast(g, claheTiles, claheClipLimit)
			}},
			{Name: "denoise", Apply: Denoise},
			{Name: "sharpen", Apply: Sharpen},
			{Name: "threshold", Apply: func(g *image.Gray) *image.Gray {
				return AdaptiveThreshold(g, thresholdBlock, thresholdOffset)
			}},
			{Name: "close", Apply: MorphClose},
		},
		Ladder: []float64{1.0, 1.5, 2.0},
	}
}

// Run applies the profile to a grayscale frame and returns the processed
// image. The input is never mutated; the caller keeps ownership of src.
func (p Profile) Run(src *image.Gray) *image.Gray {
	out := src
	if p.PreScale > 1.0 {
		w := int(float64(src.Rect.Dx())*p.PreScale + 0.5)
		h := int(float64(src.Rect.Dy())*p.PreScale + 0.5)
		out = utils.ToGray(imaging.Resize(src, w, h, imaging.CatmullRom))
		slog.Debug("preprocess upscale", "profile", p.Kind.String(), "scale", p.PreScale, "width", w, "height", h)
	} else if len(p.Stages) > 0 {
		// Stages must not write through to the caller's buffer.
		out = cloneGray(src)
	}
	for _, st := range p.Stages {
		out = st.Apply(out)
		slog.Debug("preprocess stage applied", "stage", st.Name)
	}
	return out
}

// Rescale resizes a processed frame by one ladder step.
func Rescale(g *image.Gray, scale float64) *image.Gray {
	if scale == 1.0 {
		return g
	}
	w := int(float64(g.Rect.Dx())*scale + 0.5)
	h := int(float64(g.Rect.Dy())*scale + 0.5)
	if w < 1 || h < 1 {
		return g
	}
	return utils.ToGray(imaging.Resize(g, w, h, imaging.Linear))
}

func cloneGray(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Rect)
	copy(out.Pix, g.Pix)
	return out
}
