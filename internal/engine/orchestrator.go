package engine

import (
	"context"
	"image"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/labelscan/internal/payload"
	"github.com/MeKo-Tech/labelscan/internal/preprocess"
	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// ScanParams carries the settings snapshot fields the orchestrator needs.
type ScanParams struct {
	Enabled    []symbology.Symbology
	TryHarder  bool
	WholeImage bool
	MaxCodes   int
}

// PassRequest describes one decode pass (normal or color-inverted) over one
// frame.
type PassRequest struct {
	// Raw is the grayscale frame for this pass, in original-image scale.
	Raw *image.Gray
	// Processed is the preprocessed working image.
	Processed *image.Gray
	// Ladder lists the additional scales the general engine loops over.
	Ladder []float64
	// Enhanced selects the profile-specific engine set (the dedicated 1D
	// decoder only runs in the enhanced profile).
	Enhanced bool
	Params   ScanParams
}

// Orchestrator fans a frame out to the decode engines and normalizes their
// heterogeneous outputs into original-image coordinate hits. Every engine
// fault is absorbed here: a failing engine degrades to zero hits for that
// invocation and never aborts the pass.
type Orchestrator struct {
	general Engine
	matrix  Engine
	linear  Engine
	log     *slog.Logger
}

// NewOrchestrator wires the default engine set.
func NewOrchestrator() *Orchestrator {
	return NewOrchestratorWithEngines(NewGeneralEngine(), NewMatrixEngine(), NewLinearEngine())
}

// NewOrchestratorWithEngines injects explicit engines (used by tests and by
// callers that disable individual capabilities).
func NewOrchestratorWithEngines(general, matrix, linear Engine) *Orchestrator {
	return &Orchestrator{general: general, matrix: matrix, linear: linear, log: slog.Default()}
}

// DecodePass runs every applicable engine for one pass and returns hits in
// deterministic order: general engine in ladder order, then the general
// engine on the raw frame (enhanced passes only), then the matrix engine,
// then the dedicated 1D engine. Hits are filtered (non-empty payload),
// converted to original-image coordinates, and enriched.
func (o *Orchestrator) DecodePass(ctx context.Context, req PassRequest) []Hit {
	origBounds := req.Raw.Bounds()
	var hits []Hit

	if filter := o.enabledFor(o.general, req.Params); len(filter) > 0 {
		opts := Options{
			Filter:     filter,
			TryHarder:  req.Params.TryHarder,
			TryRotate:  true,
			WholeImage: req.Params.WholeImage,
			MaxCodes:   req.Params.MaxCodes,
		}
		hits = append(hits, o.runGeneral(ctx, req, opts, origBounds)...)
		if req.Enhanced {
			// Binarization in the enhanced pipeline can hollow out large
			// solid modules such as QR finder patterns, so the general
			// engine also sees the untouched grayscale frame.
			hits = append(hits, o.runAtNativeScale(ctx, o.general, opts, req.Raw, origBounds)...)
		}
	} else if o.general != nil {
		o.log.Debug("engine skipped, no enabled symbology", "engine", o.general.Name())
	}

	if filter := o.enabledFor(o.matrix, req.Params); len(filter) > 0 {
		opts := Options{Filter: filter, TryHarder: req.Params.TryHarder, MaxCodes: req.Params.MaxCodes}
		hits = append(hits, o.runAtNativeScale(ctx, o.matrix, opts, req.Raw, origBounds)...)
	}

	if req.Enhanced {
		if filter := o.enabledFor(o.linear, req.Params); len(filter) > 0 {
			opts := Options{Filter: filter, TryHarder: req.Params.TryHarder, MaxCodes: req.Params.MaxCodes}
			hits = append(hits, o.runAtNativeScale(ctx, o.linear, opts, req.Raw, origBounds)...)
		}
	}
	return hits
}

// runGeneral loops the general decoder over the scale ladder on the
// preprocessed image. Hits are accumulated across scales with no
// deduplication; the same physical symbol found at two scales yields two
// hits.
func (o *Orchestrator) runGeneral(ctx context.Context, req PassRequest,
	opts Options, origBounds image.Rectangle,
) []Hit {
	var out []Hit
	for _, scale := range req.Ladder {
		working := preprocess.Rescale(req.Processed, scale)
		// The effective factor is derived from actual pixel dimensions so
		// rounding during resize cannot skew the back-conversion.
		effX := float64(working.Rect.Dx()) / float64(origBounds.Dx())
		effY := float64(working.Rect.Dy()) / float64(origBounds.Dy())

		raw, err := o.general.Decode(ctx, working, opts)
		if err != nil {
			o.log.Warn("decode engine fault absorbed",
				"engine", o.general.Name(), "scale", scale, "error", err)
			continue
		}
		o.log.Debug("general decode pass", "scale", scale, "hits", len(raw))
		for _, h := range raw {
			if n, ok := normalizeHit(h, effX, effY, origBounds); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// runAtNativeScale invokes an engine once on the unscaled pass frame.
func (o *Orchestrator) runAtNativeScale(ctx context.Context, eng Engine,
	opts Options, frame *image.Gray, origBounds image.Rectangle,
) []Hit {
	raw, err := eng.Decode(ctx, frame, opts)
	if err != nil {
		o.log.Warn("decode engine fault absorbed", "engine", eng.Name(), "error", err)
		return nil
	}
	o.log.Debug("native-scale decode", "engine", eng.Name(), "hits", len(raw))
	var out []Hit
	for _, h := range raw {
		if n, ok := normalizeHit(h, 1.0, 1.0, origBounds); ok {
			out = append(out, n)
		}
	}
	return out
}

// enabledFor intersects the enabled symbologies with what the engine
// supports. An empty intersection means the engine is skipped entirely.
func (o *Orchestrator) enabledFor(eng Engine, p ScanParams) []symbology.Symbology {
	if eng == nil {
		return nil
	}
	return symbology.Intersect(p.Enabled, eng.Supports())
}

// normalizeHit converts a raw hit into original-image pixel space and
// attaches the informational format details. Hits with an empty payload are
// dropped; a hit without a usable location falls back to the full-image
// rectangle.
func normalizeHit(h Hit, effX, effY float64, origBounds image.Rectangle) (Hit, bool) {
	if h.Payload == "" {
		return Hit{}, false
	}
	if h.HasBox && h.Box.Dx() > 0 && h.Box.Dy() > 0 {
		h.Box = image.Rect(
			int(math.Round(float64(h.Box.Min.X)/effX)),
			int(math.Round(float64(h.Box.Min.Y)/effY)),
			int(math.Round(float64(h.Box.Max.X)/effX)),
			int(math.Round(float64(h.Box.Max.Y)/effY)),
		)
		// Thin 1D scan-line boxes can round both edges onto the same
		// pixel; keep the converted box drawable.
		if h.Box.Dx() == 0 {
			h.Box.Max.X++
		}
		if h.Box.Dy() == 0 {
			h.Box.Max.Y++
		}
	} else {
		h.Box = origBounds
		h.HasBox = true
	}
	h.Details = payload.Describe(h.Symbology, h.Payload)
	return h, true
}
