// Package scanner ties the frame session, settings, preprocessing, and the
// decode orchestrator together into the single-frame scan flow.
package scanner

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/MeKo-Tech/labelscan/internal/engine"
	"github.com/MeKo-Tech/labelscan/internal/preprocess"
	"github.com/MeKo-Tech/labelscan/internal/utils"
)

// Scanner decodes barcodes from single frames. It is single-threaded:
// ProcessFrame runs to completion on the calling goroutine, and a scanner
// must not be shared across concurrent scans.
type Scanner struct {
	session  *FrameSession
	settings *ScanSettings
	orch     *engine.Orchestrator
	profile  preprocess.Kind
	results  []DecodeResult
	log      *slog.Logger
}

// Option customizes scanner construction.
type Option func(*Scanner)

// WithProfile selects the preprocessing profile (default Baseline).
func WithProfile(k preprocess.Kind) Option {
	return func(s *Scanner) { s.profile = k }
}

// WithOrchestrator injects a decode orchestrator (tests use this to supply
// fake engines).
func WithOrchestrator(o *engine.Orchestrator) Option {
	return func(s *Scanner) { s.orch = o }
}

// New creates a scanner bound to a caller-owned session and settings.
func New(session *FrameSession, settings *ScanSettings, opts ...Option) (*Scanner, error) {
	if session == nil {
		return nil, errors.New("scanner: nil frame session")
	}
	if settings == nil {
		return nil, errors.New("scanner: nil settings")
	}
	s := &Scanner{
		session:  session,
		settings: settings,
		orch:     engine.NewOrchestrator(),
		profile:  preprocess.Baseline,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("scanner created", "profile", s.profile.String())
	return s, nil
}

// Profile returns the configured preprocessing profile.
func (s *Scanner) Profile() preprocess.Kind { return s.profile }

// LastResults returns the results of the most recent scan. The slice is
// owned by the scanner and overwritten by the next ProcessFrame call.
func (s *Scanner) LastResults() []DecodeResult { return s.results }

// Close releases the scanner, ending any frame sequence still open on the
// session.
func (s *Scanner) Close() error { return s.session.Close() }

// ProcessFrame scans one frame. Preconditions are checked in order: an
// active frame sequence (else ProcessingError), then a non-empty image
// (else InvalidImage). The previous scan's results are discarded before the
// new scan starts.
func (s *Scanner) ProcessFrame(ctx context.Context, frame RawImage) ScanOutcome {
	if !s.session.Active() {
		s.log.Error("frame rejected, no active frame sequence")
		return ScanOutcome{Status: StatusProcessingError}
	}
	if frame.Empty() {
		s.log.Error("frame rejected, empty image buffer")
		return ScanOutcome{Status: StatusInvalidImage}
	}

	s.results = nil

	snap, err := s.settings.Snapshot()
	if err != nil {
		s.log.Error("settings snapshot rejected", "error", err)
		return ScanOutcome{Status: StatusProcessingError}
	}

	s.log.Info("processing frame",
		"width", frame.Width, "height", frame.Height, "channels", frame.Channels,
		"profile", s.profile.String())

	gray := frame.Gray()
	profile := preprocess.ForKind(s.profile)

	results := s.runPass(ctx, gray, profile, snap, false)
	if snap.WantsInversion() {
		s.log.Info("running color-inverted pass")
		results = append(results, s.runPass(ctx, utils.InvertGray(gray), profile, snap, true)...)
	}

	s.results = results
	s.log.Info("scan completed", "results", len(results))
	if len(results) == 0 {
		return ScanOutcome{Status: StatusNoCodesFound}
	}
	return ScanOutcome{Status: StatusSuccess, Results: results}
}

// runPass preprocesses one pass frame, fans it out to the engines, and
// converts the normalized hits into canonical results.
func (s *Scanner) runPass(ctx context.Context, gray *image.Gray,
	profile preprocess.Profile, snap Snapshot, inverted bool,
) []DecodeResult {
	processed := profile.Run(gray)
	hits := s.orch.DecodePass(ctx, engine.PassRequest{
		Raw:       gray,
		Processed: processed,
		Ladder:    profile.Ladder,
		Enhanced:  profile.Kind == preprocess.Enhanced,
		Params: engine.ScanParams{
			Enabled:    snap.Enabled.Enabled(),
			TryHarder:  snap.TryHarder,
			WholeImage: snap.WholeImage,
			MaxCodes:   snap.MaxCodes,
		},
	})

	out := make([]DecodeResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, DecodeResult{
			Payload:       h.Payload,
			Symbology:     h.Symbology,
			SymbologyName: h.Symbology.String(),
			Box:           h.Box,
			Confidence:    1.0, // engines do not report a calibrated confidence
			ColorInverted: inverted,
			FormatDetails: h.Details,
		})
	}
	return out
}
