package scanner

import (
	"fmt"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// ScanSettings holds the caller-owned scan configuration. The symbology maps
// are constructed fully populated; a missing entry is treated as corruption,
// not as false. Settings are mutated through setters and captured as an
// immutable Snapshot for the duration of a scan.
type ScanSettings struct {
	enabled       symbology.Set
	colorInverted symbology.Set
	maxCodes      int
	wholeImage    bool
	tryHarder     bool
}

// NewScanSettings returns settings with every symbology explicitly disabled.
func NewScanSettings() *ScanSettings {
	return &ScanSettings{
		enabled:       symbology.NewSet(),
		colorInverted: symbology.NewSet(),
		maxCodes:      1,
	}
}

// SetSymbologyEnabled toggles decoding of the given symbology.
func (s *ScanSettings) SetSymbologyEnabled(sym symbology.Symbology, enabled bool) {
	s.enabled[sym] = enabled
}

// SetColorInverted requests an additional inverted-image pass for the symbology.
func (s *ScanSettings) SetColorInverted(sym symbology.Symbology, inverted bool) {
	s.colorInverted[sym] = inverted
}

// SetMaxCodesPerFrame caps the number of codes reported per engine call.
// Values below 1 are clamped to 1.
func (s *ScanSettings) SetMaxCodesPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	s.maxCodes = n
}

// SetSearchWholeImage toggles whole-image multi-symbol search.
func (s *ScanSettings) SetSearchWholeImage(whole bool) { s.wholeImage = whole }

// SetTryHarder enables the slower, more exhaustive engine search.
func (s *ScanSettings) SetTryHarder(tryHarder bool) { s.tryHarder = tryHarder }

// IsSymbologyEnabled reports whether decoding of the symbology is requested.
func (s *ScanSettings) IsSymbologyEnabled(sym symbology.Symbology) bool {
	return s.enabled[sym]
}

// IsColorInverted reports whether an inverted pass is requested for the symbology.
func (s *ScanSettings) IsColorInverted(sym symbology.Symbology) bool {
	return s.colorInverted[sym]
}

// MaxCodesPerFrame returns the per-engine result cap.
func (s *ScanSettings) MaxCodesPerFrame() int { return s.maxCodes }

// SearchWholeImage reports whether whole-image search is requested.
func (s *ScanSettings) SearchWholeImage() bool { return s.wholeImage }

// TryHarder reports whether exhaustive search is requested.
func (s *ScanSettings) TryHarder() bool { return s.tryHarder }

// Snapshot is an immutable copy of the settings taken at scan start.
type Snapshot struct {
	Enabled       symbology.Set
	ColorInverted symbology.Set
	MaxCodes      int
	WholeImage    bool
	TryHarder     bool
}

// Snapshot validates map completeness and returns an independent copy the
// scan can rely on while the caller keeps ownership of the live settings.
func (s *ScanSettings) Snapshot() (Snapshot, error) {
	if err := s.enabled.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("enabled symbologies: %w", err)
	}
	if err := s.colorInverted.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("color-inverted symbologies: %w", err)
	}
	return Snapshot{
		Enabled:       s.enabled.Clone(),
		ColorInverted: s.colorInverted.Clone(),
		MaxCodes:      s.maxCodes,
		WholeImage:    s.wholeImage,
		TryHarder:     s.tryHarder,
	}, nil
}

// WantsInversion reports whether any enabled symbology requests a
// color-inverted pass.
func (sn Snapshot) WantsInversion() bool {
	for _, sym := range symbology.All() {
		if sn.Enabled[sym] && sn.ColorInverted[sym] {
			return true
		}
	}
	return false
}
