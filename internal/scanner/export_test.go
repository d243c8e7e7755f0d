package scanner

import "github.com/MeKo-Tech/labelscan/internal/symbology"

// CorruptEnabledSet removes a map entry so external tests can exercise the
// snapshot validation path.
func CorruptEnabledSet(s *ScanSettings) {
	delete(s.enabled, symbology.Aztec)
}
