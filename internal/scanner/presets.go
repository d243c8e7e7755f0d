package scanner

import "github.com/MeKo-Tech/labelscan/internal/symbology"

// Presets are convenience setter sequences; they carry no logic of their own.

// ApplyShippingLabelPreset enables the symbologies commonly printed on
// shipping labels, with inversion passes for the ones that tend to appear
// white-on-black on thermal labels.
func ApplyShippingLabelPreset(s *ScanSettings) {
	s.SetSymbologyEnabled(symbology.Code128, true)
	s.SetSymbologyEnabled(symbology.Code39, true)
	s.SetSymbologyEnabled(symbology.EAN13, true)
	s.SetSymbologyEnabled(symbology.EAN8, true)
	s.SetSymbologyEnabled(symbology.DataMatrix, true)
	s.SetSymbologyEnabled(symbology.QRCode, true)

	s.SetColorInverted(symbology.Code128, true)
	s.SetColorInverted(symbology.EAN13, true)

	s.SetMaxCodesPerFrame(10)
	s.SetSearchWholeImage(true)
	s.SetTryHarder(true)
}

// ApplyLowResolutionPreset configures for maximum detection capability on
// small or blurry input: every symbology enabled, inversion everywhere.
func ApplyLowResolutionPreset(s *ScanSettings) {
	for _, sym := range symbology.All() {
		s.SetSymbologyEnabled(sym, true)
		s.SetColorInverted(sym, true)
	}
	s.SetMaxCodesPerFrame(20)
	s.SetSearchWholeImage(true)
	s.SetTryHarder(true)
}
