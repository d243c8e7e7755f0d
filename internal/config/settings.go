package config

import (
	"fmt"

	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// BuildSettings converts the scan configuration into runtime scan settings.
// A preset establishes the base state; explicit symbology lists then extend
// it, so "preset plus one extra symbology" works without repeating the
// preset's whole list.
func BuildSettings(cfg *Config) (*scanner.ScanSettings, error) {
	settings := scanner.NewScanSettings()

	switch cfg.Scan.Preset {
	case PresetShippingLabel:
		scanner.ApplyShippingLabelPreset(settings)
	case PresetLowResolution:
		scanner.ApplyLowResolutionPreset(settings)
	case PresetNone:
		// Start empty, symbologies come from the config lists only.
	default:
		return nil, fmt.Errorf("unknown preset %q", cfg.Scan.Preset)
	}

	for _, name := range cfg.Scan.Symbologies {
		sym, err := symbology.Parse(name)
		if err != nil {
			return nil, err
		}
		settings.SetSymbologyEnabled(sym, true)
	}
	for _, name := range cfg.Scan.Inverted {
		sym, err := symbology.Parse(name)
		if err != nil {
			return nil, err
		}
		settings.SetColorInverted(sym, true)
	}

	settings.SetMaxCodesPerFrame(cfg.Scan.MaxCodes)
	settings.SetTryHarder(cfg.Scan.TryHarder)
	settings.SetSearchWholeImage(cfg.Scan.WholeImage)

	return settings, nil
}
