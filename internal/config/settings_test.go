package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

func TestBuildSettingsFromPreset(t *testing.T) {
	cfg := DefaultConfig()
	settings, err := BuildSettings(cfg)
	require.NoError(t, err)

	assert.True(t, settings.IsSymbologyEnabled(symbology.Code128))
	assert.True(t, settings.IsSymbologyEnabled(symbology.QRCode))
	assert.False(t, settings.IsSymbologyEnabled(symbology.PDF417))
	assert.Equal(t, 10, settings.MaxCodesPerFrame())
}

func TestBuildSettingsExtendsPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Symbologies = []string{"PDF417"}
	cfg.Scan.Inverted = []string{"QR"}

	settings, err := BuildSettings(cfg)
	require.NoError(t, err)

	// Preset state survives, the extra entries are layered on top.
	assert.True(t, settings.IsSymbologyEnabled(symbology.Code128))
	assert.True(t, settings.IsSymbologyEnabled(symbology.PDF417))
	assert.True(t, settings.IsColorInverted(symbology.QRCode))
}

func TestBuildSettingsEmptyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Preset = PresetNone
	cfg.Scan.Symbologies = []string{"EAN13"}
	cfg.Scan.MaxCodes = 3

	settings, err := BuildSettings(cfg)
	require.NoError(t, err)

	assert.True(t, settings.IsSymbologyEnabled(symbology.EAN13))
	assert.False(t, settings.IsSymbologyEnabled(symbology.Code128))
	assert.Equal(t, 3, settings.MaxCodesPerFrame())
}

func TestBuildSettingsRejectsUnknownSymbology(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Symbologies = []string{"code1000"}
	_, err := BuildSettings(cfg)
	assert.Error(t, err)
}
