package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

func TestNewScanSettingsStartsAllDisabled(t *testing.T) {
	s := NewScanSettings()
	for _, sym := range symbology.All() {
		assert.False(t, s.IsSymbologyEnabled(sym), sym.String())
		assert.False(t, s.IsColorInverted(sym), sym.String())
	}
	assert.Equal(t, 1, s.MaxCodesPerFrame())
}

func TestSymbologyGating(t *testing.T) {
	s := NewScanSettings()
	s.SetSymbologyEnabled(symbology.QRCode, true)

	assert.True(t, s.IsSymbologyEnabled(symbology.QRCode))
	assert.False(t, s.IsSymbologyEnabled(symbology.Code128))

	s.SetSymbologyEnabled(symbology.QRCode, false)
	assert.False(t, s.IsSymbologyEnabled(symbology.QRCode))
}

func TestMaxCodesClampedToOne(t *testing.T) {
	s := NewScanSettings()
	s.SetMaxCodesPerFrame(0)
	assert.Equal(t, 1, s.MaxCodesPerFrame())
	s.SetMaxCodesPerFrame(-5)
	assert.Equal(t, 1, s.MaxCodesPerFrame())
	s.SetMaxCodesPerFrame(7)
	assert.Equal(t, 7, s.MaxCodesPerFrame())
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := NewScanSettings()
	s.SetSymbologyEnabled(symbology.Code128, true)
	s.SetMaxCodesPerFrame(5)

	snap, err := s.Snapshot()
	require.NoError(t, err)

	// Later mutations must not leak into the snapshot.
	s.SetSymbologyEnabled(symbology.Code128, false)
	s.SetMaxCodesPerFrame(9)

	assert.True(t, snap.Enabled[symbology.Code128])
	assert.Equal(t, 5, snap.MaxCodes)
}

func TestSnapshotRejectsIncompleteMap(t *testing.T) {
	s := NewScanSettings()
	delete(s.enabled, symbology.PDF417)
	_, err := s.Snapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabled symbologies")
}

func TestWantsInversionRequiresEnabledSymbology(t *testing.T) {
	s := NewScanSettings()
	s.SetSymbologyEnabled(symbology.QRCode, true)
	s.SetColorInverted(symbology.Code128, true) // inverted but not enabled

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.WantsInversion())

	s.SetColorInverted(symbology.QRCode, true)
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.WantsInversion())
}
