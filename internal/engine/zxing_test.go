package engine

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
	"github.com/MeKo-Tech/labelscan/internal/testutil"
)

func TestGeneralEngineSupportsReaderBackedSymbologies(t *testing.T) {
	sup := make(map[symbology.Symbology]bool)
	for _, s := range NewGeneralEngine().Supports() {
		sup[s] = true
	}
	for _, s := range []symbology.Symbology{
		symbology.Code128, symbology.EAN13, symbology.QRCode,
		symbology.DataMatrix, symbology.Aztec,
	} {
		assert.True(t, sup[s], "expected %s support", s)
	}
	assert.False(t, sup[symbology.PDF417])
}

func TestFormatReaderCoversEverySupportedSymbology(t *testing.T) {
	for _, s := range NewGeneralEngine().Supports() {
		assert.NotNil(t, formatReader(s), "no reader for %s", s)
	}
	assert.Nil(t, formatReader(symbology.PDF417))
}

func TestGeneralEngineDecodesQR(t *testing.T) {
	img, err := testutil.NewQRImage("https://example.com/track", 200)
	require.NoError(t, err)

	hits, err := NewGeneralEngine().Decode(context.Background(), img.(*image.Gray), Options{
		Filter:     []symbology.Symbology{symbology.QRCode},
		TryHarder:  true,
		WholeImage: true,
		MaxCodes:   5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "https://example.com/track", hits[0].Payload)
	assert.Equal(t, symbology.QRCode, hits[0].Symbology)
}

func TestGeneralEngineDecodesCode128(t *testing.T) {
	img, err := testutil.NewCode128Image("PKG-0042", 400, 120)
	require.NoError(t, err)

	hits, err := NewGeneralEngine().Decode(context.Background(), img.(*image.Gray), Options{
		Filter:    []symbology.Symbology{symbology.Code128},
		TryHarder: true,
		MaxCodes:  5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "PKG-0042", hits[0].Payload)
	assert.Equal(t, symbology.Code128, hits[0].Symbology)
}
