package scanner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/labelscan/internal/preprocess"
	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/testutil"
)

// TestScanSyntheticLabel decodes a generated label carrying a Code 128 and a
// QR symbol through the full pipeline with real engines.
func TestScanSyntheticLabel(t *testing.T) {
	if testing.Short() {
		t.Skip("full decode pipeline")
	}

	canvas := testutil.WhiteCanvas(800, 800)

	code128, err := testutil.NewCode128Image("PKG-0042", 400, 120)
	require.NoError(t, err)
	testutil.Paste(canvas, code128, 50, 550)

	qr, err := testutil.NewQRImage("https://example.com/track", 200)
	require.NoError(t, err)
	testutil.Paste(canvas, qr, 500, 100)

	settings := scanner.NewScanSettings()
	scanner.ApplyShippingLabelPreset(settings)

	session := scanner.NewFrameSession()
	sc, err := scanner.New(session, settings, scanner.WithProfile(preprocess.Enhanced))
	require.NoError(t, err)
	defer func() { require.NoError(t, sc.Close()) }()

	require.NoError(t, session.StartNewFrameSequence())

	outcome := sc.ProcessFrame(context.Background(), scanner.NewRawImage(canvas))
	require.Equal(t, scanner.StatusSuccess, outcome.Status)
	require.GreaterOrEqual(t, len(outcome.Results), 2)

	payloads := make(map[string]bool)
	for _, r := range outcome.Results {
		payloads[r.Payload] = true
		assert.Positive(t, r.Box.Dx(), r.Payload)
		assert.Positive(t, r.Box.Dy(), r.Payload)
		assert.InDelta(t, 1.0, r.Confidence, 1e-9)
	}
	assert.True(t, payloads["PKG-0042"], "code128 payload missing")
	assert.True(t, payloads["https://example.com/track"], "qr payload missing")
}
