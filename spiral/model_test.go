package spiral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Threshold:  -90,
	Complexity: 96,
	VolMin:     -80,
	VolMax:     -40,
}

func TestDBToPower(t *testing.T) {
	require.Equal(t, 1.0, dbToPower(0))
	require.InDelta(t, 0.1, dbToPower(-20), 1e-12)

	// Monotonic in dB.
	prev := dbToPower(-120)
	for db := -119.0; db <= 20; db++ {
		power := dbToPower(db)
		require.Greater(t, power, prev)
		prev = power
	}
}

func TestNewSingleBin(t *testing.T) {
	spectrum := make([]float64, 1024)
	for idx := range spectrum {
		spectrum[idx] = -100
	}
	spectrum[100] = -20

	cfg := testConfig
	cfg.Complexity = 1

	m := New(spectrum, cfg)

	require.Len(t, m.Components(), 1)
	require.Equal(t, 50.0, m.Components()[0].Ratio)
	require.InDelta(t, 0.1, m.Components()[0].Power, 1e-12)

	// -20 dB sits above volmax, so loudness clamps to full.
	require.Equal(t, 1.0, m.Vol())
}

func TestNewRetainsAtMostComplexity(t *testing.T) {
	spectrum := make([]float64, 512)
	for idx := range spectrum {
		spectrum[idx] = -30
	}

	cfg := testConfig
	cfg.Complexity = 7

	m := New(spectrum, cfg)
	require.Len(t, m.Components(), 7)

	for _, c := range m.Components() {
		require.GreaterOrEqual(t, c.Power, 0.0)
	}
}

func TestNewSilence(t *testing.T) {
	spectrum := []float64{-100, -100, -100}

	m := New(spectrum, testConfig)

	require.Empty(t, m.Components())
	require.Equal(t, 0.0, m.Vol())
}

func TestNewEmptySpectrum(t *testing.T) {
	m := New(nil, testConfig)

	require.Empty(t, m.Components())
}

func TestVolClamps(t *testing.T) {
	quiet := New([]float64{-85}, Config{
		Threshold: -90, Complexity: 4, VolMin: -80, VolMax: -40,
	})
	require.Equal(t, 0.0, quiet.Vol())

	mid := New([]float64{-60}, Config{
		Threshold: -90, Complexity: 4, VolMin: -80, VolMax: -40,
	})
	require.InDelta(t, 0.5, mid.Vol(), 1e-12)
}

func TestIdle(t *testing.T) {
	m := Idle()

	require.NotEmpty(t, m.Components())
	require.Equal(t, 1.0, m.Vol())

	// Idle models are fresh copies, not shared state.
	m.Components()[0].Power = 0
	require.NotZero(t, Idle().Components()[0].Power)
}
