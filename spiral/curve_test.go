package spiral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// singleComponentModel builds a model holding one component with the given
// ratio through the public constructor.
func singleComponentModel(t *testing.T, ratio float64) *Model {
	t.Helper()

	spectrum := make([]float64, int(ratio*2)+1)
	for idx := range spectrum {
		spectrum[idx] = -100
	}
	spectrum[int(ratio*2)] = -20

	m := New(spectrum, Config{
		Threshold: -90, Complexity: 1, VolMin: -80, VolMax: -40,
	})
	require.Len(t, m.Components(), 1)
	require.Equal(t, ratio, m.Components()[0].Ratio)

	return m
}

func TestAtPeriodic(t *testing.T) {
	m := singleComponentModel(t, 50)

	for _, tv := range []float64{0, 0.013, 0.5, 0.721} {
		a := m.At(tv)
		b := m.At(tv + 1.0/50)

		require.InDelta(t, a.X, b.X, 1e-9)
		require.InDelta(t, a.Y, b.Y, 1e-9)
	}
}

func TestAtPhaseOffset(t *testing.T) {
	m := singleComponentModel(t, 50)
	power := m.Components()[0].Power

	// At t=0 the x term is at zero crossing and the y term, a quarter
	// turn ahead, is at its crest.
	p := m.At(0)
	require.Equal(t, 0.0, p.X)
	require.InDelta(t, power, p.Y, 1e-12)
}

func TestAtSumsComponents(t *testing.T) {
	idle := Idle()

	var want float64
	for _, c := range idle.Components() {
		want += c.Power
	}

	require.InDelta(t, want, idle.At(0).Y, 1e-12)
}

func TestAtEmptyModel(t *testing.T) {
	m := New(nil, Config{Threshold: -90, Complexity: 4, VolMin: -80, VolMax: -40})

	p := m.At(0.3)
	require.Equal(t, Point{}, p)
}

func BenchmarkAt(b *testing.B) {
	spectrum := make([]float64, 1024)
	for idx := range spectrum {
		spectrum[idx] = -30 - float64(idx%50)
	}

	m := New(spectrum, Config{
		Threshold: -90, Complexity: 96, VolMin: -80, VolMax: -40,
	})

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.At(float64(i) / 1440)
	}
}
