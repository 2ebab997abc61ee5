// Package spiral converts audio spectrum snapshots into epicyclic spiral
// curves.
//
// A model holds a bounded set of frequency components picked from a single
// spectrum snapshot. Each component contributes one pair of phase-shifted
// oscillations to the curve, the same way rotating phasors sum in Fourier
// synthesis. Models are cheap and are rebuilt from scratch on every frame;
// nothing mutates one after construction.
package spiral

import "math"

// Component is one retained oscillation term.
type Component struct {
	// Ratio is the source bin index halved. Halving keeps the curve
	// one-sided instead of mirroring it. The ratio multiplies the time
	// parameter directly, so it is a frequency in turns.
	Ratio float64

	// Power is the linear-scale magnitude recovered from the bin's dB
	// value. Never negative.
	Power float64
}

// Config holds the tunables for building models from spectra.
type Config struct {
	// Threshold is the dB floor below which bins are ignored.
	Threshold float64
	// Complexity is the maximum number of components to retain.
	Complexity int
	// VolMin and VolMax are the dB range mapped onto loudness 0..1.
	VolMin float64
	VolMax float64
}

// Model is one frame's worth of spiral shape.
type Model struct {
	comps []Component
	vol   float64
}

// New builds a model from one spectrum snapshot of per-bin dB magnitudes.
// The snapshot is only read during the call. An empty or silent snapshot
// produces a model with no components, which downstream treats as nothing
// to draw.
func New(spectrum []float64, cfg Config) *Model {
	peaks := topPeaks(spectrum, cfg.Complexity, cfg.Threshold)

	m := &Model{comps: make([]Component, len(peaks))}

	for idx, p := range peaks {
		m.comps[idx] = Component{
			Ratio: float64(p.index) / 2,
			Power: dbToPower(p.db),
		}
	}

	// topPeaks keeps its slots sorted by descending magnitude, so the
	// loudest retained bin is always first.
	if len(peaks) > 0 {
		m.vol = normalizeVol(peaks[0].db, cfg.VolMin, cfg.VolMax)
	}

	return m
}

// idleComponents is the shape drawn before any real signal arrives.
var idleComponents = []Component{
	{Ratio: 1, Power: 1},
	{Ratio: 3.5, Power: 0.5},
	{Ratio: 6, Power: 0.25},
}

// Idle returns the default model used when no spectrum has been produced
// yet, so a caller always has something to render. Its loudness is full.
func Idle() *Model {
	m := &Model{
		comps: make([]Component, len(idleComponents)),
		vol:   1,
	}

	copy(m.comps, idleComponents)

	return m
}

// Components returns the retained components, loudest first.
func (m *Model) Components() []Component {
	return m.comps
}

// Vol returns the normalized loudness of the loudest retained component,
// clamped to [0, 1]. A model with no components has zero loudness.
func (m *Model) Vol() float64 {
	return m.vol
}

// dbToPower recovers a linear magnitude from a dB value. 0 dB maps to
// exactly 1.
func dbToPower(db float64) float64 {
	return math.Pow(10, db/20)
}

func normalizeVol(db, volMin, volMax float64) float64 {
	vol := (db - volMin) / (volMax - volMin)

	if vol < 0 {
		return 0
	}

	if vol > 1 {
		return 1
	}

	return vol
}
