// Package dsp turns raw sample buffers into spectrum snapshots.
//
// The analyzer mirrors the behavior of the Web Audio AnalyserNode that the
// browser incarnation of this visualizer ran against: Hann window, real FFT,
// per-bin magnitude smoothing over time, then conversion to decibels with a
// hard silence floor.
package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/sgentle/flourish/fft"
)

// AnalyzerConfig holds analyzer tunables.
type AnalyzerConfig struct {
	SampleRate float64 // audio sample rate
	SampleSize int     // samples per FFT, power of two
	Smoothing  float64 // time smoothing of linear magnitudes, 0 disables
	FloorDB    float64 // bins below this dB value clamp to it
}

// Analyzer produces per-bin dB magnitudes from sample buffers.
type Analyzer interface {
	BinCount() int
	Process(samples []float64, dst []float64)
}

type analyzer struct {
	cfg  AnalyzerConfig
	plan *fft.Plan

	// smoothed carries the linear magnitudes between calls.
	smoothed []float64
}

// NewAnalyzer creates an analyzer for the configured sample size.
func NewAnalyzer(cfg AnalyzerConfig) Analyzer {
	fftIn := make([]float64, cfg.SampleSize)
	fftOut := make([]complex128, cfg.SampleSize/2+1)

	return &analyzer{
		cfg:      cfg,
		plan:     fft.NewPlan(fftIn, fftOut),
		smoothed: make([]float64, cfg.SampleSize/2),
	}
}

// BinCount returns the number of usable frequency bins.
func (az *analyzer) BinCount() int {
	return az.cfg.SampleSize / 2
}

// Process windows samples, runs the FFT, and writes one dB magnitude per
// bin into dst. dst must be BinCount long. Short sample buffers are
// zero-padded.
func (az *analyzer) Process(samples []float64, dst []float64) {
	n := copy(az.plan.Input, samples)
	for idx := n; idx < len(az.plan.Input); idx++ {
		az.plan.Input[idx] = 0
	}

	window.Hann(az.plan.Input)
	az.plan.Execute()

	// Normalize so a full-scale sine lands near 0 dB.
	norm := 2 / float64(az.cfg.SampleSize)

	for idx := range dst[:az.BinCount()] {
		mag := cmplx.Abs(az.plan.Output[idx]) * norm

		if az.cfg.Smoothing > 0 {
			mag = az.smoothed[idx]*az.cfg.Smoothing + mag*(1-az.cfg.Smoothing)
			az.smoothed[idx] = mag
		}

		db := 20 * math.Log10(mag)
		if db < az.cfg.FloorDB || math.IsNaN(db) {
			db = az.cfg.FloorDB
		}

		dst[idx] = db
	}
}
