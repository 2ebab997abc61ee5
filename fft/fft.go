// Package fft provides a reusable plan around gonum's real-input fourier
// transform.
package fft

import "gonum.org/v1/gonum/dsp/fourier"

// Plan holds an FFT over a fixed input buffer. Callers fill Input, call
// Execute, and read Output. Output needs room for len(Input)/2+1 bins.
type Plan struct {
	Input  []float64
	Output []complex128

	fft *fourier.FFT
}

// NewPlan makes a plan tying input to output.
func NewPlan(input []float64, output []complex128) *Plan {
	return &Plan{
		Input:  input,
		Output: output,
		fft:    fourier.NewFFT(len(input)),
	}
}

// Execute runs the transform.
func (p *Plan) Execute() {
	p.fft.Coefficients(p.Output, p.Input)
}
