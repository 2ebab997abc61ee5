// Package anim turns spiral models into renderable point sequences, one
// frame at a time.
package anim

import (
	"math"
	"time"

	"github.com/sgentle/flourish/spiral"
)

// ReferenceInterval is the frame interval the decay rate is specified
// against. Smoothing speed stays the same at any actual frame rate because
// the decay is raised to dt over this interval.
const ReferenceInterval = time.Second / 60

// Config holds the tunables for the frame driver.
type Config struct {
	// VolDecay is how much of the previous smoothed loudness survives one
	// reference interval, in [0, 1). Higher is smoother.
	VolDecay float64
	// SizePower shapes the amplitude response to loudness.
	SizePower float64
	// ExtentPower shapes how far along the parametric domain is sampled,
	// which controls how far the spiral unfurls.
	ExtentPower float64
	// NumPoints is the curve sampling density. Each frame emits
	// NumPoints+1 points.
	NumPoints int
}

// Driver holds the only state that crosses frame boundaries: the smoothed
// loudness. It is owned by a single goroutine; frames are computed one at
// a time.
type Driver struct {
	cfg         Config
	smoothedVol float64
	points      []spiral.Point
}

// NewDriver returns a driver with no accumulated loudness.
func NewDriver(cfg Config) *Driver {
	return &Driver{
		cfg:    cfg,
		points: make([]spiral.Point, cfg.NumPoints+1),
	}
}

// Frame computes one frame of points from the given model.
//
// dt is the elapsed real time since the previous frame. A dt of zero or
// less snaps the smoothed loudness straight to the model's, which is what a
// forced synchronous redraw (a terminal resize, say) wants.
//
// radius is the target display radius. Points come back in a space whose
// origin sits at the bottom center of the display region with y growing
// upward, already scaled to fit the radius.
//
// The second return is false when there is nothing to draw and the output
// should clear instead. The returned slice is reused on the next call.
func (d *Driver) Frame(m *spiral.Model, dt time.Duration, radius float64) ([]spiral.Point, bool) {
	if dt <= 0 {
		d.smoothedVol = m.Vol()
	} else {
		weight := math.Pow(d.cfg.VolDecay, dt.Seconds()/ReferenceInterval.Seconds())
		d.smoothedVol = mix(m.Vol(), d.smoothedVol, weight)
	}

	if len(m.Components()) == 0 {
		return nil, false
	}

	size := math.Pow(d.smoothedVol, d.cfg.SizePower)
	extent := math.Pow(d.smoothedVol, d.cfg.ExtentPower)

	// The t=0 sample fixes the scale: whatever the signal's absolute
	// power, the reference point lands at the same display distance.
	ref := m.At(0)
	refRadius := math.Max(math.Abs(ref.X), math.Abs(ref.Y))

	if refRadius <= 0 {
		return nil, false
	}

	scale := size * radius / refRadius
	step := extent / float64(d.cfg.NumPoints)

	for idx := range d.points {
		p := m.At(float64(idx) * step)
		d.points[idx] = spiral.Point{
			X: p.X * scale,
			Y: p.Y * scale,
		}
	}

	return d.points, true
}

// SmoothedVol reports the current smoothed loudness.
func (d *Driver) SmoothedVol() float64 {
	return d.smoothedVol
}

// mix blends a toward b by weight w: w of 0 is all a, w of 1 is all b.
func mix(a, b, w float64) float64 {
	return a*(1-w) + b*w
}
