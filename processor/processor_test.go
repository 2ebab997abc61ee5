package processor

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/sgentle/flourish/anim"
	"github.com/sgentle/flourish/input"
	"github.com/sgentle/flourish/spiral"
)

// stubAnalyzer hands back a fixed spectrum regardless of input.
type stubAnalyzer struct {
	spectrum []float64
}

func (s *stubAnalyzer) BinCount() int { return len(s.spectrum) }

func (s *stubAnalyzer) Process(_, dst []float64) {
	copy(dst, s.spectrum)
}

// stubOutput records every Write it receives.
type stubOutput struct {
	radius float64
	writes [][]spiral.Point
}

func (s *stubOutput) Radius() float64 { return s.radius }

func (s *stubOutput) Write(points []spiral.Point) error {
	var clone []spiral.Point
	if points != nil {
		clone = append(clone, points...)
	}
	s.writes = append(s.writes, clone)
	return nil
}

func flatSpectrum(bins int, db float64) []float64 {
	spectrum := make([]float64, bins)
	for idx := range spectrum {
		spectrum[idx] = db
	}
	return spectrum
}

func testProcessor(spectrum []float64, out *stubOutput) *processor {
	return New(Config{
		SampleSize:   64,
		ChannelCount: 1,
		ProcessRate:  60,
		Buffers:      input.MakeBuffers(1, 64),
		Analyzer:     &stubAnalyzer{spectrum: spectrum},
		Model: spiral.Config{
			Threshold:  -90,
			Complexity: 8,
			VolMin:     -80,
			VolMax:     -40,
		},
		Driver: anim.NewDriver(anim.Config{
			VolDecay:    0.9,
			SizePower:   1,
			ExtentPower: 2,
			NumPoints:   32,
		}),
		Output: out,
	})
}

func TestFrameIdle(t *testing.T) {
	out := &stubOutput{radius: 100}
	vis := testProcessor(flatSpectrum(32, -100), out)

	var mu sync.Mutex
	vis.frame(&mu, false)

	if len(out.writes) != 1 {
		t.Fatalf("got %d writes, expected 1", len(out.writes))
	}

	points := out.writes[0]
	if len(points) != 33 {
		t.Fatalf("got %d points, expected 33", len(points))
	}

	// The idle curve starts at the reference point, scaled to the radius.
	if math.Abs(points[0].X) > 1e-9 || math.Abs(points[0].Y-100) > 1e-9 {
		t.Errorf("anchor point = %+v, expected (0, 100)", points[0])
	}
}

func TestFrameSilentSignal(t *testing.T) {
	out := &stubOutput{radius: 100}
	vis := testProcessor(flatSpectrum(32, -100), out)
	vis.hasSignal = true

	var mu sync.Mutex
	vis.frame(&mu, false)

	// Every bin is under the threshold, so there is nothing to draw.
	if len(out.writes) != 1 || out.writes[0] != nil {
		t.Fatalf("expected a single clearing write, got %+v", out.writes)
	}
}

func TestFrameWithTone(t *testing.T) {
	spectrum := flatSpectrum(32, -100)
	spectrum[8] = -40

	out := &stubOutput{radius: 100}
	vis := testProcessor(spectrum, out)
	vis.hasSignal = true

	var mu sync.Mutex
	vis.frame(&mu, false)

	if len(out.writes) != 1 || len(out.writes[0]) != 33 {
		t.Fatalf("expected one full frame, got %+v", out.writes)
	}

	for _, p := range out.writes[0] {
		if math.Abs(p.X) > 100+1e-9 || math.Abs(p.Y) > 100+1e-9 {
			t.Fatalf("point %+v outside the reference radius", p)
		}
	}
}

func TestMixdown(t *testing.T) {
	out := &stubOutput{radius: 100}
	vis := testProcessor(flatSpectrum(32, -100), out)
	vis.scratchBufs = [][]input.Sample{
		{1, 0, -1, 0},
		{0, 1, 0, -1},
	}
	vis.channelCount = 2
	vis.monoBuf = make([]float64, 4)

	vis.mixdown()

	want := []float64{0.5, 0.5, -0.5, -0.5}
	for idx, v := range vis.monoBuf {
		if v != want[idx] {
			t.Errorf("mono[%d] = %f, expected %f", idx, v, want[idx])
		}
	}
}

func TestProcessStopsOnCancel(t *testing.T) {
	out := &stubOutput{radius: 100}
	vis := testProcessor(flatSpectrum(32, -100), out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	done := make(chan struct{})

	go func() {
		vis.Process(ctx, make(chan bool), &mu)
		close(done)
	}()

	<-done

	if len(out.writes) == 0 {
		t.Error("expected at least one frame before shutdown")
	}
}
