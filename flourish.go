// Package flourish renders a continuously updating spiral whose shape
// follows the dominant frequency components of a live audio signal.
//
// The pipeline runs leaf first: an input backend fills shared sample
// buffers, the analyzer produces a spectrum snapshot, the spiral model
// picks the loudest components out of it, and the animation driver samples
// the resulting curve into points for whatever output the caller wired in.
package flourish

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/sgentle/flourish/anim"
	"github.com/sgentle/flourish/dsp"
	"github.com/sgentle/flourish/input"
	"github.com/sgentle/flourish/processor"
	"github.com/sgentle/flourish/spiral"
)

// Run assembles the pipeline from cfg and blocks until ctx ends, the input
// session fails, or the output's StartFunc-derived context ends.
func Run(cfg *Config, ctx context.Context) error {
	if cfg.Output == nil {
		return errors.New("config has no output")
	}

	backendName := cfg.Backend
	if backendName == "" {
		backendName = input.DefaultBackend()
	}

	backend, err := input.InitBackend(backendName)
	if err != nil {
		return err
	}
	defer backend.Close()

	device, err := input.GetDevice(backend, cfg.Device)
	if err != nil {
		return err
	}

	sessConfig := input.SessionConfig{
		Device:     device,
		FrameSize:  cfg.ChannelCount,
		SampleSize: cfg.SampleSize,
		SampleRate: cfg.SampleRate,
	}

	audio, err := backend.Start(sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	inputBuffers := input.MakeBuffers(cfg.ChannelCount, cfg.SampleSize)

	analyzer := dsp.NewAnalyzer(dsp.AnalyzerConfig{
		SampleRate: cfg.SampleRate,
		SampleSize: cfg.SampleSize,
		Smoothing:  cfg.Smoothing,
		FloorDB:    cfg.FloorDB,
	})

	vis := processor.New(processor.Config{
		SampleSize:   cfg.SampleSize,
		ChannelCount: cfg.ChannelCount,
		ProcessRate:  cfg.FrameRate,
		Buffers:      inputBuffers,
		Analyzer:     analyzer,
		Model: spiral.Config{
			Threshold:  cfg.Threshold,
			Complexity: cfg.Complexity,
			VolMin:     cfg.VolMin,
			VolMax:     cfg.VolMax,
		},
		Driver: anim.NewDriver(anim.Config{
			VolDecay:    cfg.VolSmoothing,
			SizePower:   cfg.SizePower,
			ExtentPower: cfg.ExtentPower,
			NumPoints:   cfg.NumPoints,
		}),
		Output: cfg.Output,
		Redraw: cfg.Redraw,
	})

	if cfg.SetupFunc != nil {
		if err := cfg.SetupFunc(); err != nil {
			return err
		}
	}

	if cfg.CleanupFunc != nil {
		defer cfg.CleanupFunc()
	}

	if cfg.StartFunc != nil {
		if ctx, err = cfg.StartFunc(ctx); err != nil {
			return err
		}
	}

	ctx = vis.Start(ctx)
	defer vis.Stop()

	kickChan := make(chan bool, 1)
	mu := &sync.Mutex{}

	go vis.Process(ctx, kickChan, mu)

	if err := audio.Start(ctx, inputBuffers, kickChan, mu); err != nil {
		if !errors.Is(ctx.Err(), context.Canceled) {
			return errors.Wrap(err, "failed to start input session")
		}
	}

	return nil
}
