// Package processor owns the frame loop: it pulls the latest samples, asks
// the analyzer for a spectrum, rebuilds the spiral model, advances the
// animation driver, and hands points to the output.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/sgentle/flourish/anim"
	"github.com/sgentle/flourish/dsp"
	"github.com/sgentle/flourish/input"
	"github.com/sgentle/flourish/spiral"
)

// Output is where rendered frames go. Radius reports the target display
// radius in the output's own coordinates; Write strokes the polyline. A nil
// or empty points slice means there is nothing to draw and the output
// should clear.
type Output interface {
	Radius() float64
	Write(points []spiral.Point) error
}

// Processor drives the frame loop.
type Processor interface {
	Start(ctx context.Context) context.Context
	Stop()
	Process(context.Context, chan bool, *sync.Mutex)
}

// Config assembles a processor.
type Config struct {
	SampleSize   int              // number of samples per buffer
	ChannelCount int              // number of channels
	ProcessRate  int              // target frames per second
	Buffers      [][]input.Sample // sample buffers shared with the input session
	Analyzer     dsp.Analyzer     // spectrum source
	Model        spiral.Config    // model construction tunables
	Driver       *anim.Driver     // per-frame animation state
	Output       Output           // where frames go

	// Redraw delivers forced synchronous redraws, drawn with no elapsed
	// time so smoothing snaps. May be nil.
	Redraw <-chan bool
}

type processor struct {
	channelCount int
	processRate  int

	// Double-buffer the audio samples so the input session can write
	// while a frame is being processed.
	inputBufs   [][]input.Sample
	scratchBufs [][]input.Sample

	monoBuf  []float64
	spectrum []float64

	anlz   dsp.Analyzer
	model  spiral.Config
	driver *anim.Driver
	out    Output
	redraw <-chan bool

	lastFrame time.Time
	hasSignal bool
}

// New creates a processor from cfg.
func New(cfg Config) *processor {
	return &processor{
		channelCount: cfg.ChannelCount,
		processRate:  cfg.ProcessRate,
		inputBufs:    cfg.Buffers,
		scratchBufs:  input.MakeBuffers(cfg.ChannelCount, cfg.SampleSize),
		monoBuf:      make([]float64, cfg.SampleSize),
		spectrum:     make([]float64, cfg.Analyzer.BinCount()),
		anlz:         cfg.Analyzer,
		model:        cfg.Model,
		driver:       cfg.Driver,
		out:          cfg.Output,
		redraw:       cfg.Redraw,
	}
}

func (vis *processor) Start(ctx context.Context) context.Context {
	return ctx
}

func (vis *processor) Stop() {}

// Process runs frames until the context ends. It draws on every tick of the
// configured frame rate and on every kick from the input session, whichever
// comes first.
func (vis *processor) Process(ctx context.Context, kickChan chan bool, mu *sync.Mutex) {
	rate := vis.processRate
	if rate <= 0 {
		rate = 60
	}

	dur := time.Second / time.Duration(rate)
	ticker := time.NewTicker(dur)
	defer ticker.Stop()

	for {
		vis.frame(mu, false)

		select {
		case <-ctx.Done():
			return
		case <-kickChan:
			vis.hasSignal = true
		case <-vis.redrawChan():
			vis.frame(mu, true)
		case <-ticker.C:
		}
		ticker.Reset(dur)
	}
}

func (vis *processor) redrawChan() <-chan bool {
	return vis.redraw
}

// frame runs one full rebuild-smooth-sample-emit cycle. Forced frames carry
// no elapsed time, so the driver snaps instead of smoothing.
func (vis *processor) frame(mu *sync.Mutex, forced bool) {
	mu.Lock()
	input.CopyBuffers(vis.scratchBufs, vis.inputBufs)
	mu.Unlock()

	vis.mixdown()

	model := spiral.Idle()

	if vis.hasSignal {
		vis.anlz.Process(vis.monoBuf, vis.spectrum)
		model = spiral.New(vis.spectrum, vis.model)
	}

	var dt time.Duration
	now := time.Now()

	if !forced && !vis.lastFrame.IsZero() {
		dt = now.Sub(vis.lastFrame)
	}
	vis.lastFrame = now

	points, ok := vis.driver.Frame(model, dt, vis.out.Radius())
	if !ok {
		vis.out.Write(nil)
		return
	}

	vis.out.Write(points)
}

// mixdown folds all channels into the mono analysis buffer.
func (vis *processor) mixdown() {
	scale := 1 / float64(vis.channelCount)

	for idx := range vis.monoBuf {
		var v float64
		for ch := range vis.scratchBufs {
			v += vis.scratchBufs[ch][idx]
		}
		vis.monoBuf[idx] = v * scale
	}
}
