// Package graphic draws spiral frames on the terminal.
package graphic

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sgentle/flourish/spiral"
)

var styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)

// Display renders point sequences as a braille polyline growing up from
// the bottom of the screen.
type Display struct {
	screen tcell.Screen
	canvas *Canvas
	redraw chan bool
}

// NewDisplay returns an uninitialized display. Call Init before use.
func NewDisplay() *Display {
	return &Display{
		redraw: make(chan bool, 1),
	}
}

// Init takes over the terminal.
func (d *Display) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "failed to create screen")
	}

	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}

	screen.DisableMouse()
	screen.HideCursor()

	d.screen = screen

	w, h := screen.Size()
	d.canvas = NewCanvas(w, h)

	return nil
}

// Start runs the event poller. The returned context ends when the user
// quits.
func (d *Display) Start(ctx context.Context) context.Context {
	dispCtx, dispCancel := context.WithCancel(ctx)
	go d.eventPoller(dispCtx, dispCancel)
	return dispCtx
}

func (d *Display) eventPoller(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return
				}

			case tcell.KeyCtrlC, tcell.KeyEscape:
				return
			}

		case *tcell.EventResize:
			d.screen.Sync()

			// Ask for a forced redraw so the new size shows up without
			// waiting for the next tick. The draw path re-reads the
			// screen size itself.
			select {
			case d.redraw <- true:
			default:
			}
		}
	}
}

// Stop ends the event poller's screen loop.
func (d *Display) Stop() error {
	return nil
}

// Close restores the terminal.
func (d *Display) Close() error {
	d.screen.Fini()
	return nil
}

// Redraw delivers one signal per forced synchronous redraw request.
func (d *Display) Redraw() <-chan bool {
	return d.redraw
}

// Radius returns the target display radius in braille pixels.
func (d *Display) Radius() float64 {
	d.resize()

	pw := float64(d.canvas.PixelWidth())
	ph := float64(d.canvas.PixelHeight())

	return math.Min(pw, ph) / 2
}

// resize matches the canvas to the current screen size. Called only from
// the drawing goroutine.
func (d *Display) resize() {
	w, h := d.screen.Size()
	if w != d.canvas.width || h != d.canvas.height {
		d.canvas = NewCanvas(w, h)
	}
}

// Write strokes the polyline onto the screen. Points use the driver's
// space: origin at the bottom center, y up. Empty input clears the screen.
func (d *Display) Write(points []spiral.Point) error {
	d.resize()
	d.screen.Clear()

	if len(points) > 0 {
		d.stroke(points)
	}

	d.screen.Show()

	return nil
}

func (d *Display) stroke(points []spiral.Point) {
	d.canvas.Clear()

	cx := d.canvas.PixelWidth() / 2
	bottom := d.canvas.PixelHeight() - 1

	px := cx + int(math.Round(points[0].X))
	py := bottom - int(math.Round(points[0].Y))

	for _, p := range points[1:] {
		nx := cx + int(math.Round(p.X))
		ny := bottom - int(math.Round(p.Y))

		d.canvas.Line(px, py, nx, ny)

		px, py = nx, ny
	}

	for cy := 0; cy < d.canvas.height; cy++ {
		for cxCell := 0; cxCell < d.canvas.width; cxCell++ {
			if r := d.canvas.Rune(cxCell, cy); r != 0 {
				d.screen.SetContent(cxCell, cy, r, nil, styleDefault)
			}
		}
	}
}
