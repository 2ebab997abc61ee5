// Package input defines the audio sample sources that feed the visualizer.
package input

import (
	"context"
	"fmt"
	"sync"
)

// Sample is the type samples are delivered in.
type Sample = float64

// Device is a source that a backend can record from.
type Device interface {
	fmt.Stringer
}

// SessionConfig describes one recording session.
type SessionConfig struct {
	Device Device

	// FrameSize is the number of channels per frame.
	FrameSize int
	// SampleSize is the number of frames delivered per buffer write.
	SampleSize int
	// SampleRate is the rate samples are read at.
	SampleRate float64
}

// Session is an ongoing capture. Start blocks until the context is canceled
// or the source fails. It writes into dst under mu and sends on kickChan
// after every full buffer.
type Session interface {
	Start(ctx context.Context, dst [][]Sample, kickChan chan bool, mu *sync.Mutex) error
}

// MakeBuffers allocates sample buffers for the given channel count and
// samples per channel.
func MakeBuffers(channels, samples int) [][]Sample {
	bufs := make([][]Sample, channels)

	for idx := range bufs {
		bufs[idx] = make([]Sample, samples)
	}

	return bufs
}

// EnsureBufferLen reports whether buf matches the session's dimensions.
func EnsureBufferLen(cfg SessionConfig, buf [][]Sample) bool {
	if len(buf) != cfg.FrameSize {
		return false
	}

	for _, channel := range buf {
		if len(channel) != cfg.SampleSize {
			return false
		}
	}

	return true
}

// CopyBuffers copies src into dst channel by channel.
func CopyBuffers(dst, src [][]Sample) {
	for idx := range src {
		copy(dst[idx], src[idx])
	}
}
