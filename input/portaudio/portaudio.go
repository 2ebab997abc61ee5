//go:build cgo

// Package portaudio records through the PortAudio library.
package portaudio

import (
	"context"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"github.com/sgentle/flourish/input"
)

func init() {
	input.RegisterBackend("portaudio", &Backend{})
}

// ErrBadDevice is returned when a session is started with a device that did
// not come from this backend.
var ErrBadDevice = errors.New("device not found")

// Backend represents the PortAudio backend. A zero-value instance is a
// valid instance.
type Backend struct {
	initialized bool
}

func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(err, "failed to initialize portaudio")
	}

	b.initialized = true
	return nil
}

func (b *Backend) Close() error {
	if !b.initialized {
		return nil
	}

	b.initialized = false
	return portaudio.Terminate()
}

func (b *Backend) Devices() ([]input.Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	gDevices := make([]input.Device, 0, len(devices))
	for _, device := range devices {
		if device.MaxInputChannels < 1 {
			continue
		}
		gDevices = append(gDevices, Device{device})
	}

	return gDevices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default input device")
	}

	return Device{device}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, ErrBadDevice
	}

	return NewSession(dv, cfg)
}

// Device wraps a PortAudio device description.
type Device struct {
	*portaudio.DeviceInfo
}

func (d Device) String() string {
	return d.Name
}

// Session is an open PortAudio input stream.
type Session struct {
	device Device
	cfg    input.SessionConfig
}

// NewSession creates a session for the given device.
func NewSession(device Device, cfg input.SessionConfig) (*Session, error) {
	if cfg.FrameSize > device.MaxInputChannels {
		return nil, errors.Errorf(
			"device %q only supports %d channels", device, device.MaxInputChannels)
	}

	return &Session{
		device: device,
		cfg:    cfg,
	}, nil
}

// Start opens the stream and reads until the context is canceled or
// reading fails. Samples land in dst under mu, one kick per buffer.
func (s *Session) Start(ctx context.Context, dst [][]input.Sample, kickChan chan bool, mu *sync.Mutex) error {
	if !input.EnsureBufferLen(s.cfg, dst) {
		return errors.New("invalid dst length given")
	}

	param := portaudio.LowLatencyParameters(s.device.DeviceInfo, nil)
	param.Input.Channels = s.cfg.FrameSize
	param.SampleRate = s.cfg.SampleRate
	param.FramesPerBuffer = s.cfg.SampleSize

	// Interleaved frames, deinterleaved below.
	raw := make([]float32, s.cfg.SampleSize*s.cfg.FrameSize)

	stream, err := portaudio.OpenStream(param, raw)
	if err != nil {
		return errors.Wrap(err, "failed to open stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return errors.Wrap(err, "failed to start stream")
	}
	defer stream.Stop()

	framesz := s.cfg.FrameSize

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			// Overflow drops old samples but the stream stays healthy.
			if !errors.Is(err, portaudio.InputOverflowed) {
				return errors.Wrap(err, "failed to read stream")
			}
		}

		mu.Lock()
		for n, v := range raw {
			dst[n%framesz][n/framesz] = input.Sample(v)
		}
		mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case kickChan <- true:
		}
	}
}
