package flourish

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sgentle/flourish/processor"
)

// SetupFunc runs once before the pipeline starts.
type SetupFunc func() error

// StartFunc runs when the pipeline starts and may derive the run context.
type StartFunc func(ctx context.Context) (context.Context, error)

// CleanupFunc runs after the pipeline stops.
type CleanupFunc func() error

// Config describes a full pipeline. Flag and file loading fill the tunable
// fields; the embedding caller supplies the output hooks.
type Config struct {
	// Backend is the name of the input backend, see list-backends.
	Backend string `yaml:"backend"`
	// Device is the name of the device to record, see list-devices.
	Device string `yaml:"device"`
	// SampleRate is the rate samples are read at.
	SampleRate float64 `yaml:"sample_rate"`
	// SampleSize is the FFT size; half of it becomes usable bins.
	SampleSize int `yaml:"sample_size"`
	// ChannelCount is the number of channels to record.
	ChannelCount int `yaml:"channels"`
	// FrameRate is the number of frames to draw every second.
	FrameRate int `yaml:"frame_rate"`

	// Threshold is the dB floor for retaining a bin as a component.
	Threshold float64 `yaml:"threshold"`
	// Complexity is the maximum number of retained components.
	Complexity int `yaml:"complexity"`
	// Smoothing is the analyzer's spectral time smoothing, 0 to 1.
	Smoothing float64 `yaml:"smoothing"`
	// FloorDB clamps analyzer output; bins below it read as silence.
	FloorDB float64 `yaml:"floor_db"`

	// VolMin and VolMax are the dB range mapped onto loudness 0 to 1.
	VolMin float64 `yaml:"volmin"`
	VolMax float64 `yaml:"volmax"`
	// VolSmoothing is the loudness decay rate per reference frame.
	VolSmoothing float64 `yaml:"volsmoothing"`
	// SizePower shapes the amplitude response to loudness.
	SizePower float64 `yaml:"sizepower"`
	// ExtentPower shapes the unfurl response to loudness.
	ExtentPower float64 `yaml:"extentpower"`
	// NumPoints is the curve sampling density per frame.
	NumPoints int `yaml:"numpoints"`

	// SetupFunc is called when setting up the pipeline.
	SetupFunc SetupFunc `yaml:"-"`
	// StartFunc is called when starting the pipeline.
	StartFunc StartFunc `yaml:"-"`
	// CleanupFunc is called when tearing the pipeline down.
	CleanupFunc CleanupFunc `yaml:"-"`
	// Output is where rendered frames go.
	Output processor.Output `yaml:"-"`
	// Redraw feeds forced synchronous redraws into the frame loop.
	Redraw <-chan bool `yaml:"-"`
}

// NewZeroConfig returns the default configuration.
func NewZeroConfig() Config {
	return Config{
		SampleRate:   44100,
		SampleSize:   2048,
		ChannelCount: 1,
		FrameRate:    60,
		Threshold:    -90,
		Complexity:   96,
		Smoothing:    0.5,
		FloorDB:      -100,
		VolMin:       -80,
		VolMax:       -40,
		VolSmoothing: 0.9,
		SizePower:    1,
		ExtentPower:  2,
		NumPoints:    1440,
	}
}

// LoadFile overlays values from a YAML file onto cfg.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	return nil
}

// Validate checks the configuration and normalizes what it can.
func (cfg *Config) Validate() error {
	if cfg.SampleRate < float64(cfg.SampleSize) {
		return errors.New("sample rate lower than sample size")
	}

	if cfg.SampleSize < 4 {
		return errors.New("sample size too small (4+ required)")
	}

	if cfg.SampleSize&(cfg.SampleSize-1) != 0 {
		return errors.New("sample size must be a power of two")
	}

	switch {
	case cfg.ChannelCount > 2:
		return errors.New("too many channels (2 max)")

	case cfg.ChannelCount < 1:
		return errors.New("too few channels (1 min)")
	}

	if cfg.Complexity < 1 {
		return errors.New("complexity must be at least 1")
	}

	if cfg.NumPoints < 1 {
		return errors.New("numpoints must be at least 1")
	}

	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		return errors.New("smoothing must be in [0, 1)")
	}

	if cfg.VolSmoothing < 0 || cfg.VolSmoothing >= 1 {
		return errors.New("volsmoothing must be in [0, 1)")
	}

	if cfg.VolMax <= cfg.VolMin {
		return errors.New("volmax must be above volmin")
	}

	if cfg.Threshold <= cfg.FloorDB {
		// Otherwise every bin at the analyzer floor would count as a
		// component and silence would fill all the slots.
		return errors.New("threshold must be above the dB floor")
	}

	return nil
}
