package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/sgentle/flourish"
	"github.com/sgentle/flourish/graphic"
	"github.com/sgentle/flourish/input"
	"github.com/sgentle/flourish/web"

	_ "github.com/sgentle/flourish/input/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "flourish"

// AppDesc is the app description
const AppDesc = "Frequency-Led Oscillating Unfurling Rendered In Spiral Harmonics"

// AppSite is the app website
const AppSite = "https://github.com/sgentle/flourish"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := flourish.NewZeroConfig()

	opts := doFlags(&cfg)
	if opts.done {
		return
	}

	chk(cfg.Validate(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if opts.webAddr != "" {
		server := web.NewServer(opts.webAddr)
		cfg.Output = server
		cfg.CleanupFunc = server.Close
	} else {
		display := graphic.NewDisplay()

		cfg.Output = display
		cfg.Redraw = display.Redraw()
		cfg.SetupFunc = display.Init
		cfg.StartFunc = func(ctx context.Context) (context.Context, error) {
			return display.Start(ctx), nil
		}
		cfg.CleanupFunc = func() error {
			display.Stop()
			return display.Close()
		}
	}

	chk(flourish.Run(&cfg, ctx), "failed to run flourish")
}

type options struct {
	done    bool
	webAddr string
}

func doFlags(cfg *flourish.Config) options {
	var opts options
	var configPath string

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&configPath, "c", "config", "path to a yaml config file (overrides other flags)")
	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.SampleSize, "n", "samples", "fft size (power of two)")
	parser.Int(&cfg.FrameRate, "f", "fps", "frame rate")
	parser.Int(&cfg.ChannelCount, "ch", "channels", "channel count (1 or 2)")
	parser.Float64(&cfg.Threshold, "th", "threshold", "dB floor for retaining a component")
	parser.Int(&cfg.Complexity, "k", "complexity", "max number of retained components")
	parser.Float64(&cfg.Smoothing, "sf", "smoothing", "spectral smoothing (0-1)")
	parser.Float64(&cfg.VolMin, "vl", "volmin", "dB value mapped to zero loudness")
	parser.Float64(&cfg.VolMax, "vh", "volmax", "dB value mapped to full loudness")
	parser.Float64(&cfg.VolSmoothing, "vs", "volsmoothing", "loudness decay per frame (0-1)")
	parser.Float64(&cfg.SizePower, "sp", "sizepower", "amplitude response exponent")
	parser.Float64(&cfg.ExtentPower, "ep", "extentpower", "unfurl response exponent")
	parser.Int(&cfg.NumPoints, "p", "points", "curve samples per frame")
	parser.String(&opts.webAddr, "w", "web", "serve frames to browsers on this address instead of the terminal")

	chk(parser.Parse(), "failed to parse arguments")

	if configPath != "" {
		chk(cfg.LoadFile(configPath), "failed to load config file")
	}

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		opts.done = true

	case listDevicesCmd.Used:
		backend, err := input.InitBackend(cfg.Backend)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", cfg.Backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		opts.done = true
	}

	return opts
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
