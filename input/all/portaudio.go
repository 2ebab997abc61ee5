//go:build cgo

package all

import _ "github.com/sgentle/flourish/input/portaudio"
