// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/sgentle/flourish/input/parec"
)
