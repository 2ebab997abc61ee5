package spiral

import "math"

const (
	// sineTableSize is the number of samples in one precomputed sine cycle.
	// Must be a power of two so the index wraps with a bitmask.
	sineTableSize = 512

	sineTableMask = sineTableSize - 1
)

// sineTable holds one full cycle of sine. It is filled once at init and
// never written again.
var sineTable [sineTableSize]float64

func init() {
	for idx := range sineTable {
		sineTable[idx] = math.Sin(2 * math.Pi * float64(idx) / sineTableSize)
	}
}

// Sin approximates sin(2π·turns) by linear interpolation between the two
// nearest table entries. The argument is in turns (full cycles), not radians,
// so a frequency ratio multiplied by a time parameter can be passed in
// directly. Any argument wraps, including negative ones.
func Sin(turns float64) float64 {
	pos := turns * sineTableSize
	base := math.Floor(pos)
	frac := pos - base

	lo := int(base) & sineTableMask
	hi := (lo + 1) & sineTableMask

	return sineTable[lo] + (sineTable[hi]-sineTable[lo])*frac
}
