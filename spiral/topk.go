package spiral

import "math"

// peak is a candidate frequency bin paired with its dB magnitude.
type peak struct {
	index int
	db    float64
}

// topPeaks returns up to k peaks holding the k largest magnitudes in spectrum
// that are at or above threshold. Working storage is O(k) regardless of
// spectrum length.
//
// The slots behave like a hand-off insertion sort: a value in hand scans left
// to right, swapping with any held value it strictly beats, so the result
// stays sorted by descending magnitude and the last slot always holds the
// smallest retained value once full. Equal magnitudes never evict, which
// leaves the first-seen (lowest index) bin in place on ties.
func topPeaks(spectrum []float64, k int, threshold float64) []peak {
	if k <= 0 {
		return nil
	}

	slots := make([]peak, 0, k)

	// Smallest magnitude currently held, once all slots are taken. Anything
	// below it cannot unseat a held value, so it gates a cheap skip.
	currentMin := math.Inf(-1)

	for idx, db := range spectrum {
		if db < threshold {
			continue
		}

		if len(slots) == k && db < currentMin {
			continue
		}

		hand := peak{index: idx, db: db}

		for sIdx := range slots {
			if slots[sIdx].db < hand.db {
				slots[sIdx], hand = hand, slots[sIdx]
			}
		}

		if len(slots) < k {
			slots = append(slots, hand)
			continue
		}

		// The hand carried a value off the end of a full array.
		currentMin = hand.db
	}

	return slots
}
