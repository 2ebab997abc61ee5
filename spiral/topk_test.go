package spiral

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopPeaksPicksLargest(t *testing.T) {
	spectrum := []float64{-100, -10, -50, -5, -80}

	peaks := topPeaks(spectrum, 2, -90)

	require.Len(t, peaks, 2)
	require.Equal(t, peak{index: 3, db: -5}, peaks[0])
	require.Equal(t, peak{index: 1, db: -10}, peaks[1])
}

func TestTopPeaksThreshold(t *testing.T) {
	spectrum := []float64{-95, -95, -95}

	// Below-threshold values never appear, even with spare capacity.
	require.Empty(t, topPeaks(spectrum, 5, -90))

	// At-threshold values do.
	require.Len(t, topPeaks([]float64{-90}, 5, -90), 1)
}

func TestTopPeaksEdgeCases(t *testing.T) {
	require.Empty(t, topPeaks(nil, 4, -90))
	require.Empty(t, topPeaks([]float64{-10, -20}, 0, -90))
}

func TestTopPeaksTiesKeepFirstSeen(t *testing.T) {
	peaks := topPeaks([]float64{-10, -10, -10}, 2, -90)

	require.Len(t, peaks, 2)
	require.Equal(t, 0, peaks[0].index)
	require.Equal(t, 1, peaks[1].index)
}

func TestTopPeaksMatchesFullSort(t *testing.T) {
	spectrum := []float64{-42, -3, -77, -12, -61, -8, -30, -19, -55, -1}
	k := 4

	peaks := topPeaks(spectrum, k, -90)
	require.Len(t, peaks, k)

	sorted := append([]float64(nil), spectrum...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	for idx, p := range peaks {
		require.Equal(t, sorted[idx], p.db)
	}

	// The last slot holds the smallest retained value once full.
	for _, p := range peaks[:k-1] {
		require.GreaterOrEqual(t, p.db, peaks[k-1].db)
	}
}
