package util

import (
	"math"
	"sort"
	"strconv"
	"time"
)

// Panics if there is an error, otherwise returns the result
func Try[T any](result T, err error) T {
	CheckErr(err)
	return result
}

// Panics if error is not null
func CheckErr(err error) {
	if err != nil {
		panic(err)
	}
}

// Returns the current unix time in seconds
func EpochSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(1e9)
}

// Returns the seconds elapsed since start, using the monotonic clock
func Elapsed(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// Formats a duration in seconds with the shortest representation that round-trips
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Returns the smallest value of a non-empty array
func Min(a []float64) float64 {
	min := a[0]
	for _, x := range a[1:] {
		if x < min {
			min = x
		}
	}
	return min
}

// Computes a percentile (0-100) from an array, interpolating between the closest ranks.
// The array is not modified.
func Percentile(a []float64, p int) float64 {
	if len(a) <= 1 {
		return math.NaN()
	}

	sorted := make([]float64, len(a))
	copy(sorted, a)
	sort.Float64s(sorted)

	r := (float64(p) / 100) * float64(len(sorted)-1)
	ri := int(r)
	if r == float64(ri) {
		return sorted[ri]
	}
	rf := r - float64(ri)
	return sorted[ri] + rf*(sorted[ri+1]-sorted[ri])
}
