// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest
// integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs splits a seconds value into whole minutes and the
// remaining seconds.
func SecsToMinsAndSecs(seconds float64) (mins, secs int) {
	total := Round(seconds)

	return total / secondsInAMinute, total % secondsInAMinute
}

// FormatClock renders a duration as "MM:SS".
func FormatClock(d time.Duration) string {
	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", m, s)
}

// ToMilliseconds converts a duration to whole milliseconds, never negative.
func ToMilliseconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}

	return d.Milliseconds()
}
