package timeutil

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	table := []struct {
		duration time.Duration
		want     string
	}{
		{0, "00:00"},
		{9 * time.Second, "00:09"},
		{75 * time.Second, "01:15"},
		{10 * time.Minute, "10:00"},
		{119*time.Second + 600*time.Millisecond, "02:00"},
	}

	for _, tc := range table {
		if got := FormatClock(tc.duration); got != tc.want {
			t.Errorf("FormatClock(%v): expected %s, got: %s",
				tc.duration, tc.want, got)
		}
	}
}

func TestToMilliseconds(t *testing.T) {
	table := []struct {
		duration time.Duration
		want     int64
	}{
		{1500 * time.Millisecond, 1500},
		{0, 0},
		{-2 * time.Second, 0},
		{999 * time.Microsecond, 0},
	}

	for _, tc := range table {
		if got := ToMilliseconds(tc.duration); got != tc.want {
			t.Errorf("ToMilliseconds(%v): expected %d, got: %d",
				tc.duration, tc.want, got)
		}
	}
}
