package reservation

import (
	"math"
	"time"
)

// Cost calculation lives here and nowhere else. The source system computed
// the same figure in two separately maintained places and they drifted.

// FinalCost bills the real elapsed stay: ceil(hours x hourlyRate).
// Used by registerExit.
func FinalCost(entry, exit time.Time, hourlyRate int64) int64 {
	return ceilHours(exit.Sub(entry), hourlyRate)
}

// EstimatedCost prices a planned stay with a one-hour minimum. Used for the
// pre-reservation estimate and the ticket display.
func EstimatedCost(entry, exit time.Time, hourlyRate int64) int64 {
	d := exit.Sub(entry)
	if d < time.Hour {
		d = time.Hour
	}
	return ceilHours(d, hourlyRate)
}

func ceilHours(d time.Duration, hourlyRate int64) int64 {
	if d <= 0 || hourlyRate <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Hours() * float64(hourlyRate)))
}
