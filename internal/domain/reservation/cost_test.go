//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestFinalCost(t *testing.T) {
	cases := []struct {
		name string
		stay time.Duration
		rate int64
		want int64
	}{
		{name: "exact hours", stay: 2 * time.Hour, rate: 6000, want: 12000},
		{name: "fractional hours billed proportionally", stay: 90 * time.Minute, rate: 5000, want: 7500},
		{name: "no minimum for short stays", stay: 12 * time.Minute, rate: 5000, want: 1000},
		{name: "partial cent rounds up", stay: time.Hour + time.Second, rate: 3600, want: 3601},
		{name: "zero duration", stay: 0, rate: 5000, want: 0},
		{name: "zero rate", stay: 2 * time.Hour, rate: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reservation.FinalCost(baseTime, baseTime.Add(tc.stay), tc.rate)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEstimatedCost(t *testing.T) {
	cases := []struct {
		name string
		stay time.Duration
		rate int64
		want int64
	}{
		{name: "short window charged one hour minimum", stay: 20 * time.Minute, rate: 5000, want: 5000},
		{name: "exactly one hour", stay: time.Hour, rate: 5000, want: 5000},
		{name: "longer window priced as is", stay: 150 * time.Minute, rate: 4000, want: 10000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reservation.EstimatedCost(baseTime, baseTime.Add(tc.stay), tc.rate)
			assert.Equal(t, tc.want, got)
		})
	}
}
