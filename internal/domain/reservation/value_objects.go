package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidStayWindow = errors.New("estimated exit must be after estimated entry")
	ErrEmptyLicensePlate = errors.New("license plate cannot be empty")
)

// StayWindow is the estimated entry/exit pair given at booking time.
// Real entry and exit times are recorded separately by the ledger.
type StayWindow struct {
	entry time.Time
	exit  time.Time
}

func NewStayWindow(entry, exit time.Time) (StayWindow, error) {
	if !exit.After(entry) {
		return StayWindow{}, ErrInvalidStayWindow
	}
	return StayWindow{entry: entry, exit: exit}, nil
}

func (w StayWindow) Entry() time.Time {
	return w.entry
}

func (w StayWindow) Exit() time.Time {
	return w.exit
}

func (w StayWindow) Duration() time.Duration {
	return w.exit.Sub(w.entry)
}

type LicensePlate struct {
	value string
}

func NewLicensePlate(s string) (LicensePlate, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return LicensePlate{}, ErrEmptyLicensePlate
	}
	return LicensePlate{value: s}, nil
}

func (p LicensePlate) Value() string {
	return p.value
}
