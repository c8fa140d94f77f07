package reservation

import (
	"errors"
	"time"
)

// StayPeriod is a half-open date range [checkIn, checkOut): the check-out
// day is not occupied, so back-to-back stays on the same unit never overlap.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	checkIn = truncateToDate(checkIn)
	checkOut = truncateToDate(checkOut)

	if !checkOut.After(checkIn) {
		return StayPeriod{}, errors.New("check-out date must be after check-in date")
	}

	return StayPeriod{
		checkIn:  checkIn,
		checkOut: checkOut,
	}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

func (p StayPeriod) ValidateNotPastAt(now time.Time) error {
	if p.checkIn.Before(truncateToDate(now)) {
		return errors.New("check-in date cannot be in the past")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) MultiplyNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}
