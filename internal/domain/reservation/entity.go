package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayPeriod  = errors.New("invalid stay period")
	ErrInvalidGuestCount  = errors.New("guest count exceeds room capacity")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyCancelled   = errors.New("reservation is already cancelled")
	ErrNegativeTotalPrice = errors.New("total price cannot be negative")
)

// RoomSpec carries the room attributes reservation creation depends on.
type RoomSpec struct {
	ID         uuid.UUID
	PriceCents int64
	Capacity   int
}

type Reservation struct {
	id              uuid.UUID
	userID          uuid.UUID
	roomID          uuid.UUID
	period          StayPeriod
	guests          int
	total           Money
	status          Status
	specialRequests string
	cancelReason    string
	cancelledAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation prices the stay as nightly rate times nights and starts the
// lifecycle at PENDING. The caller supplies now so validation is testable.
func NewReservation(
	room RoomSpec,
	userID uuid.UUID,
	period StayPeriod,
	guests int,
	specialRequests string,
	now time.Time,
) (*Reservation, error) {
	if err := period.ValidateNotPastAt(now); err != nil {
		return nil, ErrInvalidStayPeriod
	}

	if guests < 1 || guests > room.Capacity {
		return nil, ErrInvalidGuestCount
	}

	nightly, err := NewMoney(room.PriceCents)
	if err != nil {
		return nil, ErrNegativeTotalPrice
	}

	return &Reservation{
		id:              uuid.New(),
		userID:          userID,
		roomID:          room.ID,
		period:          period,
		guests:          guests,
		total:           nightly.MultiplyNights(period.Nights()),
		status:          StatusPending,
		specialRequests: specialRequests,
	}, nil
}

func ReconstructReservation(
	id, userID, roomID uuid.UUID,
	period StayPeriod,
	guests int,
	total Money,
	status Status,
	specialRequests, cancelReason string,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		userID:          userID,
		roomID:          roomID,
		period:          period,
		guests:          guests,
		total:           total,
		status:          status,
		specialRequests: specialRequests,
		cancelReason:    cancelReason,
		cancelledAt:     cancelledAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Reservation) transitionTo(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Reservation) Confirm() error {
	return r.transitionTo(StatusConfirmed)
}

func (r *Reservation) CheckIn() error {
	return r.transitionTo(StatusCheckedIn)
}

func (r *Reservation) CheckOut() error {
	return r.transitionTo(StatusCheckedOut)
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if err := r.transitionTo(StatusCancelled); err != nil {
		return err
	}
	r.cancelReason = reason
	r.cancelledAt = &now
	return nil
}

func (r *Reservation) Reschedule(period StayPeriod, guests, capacity int, now time.Time) error {
	if r.status != StatusPending && r.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if err := period.ValidateNotPastAt(now); err != nil {
		return ErrInvalidStayPeriod
	}
	if guests < 1 || guests > capacity {
		return ErrInvalidGuestCount
	}
	r.period = period
	r.guests = guests
	return nil
}

// Reprice recomputes the stay total from the nightly rate. Used after a
// reschedule changes the number of nights.
func (r *Reservation) Reprice(nightlyCents int64) error {
	nightly, err := NewMoney(nightlyCents)
	if err != nil {
		return ErrNegativeTotalPrice
	}
	r.total = nightly.MultiplyNights(r.period.Nights())
	return nil
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) BlocksInventory() bool {
	return r.status.BlocksInventory()
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) RoomID() uuid.UUID       { return r.roomID }
func (r *Reservation) Period() StayPeriod      { return r.period }
func (r *Reservation) Guests() int             { return r.guests }
func (r *Reservation) Total() Money            { return r.total }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) SpecialRequests() string { return r.specialRequests }
func (r *Reservation) CancelReason() string    { return r.cancelReason }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
