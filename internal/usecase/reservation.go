package usecase

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrRoomUnavailable        = errs.New("room is not available for the requested period")
	ErrInvalidReservation     = errs.New("invalid reservation data")
	ErrInvalidTransition      = errs.New("invalid reservation status transition")
	ErrReservationNotEditable = errs.New("reservation can no longer be modified")
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationExpired   = "reservation.expired"
)

type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	RoomID        uuid.UUID `json:"room_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher delivers reservation lifecycle events to interested
// consumers. Delivery is best-effort; callers log failures and move on.
type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*readmodel.ReservationRM, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error)
	ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error)
	// CountOverlapping counts inventory-blocking reservations whose stay
	// intersects period. A nil tx runs outside any transaction.
	CountOverlapping(ctx context.Context, tx db.DBTX, roomID uuid.UUID, period reservation.StayPeriod, excludeID *uuid.UUID) (int, error)
	UpdatePeriod(ctx context.Context, tx db.DBTX, r *reservation.Reservation) error
	// UpdateStatusCAS transitions id from expected to next in a single
	// compare-and-set statement. Returns false when the row was not in the
	// expected status.
	UpdateStatusCAS(ctx context.Context, tx db.DBTX, id uuid.UUID, expected, next reservation.Status, cancelReason *string, cancelledAt *time.Time) (bool, error)
	// ExpirePending cancels pending reservations created before cutoff that
	// have no succeeded payment, returning the released reservations.
	ExpirePending(ctx context.Context, cutoff time.Time, reason string, now time.Time) ([]readmodel.ExpiredReservationRM, error)
}

type CreateReservationInput struct {
	RoomID          uuid.UUID
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

type UpdateReservationInput struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type ReservationUseCase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*readmodel.ReservationRM, error)
	GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*readmodel.ReservationRM, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error)
	ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, role user.Role, input UpdateReservationInput) (*readmodel.ReservationRM, error)
	Cancel(ctx context.Context, id, requesterID uuid.UUID, role user.Role, reason string) (*readmodel.ReservationRM, error)
}

type reservationUseCaseImpl struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	publisher       EventPublisher
	pool            *pgxpool.Pool
	clock           clock.Clock
}

func NewReservationUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	clk clock.Clock,
) ReservationUseCase {
	return &reservationUseCaseImpl{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		publisher:       publisher,
		pool:            pool,
		clock:           clk,
	}
}

func (u *reservationUseCaseImpl) Create(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*readmodel.ReservationRM, error) {
	period, err := reservation.NewStayPeriod(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReservation)
	}

	created, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (*reservation.Reservation, error) {
		// Row lock on the room serializes competing bookings so the
		// overlap count below cannot go stale before the insert.
		roomEntity, err := u.roomRepo.FindByIDForUpdate(ctx, tx, input.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}

		if !roomEntity.Available() {
			return nil, ErrRoomUnavailable
		}

		entity, err := reservation.NewReservation(
			reservation.RoomSpec{
				ID:         roomEntity.ID(),
				PriceCents: roomEntity.PriceCents(),
				Capacity:   roomEntity.Capacity(),
			},
			userID,
			period,
			input.Guests,
			input.SpecialRequests,
			u.clock.Now(),
		)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidReservation)
		}

		overlapping, err := u.reservationRepo.CountOverlapping(ctx, tx, roomEntity.ID(), period, nil)
		if err != nil {
			return nil, err
		}
		if overlapping >= roomEntity.TotalUnits() {
			return nil, ErrRoomUnavailable
		}

		if err := u.reservationRepo.Create(ctx, tx, entity); err != nil {
			return nil, err
		}
		return entity, nil
	})
	if err != nil {
		return nil, err
	}

	return u.reservationRepo.FindViewByID(ctx, created.ID())
}

func (u *reservationUseCaseImpl) GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*readmodel.ReservationRM, error) {
	rm, err := u.reservationRepo.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if rm.UserID != requesterID && !role.IsStaff() {
		return nil, ErrForbidden
	}
	return rm, nil
}

func (u *reservationUseCaseImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error) {
	return u.reservationRepo.ListByUser(ctx, userID)
}

func (u *reservationUseCaseImpl) ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error) {
	if status != nil {
		if _, err := reservation.NewStatus(*status); err != nil {
			return nil, errs.Mark(err, ErrInvalidReservation)
		}
	}
	return u.reservationRepo.ListAll(ctx, status)
}

func (u *reservationUseCaseImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error) {
	if !to.After(from) {
		return nil, ErrInvalidReservation
	}
	return u.reservationRepo.ListByDateRange(ctx, from, to)
}

func (u *reservationUseCaseImpl) Update(ctx context.Context, id, requesterID uuid.UUID, role user.Role, input UpdateReservationInput) (*readmodel.ReservationRM, error) {
	period, err := reservation.NewStayPeriod(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReservation)
	}

	_, err = shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		entity, err := u.reservationRepo.FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return zero, ErrReservationNotFound
			}
			return zero, err
		}

		if entity.UserID() != requesterID && !role.IsStaff() {
			return zero, ErrForbidden
		}

		roomEntity, err := u.roomRepo.FindByIDForUpdate(ctx, tx, entity.RoomID())
		if err != nil {
			return zero, err
		}

		resID := entity.ID()
		overlapping, err := u.reservationRepo.CountOverlapping(ctx, tx, roomEntity.ID(), period, &resID)
		if err != nil {
			return zero, err
		}
		if overlapping >= roomEntity.TotalUnits() {
			return zero, ErrRoomUnavailable
		}

		if err := entity.Reschedule(period, input.Guests, roomEntity.Capacity(), u.clock.Now()); err != nil {
			switch err {
			case reservation.ErrInvalidTransition:
				return zero, ErrReservationNotEditable
			default:
				return zero, errs.Mark(err, ErrInvalidReservation)
			}
		}
		if err := entity.Reprice(roomEntity.PriceCents()); err != nil {
			return zero, errs.Mark(err, ErrInvalidReservation)
		}

		return zero, u.reservationRepo.UpdatePeriod(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return u.reservationRepo.FindViewByID(ctx, id)
}

func (u *reservationUseCaseImpl) Cancel(ctx context.Context, id, requesterID uuid.UUID, role user.Role, reason string) (*readmodel.ReservationRM, error) {
	entity, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if entity.UserID() != requesterID && !role.IsStaff() {
		return nil, ErrForbidden
	}

	if !entity.Status().CanTransitionTo(reservation.StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()
	ok, err := u.reservationRepo.UpdateStatusCAS(ctx, nil, id, entity.Status(), reservation.StatusCancelled, &reason, &now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: the row left the expected status in between.
		return nil, ErrInvalidTransition
	}

	u.publishEvent(ctx, ReservationEvent{
		Type:          EventReservationCancelled,
		ReservationID: entity.ID(),
		UserID:        entity.UserID(),
		RoomID:        entity.RoomID(),
		OccurredAt:    now,
	})

	return u.reservationRepo.FindViewByID(ctx, id)
}

func (u *reservationUseCaseImpl) publishEvent(ctx context.Context, event ReservationEvent) {
	if err := u.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish reservation event",
			"type", event.Type,
			"reservation_id", event.ReservationID,
			"error", err)
	}
}
