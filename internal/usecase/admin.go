package usecase

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type StatsRepository interface {
	Dashboard(ctx context.Context) (*readmodel.DashboardRM, error)
	RoomStats(ctx context.Context) ([]readmodel.RoomTypeStatsRM, error)
	ReservationStats(ctx context.Context) (*readmodel.ReservationStatsRM, error)
}

type AdminUseCase interface {
	Dashboard(ctx context.Context) (*readmodel.DashboardRM, error)
	RoomStats(ctx context.Context) ([]readmodel.RoomTypeStatsRM, error)
	ReservationStats(ctx context.Context) (*readmodel.ReservationStatsRM, error)
	OverrideReservationStatus(ctx context.Context, id uuid.UUID, next string, reason string) (*readmodel.ReservationRM, error)
	ListUsers(ctx context.Context) ([]readmodel.UserListRM, error)
	GetUser(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminUseCaseImpl struct {
	statsRepo       StatsRepository
	userRepo        UserRepository
	reservationRepo ReservationRepository
	publisher       EventPublisher
	clock           clock.Clock
}

func NewAdminUseCase(
	statsRepo StatsRepository,
	userRepo UserRepository,
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	clk clock.Clock,
) AdminUseCase {
	return &adminUseCaseImpl{
		statsRepo:       statsRepo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
		clock:           clk,
	}
}

func (u *adminUseCaseImpl) Dashboard(ctx context.Context) (*readmodel.DashboardRM, error) {
	return u.statsRepo.Dashboard(ctx)
}

func (u *adminUseCaseImpl) RoomStats(ctx context.Context) ([]readmodel.RoomTypeStatsRM, error) {
	return u.statsRepo.RoomStats(ctx)
}

func (u *adminUseCaseImpl) ReservationStats(ctx context.Context) (*readmodel.ReservationStatsRM, error) {
	return u.statsRepo.ReservationStats(ctx)
}

// OverrideReservationStatus lets staff walk a reservation through its
// lifecycle (check-in, check-out, cancel). The transition table still
// applies; an override is not a free status write.
func (u *adminUseCaseImpl) OverrideReservationStatus(ctx context.Context, id uuid.UUID, next string, reason string) (*readmodel.ReservationRM, error) {
	nextStatus, err := reservation.NewStatus(next)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReservation)
	}

	entity, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if !entity.Status().CanTransitionTo(nextStatus) {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()

	var cancelReason *string
	var cancelledAt *time.Time
	if nextStatus == reservation.StatusCancelled {
		cancelReason = &reason
		cancelledAt = &now
	}

	ok, err := u.reservationRepo.UpdateStatusCAS(ctx, nil, id, entity.Status(), nextStatus, cancelReason, cancelledAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	switch nextStatus {
	case reservation.StatusConfirmed, reservation.StatusCancelled:
		eventType := EventReservationConfirmed
		if nextStatus == reservation.StatusCancelled {
			eventType = EventReservationCancelled
		}
		if err := u.publisher.Publish(ctx, ReservationEvent{
			Type:          eventType,
			ReservationID: entity.ID(),
			UserID:        entity.UserID(),
			RoomID:        entity.RoomID(),
			OccurredAt:    now,
		}); err != nil {
			slog.Warn("failed to publish reservation event", "type", eventType, "reservation_id", id, "error", err)
		}
	}

	return u.reservationRepo.FindViewByID(ctx, id)
}

func (u *adminUseCaseImpl) ListUsers(ctx context.Context) ([]readmodel.UserListRM, error) {
	return u.userRepo.List(ctx)
}

func (u *adminUseCaseImpl) GetUser(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	entity, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toAuthorizedUserRM(entity), nil
}

func (u *adminUseCaseImpl) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := u.userRepo.SetActive(ctx, id, active); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (u *adminUseCaseImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.Delete(ctx, id); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrUserNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrForbidden
		default:
			return err
		}
	}
	return nil
}
