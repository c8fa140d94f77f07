//go:build unit

package usecase_test

import (
	"context"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]readmodel.UserListRM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.UserListRM), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, r *room.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, r *room.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, filter usecase.RoomFilter) ([]readmodel.RoomRM, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.RoomRM), args.Error(1)
}

func (m *MockRoomRepository) ListAvailable(ctx context.Context, period reservation.StayPeriod, guests int) ([]readmodel.RoomAvailabilityRM, error) {
	args := m.Called(ctx, period, guests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.RoomAvailabilityRM), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, tx db.DBTX, r *reservation.Reservation) error {
	return m.Called(ctx, tx, r).Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*readmodel.ReservationRM, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationListRM), args.Error(1)
}

func (m *MockReservationRepository) ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationRepository) CountOverlapping(ctx context.Context, tx db.DBTX, roomID uuid.UUID, period reservation.StayPeriod, excludeID *uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, roomID, period, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepository) UpdatePeriod(ctx context.Context, tx db.DBTX, r *reservation.Reservation) error {
	return m.Called(ctx, tx, r).Error(0)
}

func (m *MockReservationRepository) UpdateStatusCAS(ctx context.Context, tx db.DBTX, id uuid.UUID, expected, next reservation.Status, cancelReason *string, cancelledAt *time.Time) (bool, error) {
	args := m.Called(ctx, tx, id, expected, next, cancelReason, cancelledAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) ExpirePending(ctx context.Context, cutoff time.Time, reason string, now time.Time) ([]readmodel.ExpiredReservationRM, error) {
	args := m.Called(ctx, cutoff, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ExpiredReservationRM), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx db.DBTX, t *payment.Transaction) error {
	return m.Called(ctx, tx, t).Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx db.DBTX, t *payment.Transaction) error {
	return m.Called(ctx, tx, t).Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByIntentID(ctx context.Context, intentID string) (*payment.Transaction, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindActiveByReservation(ctx context.Context, reservationID uuid.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.TransactionRM, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.TransactionRM), args.Error(1)
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]readmodel.TransactionRM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.TransactionRM), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Dashboard(ctx context.Context) (*readmodel.DashboardRM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.DashboardRM), args.Error(1)
}

func (m *MockStatsRepository) RoomStats(ctx context.Context) ([]readmodel.RoomTypeStatsRM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.RoomTypeStatsRM), args.Error(1)
}

func (m *MockStatsRepository) ReservationStats(ctx context.Context) (*readmodel.ReservationStatsRM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationStatsRM), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, reservationID, userID uuid.UUID) (*usecase.GatewayIntent, error) {
	args := m.Called(ctx, amountCents, currency, reservationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GatewayIntent), args.Error(1)
}

func (m *MockPaymentGateway) GetIntent(ctx context.Context, intentID string) (*usecase.GatewayIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GatewayIntent), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, intentID string, amountCents int64) error {
	return m.Called(ctx, intentID, amountCents).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event usecase.ReservationEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockRoomCache struct {
	mock.Mock
}

func (m *MockRoomCache) GetRoom(ctx context.Context, id uuid.UUID) (*readmodel.RoomRM, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*readmodel.RoomRM), args.Bool(1)
}

func (m *MockRoomCache) SetRoom(ctx context.Context, rm *readmodel.RoomRM) {
	m.Called(ctx, rm)
}

func (m *MockRoomCache) GetRoomList(ctx context.Context) ([]readmodel.RoomRM, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]readmodel.RoomRM), args.Bool(1)
}

func (m *MockRoomCache) SetRoomList(ctx context.Context, rms []readmodel.RoomRM) {
	m.Called(ctx, rms)
}

func (m *MockRoomCache) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

func (m *MockRoomCache) InvalidateList(ctx context.Context) {
	m.Called(ctx)
}
