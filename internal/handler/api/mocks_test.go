//go:build unit

package api_test

import (
	"context"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*readmodel.AuthorizedUserRM, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.AuthorizedUserRM), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, credentials user.Credentials) (string, *readmodel.AuthorizedUserRM, error) {
	args := m.Called(ctx, credentials)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*readmodel.AuthorizedUserRM), args.Error(2)
}

func (m *MockAuthUseCase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.AuthorizedUserRM), args.Error(1)
}

func (m *MockAuthUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*readmodel.AuthorizedUserRM, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.AuthorizedUserRM), args.Error(1)
}

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateReservationInput) (*readmodel.ReservationRM, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationUseCase) GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*readmodel.ReservationRM, error) {
	args := m.Called(ctx, id, requesterID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationUseCase) ListMine(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationListRM), args.Error(1)
}

func (m *MockReservationUseCase) ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationUseCase) Update(ctx context.Context, id, requesterID uuid.UUID, role user.Role, input usecase.UpdateReservationInput) (*readmodel.ReservationRM, error) {
	args := m.Called(ctx, id, requesterID, role, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationRM), args.Error(1)
}

func (m *MockReservationUseCase) Cancel(ctx context.Context, id, requesterID uuid.UUID, role user.Role, reason string) (*readmodel.ReservationRM, error) {
	args := m.Called(ctx, id, requesterID, role, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*readmodel.ReservationRM), args.Error(1)
}
