//go:build unit

package usecase_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func notFoundErr() error {
	return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "row not found", nil)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, "unique violation", nil)
}

func fkErr() error {
	return infra.WrapRepoErr(slog.Default(), infra.KindForeignKeyViolated, "foreign key violation", nil)
}

func newAuthUseCase(repo *MockUserRepository) usecase.AuthUseCase {
	return usecase.NewAuthUseCase(repo, jwt.NewService("test-secret", time.Hour))
}

func activeUser(t *testing.T, rawPassword string) *user.User {
	t.Helper()
	email, err := user.NewEmail("guest@example.com")
	require.NoError(t, err)
	hash, err := password.HashPassword(rawPassword)
	require.NoError(t, err)
	return user.NewUser(email, hash, "Ada", "Lovelace", "", user.RoleGuest)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	input := usecase.RegisterInput{
		Email:     "guest@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	t.Run("creates a guest account", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		rm, err := newAuthUseCase(repo).Register(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, "guest@example.com", rm.Email)
		assert.Equal(t, "guest", rm.Role)
		assert.True(t, rm.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Create", ctx, mock.Anything).Return(duplicateKeyErr())

		_, err := newAuthUseCase(repo).Register(ctx, input)
		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyTaken)
	})

	t.Run("invalid email rejected before hitting the repository", func(t *testing.T) {
		repo := new(MockUserRepository)
		bad := input
		bad.Email = "not-an-email"

		_, err := newAuthUseCase(repo).Register(ctx, bad)
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("weak password rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		bad := input
		bad.Password = "short"

		_, err := newAuthUseCase(repo).Register(ctx, bad)
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	creds, err := user.NewCredentials("guest@example.com", "password123")
	require.NoError(t, err)

	t.Run("returns token and user", func(t *testing.T) {
		entity := activeUser(t, "password123")
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, creds.Email()).Return(entity, nil)

		token, rm, err := newAuthUseCase(repo).Login(ctx, creds)
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, entity.ID(), rm.ID)

		validator := usecase.NewTokenValidator(jwt.NewService("test-secret", time.Hour))
		userID, role, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, entity.ID(), userID)
		assert.Equal(t, user.RoleGuest, role)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, creds.Email()).Return(nil, notFoundErr())

		_, _, err := newAuthUseCase(repo).Login(ctx, creds)
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		entity := activeUser(t, "different-password")
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, creds.Email()).Return(entity, nil)

		_, _, err := newAuthUseCase(repo).Login(ctx, creds)
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		email, _ := user.NewEmail("guest@example.com")
		hash, _ := password.HashPassword("password123")
		entity := user.ReconstructUser(
			activeUser(t, "x").ID(), email, hash, "Ada", "Lovelace", "",
			user.RoleGuest, false, time.Now(), time.Now(),
		)

		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, creds.Email()).Return(entity, nil)

		_, _, err := newAuthUseCase(repo).Login(ctx, creds)
		assert.ErrorIs(t, err, usecase.ErrUserInactive)
	})
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		entity := activeUser(t, "password123")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, entity.ID()).Return(entity, nil)

		rm, err := newAuthUseCase(repo).GetCurrentUser(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, entity.Email().Value(), rm.Email)
	})

	t.Run("not found", func(t *testing.T) {
		entity := activeUser(t, "password123")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, entity.ID()).Return(nil, notFoundErr())

		_, err := newAuthUseCase(repo).GetCurrentUser(ctx, entity.ID())
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	entity := activeUser(t, "password123")

	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, entity.ID()).Return(entity, nil)
	repo.On("UpdateProfile", ctx, entity).Return(nil)

	rm, err := newAuthUseCase(repo).UpdateProfile(ctx, entity.ID(), usecase.UpdateProfileInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Phone:     "+1-555-0199",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace", rm.FirstName)
	assert.Equal(t, "Hopper", rm.LastName)
	repo.AssertExpectations(t)
}
