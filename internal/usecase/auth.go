package usecase

import (
	"context"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrEmailAlreadyTaken    = errs.New("email is already registered")
	ErrInvalidCredentials   = errs.New("invalid email or password")
	ErrUserInactive         = errs.New("user account is inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrForbidden            = errs.New("operation not permitted")
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, u *user.User) error
	List(ctx context.Context) ([]readmodel.UserListRM, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*readmodel.AuthorizedUserRM, error)
	Login(ctx context.Context, credentials user.Credentials) (string, *readmodel.AuthorizedUserRM, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*readmodel.AuthorizedUserRM, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, input RegisterInput) (*readmodel.AuthorizedUserRM, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if _, err := user.NewPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	// Self-registration always creates guests. Staff roles are assigned
	// out of band.
	entity := user.NewUser(email, hash, input.FirstName, input.LastName, input.Phone, user.RoleGuest)

	if err := a.userRepo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailAlreadyTaken
		}
		return nil, err
	}

	return toAuthorizedUserRM(entity), nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *readmodel.AuthorizedUserRM, error) {
	entity, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !entity.IsActive() {
		return "", nil, ErrUserInactive
	}

	if err := password.ComparePassword(entity.PasswordHash(), credentials.Password().Value()); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(entity.ID(), entity.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, toAuthorizedUserRM(entity), nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	entity, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !entity.IsActive() {
		return nil, ErrUserInactive
	}

	return toAuthorizedUserRM(entity), nil
}

func (a *authUseCaseImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*readmodel.AuthorizedUserRM, error) {
	entity, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entity.UpdateProfile(input.FirstName, input.LastName, input.Phone)

	if err := a.userRepo.UpdateProfile(ctx, entity); err != nil {
		return nil, err
	}

	return toAuthorizedUserRM(entity), nil
}

func toAuthorizedUserRM(u *user.User) *readmodel.AuthorizedUserRM {
	return &readmodel.AuthorizedUserRM{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
