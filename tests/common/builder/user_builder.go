//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "guest@example.com",
		PasswordHash: "hashed_password",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         "guest",
		IsActive:     true,
	}
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, role), nil
}

func (u *UserBuilder) BuildReadModel() *readmodel.AuthorizedUserRM {
	return &readmodel.AuthorizedUserRM{
		ID:        uuid.New(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: time.Now().UTC(),
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithName(first, last string) *UserBuilder {
	u.FirstName = first
	u.LastName = last
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
