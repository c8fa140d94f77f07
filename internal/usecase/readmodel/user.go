package readmodel

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedUserRM carries the fields auth decisions and profile responses
// need. Never includes the password hash.
type AuthorizedUserRM struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type UserListRM struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"is_active"`
	ReservationCount int64     `json:"reservation_count"`
	CreatedAt        time.Time `json:"created_at"`
}
