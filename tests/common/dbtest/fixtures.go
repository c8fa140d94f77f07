//go:build e2e

package dbtest

import (
	"context"
	"time"

	"stayhub/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE transactions, reservations, rooms, users CASCADE")
	return err
}

// SeedUser inserts a user with a bcrypt-hashed password and returns its ID.
func SeedUser(pool *pgxpool.Pool, email, rawPassword, role string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, 'Test', 'User', $4, true)`,
		id, email, hash, role)
	return id, err
}

// SeedRoom inserts a bookable room and returns its ID.
func SeedRoom(pool *pgxpool.Pool, name, roomType string, priceCents int64, capacity, totalUnits int) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO rooms (id, name, room_type, price_cents, currency, capacity, total_rooms, available)
		VALUES ($1, $2, $3, $4, 'usd', $5, $6, true)`,
		id, name, roomType, priceCents, capacity, totalUnits)
	return id, err
}
