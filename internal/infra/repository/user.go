package repository

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) usecase.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_active, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.FirstName(), u.LastName(), u.Phone(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to create user", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		id                                         uuid.UUID
		emailStr, hash, firstName, lastName, phone string
		roleStr                                    string
		isActive                                   bool
		createdAt, updatedAt                       time.Time
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id, &emailStr, &hash, &firstName, &lastName, &phone, &roleStr, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find user", err)
	}

	email, err := user.NewEmail(emailStr)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored email is malformed", errs.Wrap(err, emailStr))
	}
	role, err := user.NewRole(roleStr)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored role is unknown", err)
	}

	return user.ReconstructUser(id, email, hash, firstName, lastName, phone, role, isActive, createdAt, updatedAt), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, updated_at = now()
		WHERE id = $1`,
		u.ID(), u.FirstName(), u.LastName(), u.Phone(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "user not found", nil)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]readmodel.UserListRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.is_active,
		       COUNT(res.id) AS reservation_count, u.created_at
		FROM users u
		LEFT JOIN reservations res ON res.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list users", err)
	}
	defer rows.Close()

	var result []readmodel.UserListRM
	for rows.Next() {
		var rm readmodel.UserListRM
		if err := rows.Scan(&rm.ID, &rm.Email, &rm.FirstName, &rm.LastName, &rm.Role, &rm.IsActive, &rm.ReservationCount, &rm.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan user row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate user rows", err)
	}
	return result, nil
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update user status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "user not found", nil)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "user not found", nil)
	}
	return nil
}
