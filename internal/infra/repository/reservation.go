package repository

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) usecase.ReservationRepository {
	return &reservationRepository{pool: pool}
}

// q returns tx when the caller runs inside a transaction, the pool otherwise.
func (r *reservationRepository) q(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *reservationRepository) Create(ctx context.Context, tx db.DBTX, entity *reservation.Reservation) error {
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO reservations (id, user_id, room_id, check_in, check_out, guests, total_cents, status, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entity.ID(), entity.UserID(), entity.RoomID(),
		entity.Period().CheckIn(), entity.Period().CheckOut(),
		entity.Guests(), entity.Total().Cents(), entity.Status().String(), entity.SpecialRequests(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to create reservation", err)
	}
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, userID, roomID         uuid.UUID
		checkIn, checkOut             time.Time
		guests                        int
		totalCents                    int64
		statusStr                     string
		specialRequests, cancelReason string
		cancelledAt                   pgtype.Timestamptz
		createdAt, updatedAt          time.Time
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, room_id, check_in, check_out, guests, total_cents, status,
		       special_requests, cancel_reason, cancelled_at, created_at, updated_at
		FROM reservations WHERE id = $1`, id,
	).Scan(
		&resID, &userID, &roomID, &checkIn, &checkOut, &guests, &totalCents, &statusStr,
		&specialRequests, &cancelReason, &cancelledAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find reservation", err)
	}

	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored stay period is invalid", err)
	}
	status, err := reservation.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored status is unknown", err)
	}
	total, err := reservation.NewMoney(totalCents)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored total is invalid", err)
	}

	return reservation.ReconstructReservation(
		resID, userID, roomID, period, guests, total, status,
		specialRequests, cancelReason, pgconv.TimePtrFromPgtype(cancelledAt),
		createdAt, updatedAt,
	), nil
}

const reservationViewQuery = `
	SELECT res.id, res.user_id, u.email, res.room_id, r.name, r.room_type,
	       res.check_in, res.check_out, res.guests, res.total_cents, res.status,
	       res.special_requests, res.cancel_reason, res.cancelled_at,
	       res.created_at, res.updated_at
	FROM reservations res
	JOIN rooms r ON r.id = res.room_id
	JOIN users u ON u.id = res.user_id`

func (r *reservationRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*readmodel.ReservationRM, error) {
	rm, err := scanReservationView(r.pool.QueryRow(ctx, reservationViewQuery+` WHERE res.id = $1`, id))
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func scanReservationView(row rowScanner) (*readmodel.ReservationRM, error) {
	var rm readmodel.ReservationRM
	var cancelledAt pgtype.Timestamptz

	err := row.Scan(
		&rm.ID, &rm.UserID, &rm.UserEmail, &rm.RoomID, &rm.RoomName, &rm.RoomType,
		&rm.CheckIn, &rm.CheckOut, &rm.Guests, &rm.TotalCents, &rm.Status,
		&rm.SpecialRequests, &rm.CancelReason, &cancelledAt,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan reservation view", err)
	}

	rm.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &rm, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.ReservationListRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT res.id, res.room_id, r.name, res.check_in, res.check_out,
		       res.guests, res.total_cents, res.status, res.created_at
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.user_id = $1
		ORDER BY res.check_in DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list user reservations", err)
	}
	defer rows.Close()

	var result []readmodel.ReservationListRM
	for rows.Next() {
		var rm readmodel.ReservationListRM
		if err := rows.Scan(&rm.ID, &rm.RoomID, &rm.RoomName, &rm.CheckIn, &rm.CheckOut, &rm.Guests, &rm.TotalCents, &rm.Status, &rm.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan reservation row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return result, nil
}

func (r *reservationRepository) ListAll(ctx context.Context, status *string) ([]readmodel.ReservationRM, error) {
	query := reservationViewQuery
	args := []any{}
	if status != nil {
		query += ` WHERE res.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY res.created_at DESC`

	return r.queryViews(ctx, query, args...)
}

func (r *reservationRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]readmodel.ReservationRM, error) {
	return r.queryViews(ctx,
		reservationViewQuery+` WHERE res.check_in < $2 AND $1 < res.check_out ORDER BY res.check_in`,
		from, to,
	)
}

func (r *reservationRepository) queryViews(ctx context.Context, query string, args ...any) ([]readmodel.ReservationRM, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var result []readmodel.ReservationRM
	for rows.Next() {
		rm, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return result, nil
}

func (r *reservationRepository) CountOverlapping(ctx context.Context, tx db.DBTX, roomID uuid.UUID, period reservation.StayPeriod, excludeID *uuid.UUID) (int, error) {
	var count int
	err := r.q(tx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE room_id = $1
		  AND status IN `+blockingStatuses+`
		  AND check_in < $3 AND $2 < check_out
		  AND ($4::uuid IS NULL OR id <> $4)`,
		roomID, period.CheckIn(), period.CheckOut(), pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to count overlapping reservations", err)
	}
	return count, nil
}

func (r *reservationRepository) UpdatePeriod(ctx context.Context, tx db.DBTX, entity *reservation.Reservation) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE reservations
		SET check_in = $2, check_out = $3, guests = $4, total_cents = $5, updated_at = now()
		WHERE id = $1`,
		entity.ID(), entity.Period().CheckIn(), entity.Period().CheckOut(), entity.Guests(), entity.Total().Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update reservation period", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *reservationRepository) UpdateStatusCAS(ctx context.Context, tx db.DBTX, id uuid.UUID, expected, next reservation.Status, cancelReason *string, cancelledAt *time.Time) (bool, error) {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE reservations
		SET status = $3,
		    cancel_reason = COALESCE($4, cancel_reason),
		    cancelled_at = COALESCE($5, cancelled_at),
		    updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, expected.String(), next.String(),
		pgconv.StringPtrToPgtype(cancelReason), pgconv.TimePtrToPgtype(cancelledAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update reservation status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *reservationRepository) ExpirePending(ctx context.Context, cutoff time.Time, reason string, now time.Time) ([]readmodel.ExpiredReservationRM, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE reservations res
		SET status = 'CANCELLED', cancel_reason = $2, cancelled_at = $3, updated_at = now()
		WHERE res.status = 'PENDING'
		  AND res.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM transactions t
			WHERE t.reservation_id = res.id AND t.status = 'SUCCEEDED'
		  )
		RETURNING res.id, res.user_id, res.room_id`,
		cutoff, reason, now,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to expire pending reservations", err)
	}
	defer rows.Close()

	var result []readmodel.ExpiredReservationRM
	for rows.Next() {
		var rm readmodel.ExpiredReservationRM
		if err := rows.Scan(&rm.ID, &rm.UserID, &rm.RoomID); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan expired reservation", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate expired reservations", err)
	}
	return result, nil
}
