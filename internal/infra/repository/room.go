package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) usecase.RoomRepository {
	return &roomRepository{pool: pool}
}

const roomColumns = `id, name, room_type, description, price_cents, currency, capacity, total_rooms,
	available, amenities, image_url, floor_number, size_sqft, created_at, updated_at`

// Reservation statuses that hold a room unit for their stay period.
const blockingStatuses = `('PENDING', 'CONFIRMED', 'CHECKED_IN')`

func (r *roomRepository) Create(ctx context.Context, entity *room.Room) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rooms (id, name, room_type, description, price_cents, currency, capacity, total_rooms,
		                   available, amenities, image_url, floor_number, size_sqft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entity.ID(), entity.Name(), entity.RoomType().String(), entity.Description(),
		entity.PriceCents(), entity.Currency(), entity.Capacity(), entity.TotalUnits(),
		entity.Available(), entity.Amenities(), entity.ImageURL(), entity.FloorNumber(), entity.SizeSqft(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to create room", err)
	}
	return nil
}

func (r *roomRepository) Update(ctx context.Context, entity *room.Room) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rooms
		SET name = $2, room_type = $3, description = $4, price_cents = $5, currency = $6,
		    capacity = $7, total_rooms = $8, available = $9, amenities = $10,
		    image_url = $11, floor_number = $12, size_sqft = $13, updated_at = now()
		WHERE id = $1`,
		entity.ID(), entity.Name(), entity.RoomType().String(), entity.Description(),
		entity.PriceCents(), entity.Currency(), entity.Capacity(), entity.TotalUnits(),
		entity.Available(), entity.Amenities(), entity.ImageURL(), entity.FloorNumber(), entity.SizeSqft(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "room not found", nil)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "room not found", nil)
	}
	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return scanRoom(r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
}

func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	return scanRoom(tx.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*room.Room, error) {
	var (
		id                                       uuid.UUID
		name, roomTypeStr, description, currency string
		priceCents                               int64
		capacity, totalUnits                     int
		available                                bool
		amenities                                []string
		imageURL                                 string
		floorNumber, sizeSqft                    int
		createdAt, updatedAt                     time.Time
	)

	err := row.Scan(
		&id, &name, &roomTypeStr, &description, &priceCents, &currency, &capacity, &totalUnits,
		&available, &amenities, &imageURL, &floorNumber, &sizeSqft, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "room not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan room", err)
	}

	roomType, err := room.NewType(roomTypeStr)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored room type is unknown", err)
	}

	return room.ReconstructRoom(
		id, name, roomType, description, priceCents, currency, capacity, totalUnits,
		available, amenities, imageURL, floorNumber, sizeSqft, createdAt, updatedAt,
	), nil
}

func (r *roomRepository) List(ctx context.Context, filter usecase.RoomFilter) ([]readmodel.RoomRM, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	args := []any{}

	if filter.RoomType != nil {
		args = append(args, *filter.RoomType)
		query += fmt.Sprintf(" AND room_type = $%d", len(args))
	}
	if filter.MinPriceCents != nil {
		args = append(args, *filter.MinPriceCents)
		query += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if filter.MaxPriceCents != nil {
		args = append(args, *filter.MaxPriceCents)
		query += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}
	query += " ORDER BY price_cents, name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list rooms", err)
	}
	defer rows.Close()

	var result []readmodel.RoomRM
	for rows.Next() {
		var rm readmodel.RoomRM
		if err := rows.Scan(
			&rm.ID, &rm.Name, &rm.RoomType, &rm.Description, &rm.PriceCents, &rm.Currency,
			&rm.Capacity, &rm.TotalUnits, &rm.Available, &rm.Amenities, &rm.ImageURL,
			&rm.FloorNumber, &rm.SizeSqft, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan room row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate room rows", err)
	}
	return result, nil
}

func (r *roomRepository) ListAvailable(ctx context.Context, period reservation.StayPeriod, guests int) ([]readmodel.RoomAvailabilityRM, error) {
	// Half-open overlap: a reservation blocks the period when
	// check_in < requested_end AND requested_start < check_out.
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.name, t.room_type, t.description, t.price_cents, t.currency,
		       t.capacity, t.total_rooms, t.available, t.amenities, t.image_url,
		       t.floor_number, t.size_sqft, t.created_at, t.updated_at, t.remaining_units
		FROM (
			SELECT r.*, r.total_rooms - (
				SELECT COUNT(*)
				FROM reservations s
				WHERE s.room_id = r.id
				  AND s.status IN `+blockingStatuses+`
				  AND s.check_in < $2 AND $1 < s.check_out
			) AS remaining_units
			FROM rooms r
			WHERE r.available AND r.capacity >= $3
		) t
		WHERE t.remaining_units > 0
		ORDER BY t.price_cents, t.name`,
		period.CheckIn(), period.CheckOut(), guests,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list available rooms", err)
	}
	defer rows.Close()

	var result []readmodel.RoomAvailabilityRM
	for rows.Next() {
		var rm readmodel.RoomAvailabilityRM
		if err := rows.Scan(
			&rm.ID, &rm.Name, &rm.RoomType, &rm.Description, &rm.PriceCents, &rm.Currency,
			&rm.Capacity, &rm.TotalUnits, &rm.Available, &rm.Amenities, &rm.ImageURL,
			&rm.FloorNumber, &rm.SizeSqft, &rm.CreatedAt, &rm.UpdatedAt, &rm.RemainingUnits,
		); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan availability row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate availability rows", err)
	}
	return result, nil
}
