package repository

import (
	"context"
	"log/slog"

	"stayhub/internal/infra"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) usecase.StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*readmodel.DashboardRM, error) {
	var rm readmodel.DashboardRM

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM rooms),
			(SELECT COALESCE(SUM(total_rooms), 0) FROM rooms),
			(SELECT COUNT(*) FROM reservations WHERE status IN `+blockingStatuses+`),
			(SELECT COUNT(*) FROM users),
			(SELECT COALESCE(SUM(amount_cents - refunded_cents), 0)
			 FROM transactions
			 WHERE status IN ('SUCCEEDED', 'PARTIALLY_REFUNDED', 'REFUNDED')
			   AND created_at >= date_trunc('month', now()))`,
	).Scan(&rm.TotalRooms, &rm.TotalUnits, &rm.ActiveReservations, &rm.TotalUsers, &rm.MonthlyRevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load dashboard stats", err)
	}

	// Occupancy: units held tonight over total sellable units.
	var occupiedTonight int64
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE status IN `+blockingStatuses+`
		  AND check_in <= CURRENT_DATE AND CURRENT_DATE < check_out`,
	).Scan(&occupiedTonight)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load occupancy", err)
	}

	if rm.TotalUnits > 0 {
		rm.OccupancyRate = float64(occupiedTonight) / float64(rm.TotalUnits)
	}
	return &rm, nil
}

func (r *statsRepository) RoomStats(ctx context.Context) ([]readmodel.RoomTypeStatsRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.room_type,
		       COUNT(*) AS room_count,
		       COALESCE(SUM(r.total_rooms), 0) AS unit_count,
		       COALESCE(SUM((
				SELECT COUNT(*) FROM reservations s
				WHERE s.room_id = r.id
				  AND s.status IN `+blockingStatuses+`
				  AND s.check_in <= CURRENT_DATE AND CURRENT_DATE < s.check_out
		       )), 0) AS reserved_tonight,
		       COALESCE(AVG(r.price_cents), 0)::bigint AS avg_price_cents
		FROM rooms r
		GROUP BY r.room_type
		ORDER BY r.room_type`)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load room stats", err)
	}
	defer rows.Close()

	var result []readmodel.RoomTypeStatsRM
	for rows.Next() {
		var rm readmodel.RoomTypeStatsRM
		if err := rows.Scan(&rm.RoomType, &rm.RoomCount, &rm.UnitCount, &rm.ReservedTonight, &rm.AvgPriceCents); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan room stats row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate room stats rows", err)
	}
	return result, nil
}

func (r *statsRepository) ReservationStats(ctx context.Context) (*readmodel.ReservationStatsRM, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load reservation stats", err)
	}
	defer rows.Close()

	rm := &readmodel.ReservationStatsRM{CountsByStatus: map[string]int64{}}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan reservation stats row", err)
		}
		rm.CountsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate reservation stats rows", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_cents - refunded_cents), 0)
		FROM transactions
		WHERE status IN ('SUCCEEDED', 'PARTIALLY_REFUNDED', 'REFUNDED')`,
	).Scan(&rm.TotalRevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to load total revenue", err)
	}

	return rm, nil
}
