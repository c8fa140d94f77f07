package repository

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) usecase.TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) q(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.pool
}

const transactionColumns = `id, reservation_id, user_id, amount_cents, refunded_cents, currency,
	status, intent_id, client_secret, refund_reason, refunded_at, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, tx db.DBTX, t *payment.Transaction) error {
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO transactions (id, reservation_id, user_id, amount_cents, currency, status, intent_id, client_secret)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID(), t.ReservationID(), t.UserID(), t.AmountCents(), t.Currency(), t.Status().String(), t.IntentID(), t.ClientSecret(),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), classifyWriteErr(err), "failed to create transaction", err)
	}
	return nil
}

func (r *transactionRepository) Update(ctx context.Context, tx db.DBTX, t *payment.Transaction) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE transactions
		SET status = $2, refunded_cents = $3, refund_reason = $4, refunded_at = $5, updated_at = now()
		WHERE id = $1`,
		t.ID(), t.Status().String(), t.RefundedCents(), t.RefundReason(), pgconv.TimePtrToPgtype(t.RefundedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "transaction not found", nil)
	}
	return nil
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

func (r *transactionRepository) FindByIntentID(ctx context.Context, intentID string) (*payment.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE intent_id = $1`, intentID))
}

func (r *transactionRepository) FindActiveByReservation(ctx context.Context, reservationID uuid.UUID) (*payment.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE reservation_id = $1 AND status <> 'FAILED'`,
		reservationID,
	))
}

func scanTransaction(row rowScanner) (*payment.Transaction, error) {
	var (
		id, reservationID, userID            uuid.UUID
		amountCents, refundedCents           int64
		currency, statusStr                  string
		intentID, clientSecret, refundReason string
		refundedAt                           pgtype.Timestamptz
		createdAt, updatedAt                 time.Time
	)

	err := row.Scan(
		&id, &reservationID, &userID, &amountCents, &refundedCents, &currency,
		&statusStr, &intentID, &clientSecret, &refundReason, &refundedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "transaction not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan transaction", err)
	}

	status, err := payment.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "stored status is unknown", err)
	}

	return payment.ReconstructTransaction(
		id, reservationID, userID, amountCents, refundedCents, currency, status,
		intentID, clientSecret, refundReason, pgconv.TimePtrFromPgtype(refundedAt),
		createdAt, updatedAt,
	), nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.TransactionRM, error) {
	return r.queryList(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]readmodel.TransactionRM, error) {
	return r.queryList(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC`)
}

func (r *transactionRepository) queryList(ctx context.Context, query string, args ...any) ([]readmodel.TransactionRM, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list transactions", err)
	}
	defer rows.Close()

	var result []readmodel.TransactionRM
	for rows.Next() {
		var rm readmodel.TransactionRM
		var intentID, clientSecret string
		var refundedAt pgtype.Timestamptz
		if err := rows.Scan(
			&rm.ID, &rm.ReservationID, &rm.UserID, &rm.AmountCents, &rm.RefundedCents, &rm.Currency,
			&rm.Status, &intentID, &clientSecret, &rm.RefundReason, &refundedAt, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan transaction row", err)
		}
		rm.RefundedAt = pgconv.TimePtrFromPgtype(refundedAt)
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to iterate transaction rows", err)
	}
	return result, nil
}
