package usecase

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
)

const expiredReason = "payment window expired"

// ExpirySweeper cancels PENDING reservations whose payment window has
// closed, releasing their room units back to inventory.
type ExpirySweeper struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	clock           clock.Clock
	interval        time.Duration
	pendingTTL      time.Duration
}

func NewExpirySweeper(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	clk clock.Clock,
	cfg config.SweeperConfig,
) *ExpirySweeper {
	return &ExpirySweeper{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		clock:           clk,
		interval:        cfg.Interval,
		pendingTTL:      cfg.PendingTTL,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				slog.Error("expiry sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce expires one batch and returns how many reservations it released.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()
	cutoff := now.Add(-s.pendingTTL)

	expired, err := s.reservationRepo.ExpirePending(ctx, cutoff, expiredReason, now)
	if err != nil {
		return 0, err
	}

	for _, rm := range expired {
		if err := s.publisher.Publish(ctx, ReservationEvent{
			Type:          EventReservationExpired,
			ReservationID: rm.ID,
			UserID:        rm.UserID,
			RoomID:        rm.RoomID,
			OccurredAt:    now,
		}); err != nil {
			slog.Warn("failed to publish expiry event", "reservation_id", rm.ID, "error", err)
		}
	}

	if len(expired) > 0 {
		slog.Info("expired pending reservations released", "count", len(expired))
	}
	return len(expired), nil
}
