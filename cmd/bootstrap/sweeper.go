package bootstrap

import (
	"context"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		NewExpirySweeper,
	),
	fx.Invoke(startSweeper),
)

func NewExpirySweeper(
	reservationRepo usecase.ReservationRepository,
	publisher usecase.EventPublisher,
	clk clock.Clock,
	cfg config.Config,
) *usecase.ExpirySweeper {
	return usecase.NewExpirySweeper(reservationRepo, publisher, clk, cfg.Sweeper)
}

func startSweeper(lc fx.Lifecycle, sweeper *usecase.ExpirySweeper) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
