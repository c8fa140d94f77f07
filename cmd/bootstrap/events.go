package bootstrap

import (
	"context"

	"stayhub/internal/infra/events"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (usecase.EventPublisher, error) {
	publisher, cleanup, err := events.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return publisher, nil
}
