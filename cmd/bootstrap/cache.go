package bootstrap

import (
	"context"

	"stayhub/internal/infra/cache"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRoomCache,
	),
)

func NewRoomCache(lc fx.Lifecycle, cfg config.Config) usecase.RoomCache {
	roomCache, cleanup := cache.NewRoomCache(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return roomCache
}
