package components

import (
	"stayhub/internal/infra/repository"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repository.NewUserRepository,
		repository.NewRoomRepository,
		repository.NewReservationRepository,
		repository.NewTransactionRepository,
		repository.NewStatsRepository,
	),
)
