package components

import (
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		usecase.NewAuthUseCase,
		usecase.NewRoomUseCase,
		usecase.NewReservationUseCase,
		usecase.NewPaymentUseCase,
		usecase.NewAdminUseCase,
	),
)
