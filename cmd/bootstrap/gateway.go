package bootstrap

import (
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) usecase.PaymentGateway {
	return gateway.NewStripeGateway(cfg.Stripe)
}
