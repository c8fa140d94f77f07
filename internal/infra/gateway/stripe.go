package gateway

import (
	"context"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway implements the payment gateway port on Stripe PaymentIntents.
type StripeGateway struct {
	sc       *client.API
	currency string
}

func NewStripeGateway(cfg config.StripeConfig) usecase.PaymentGateway {
	sc := &client.API{}
	sc.Init(cfg.APIKey, nil)
	return &StripeGateway{
		sc:       sc,
		currency: cfg.Currency,
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, reservationID, userID uuid.UUID) (*usecase.GatewayIntent, error) {
	if currency == "" {
		currency = g.currency
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("reservation_id", reservationID.String())
	params.AddMetadata("user_id", userID.String())

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe payment intent creation failed")
	}

	return toGatewayIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*usecase.GatewayIntent, error) {
	pi, err := g.sc.PaymentIntents.Get(intentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, errs.Wrap(err, "stripe payment intent lookup failed")
	}

	return toGatewayIntent(pi), nil
}

func (g *StripeGateway) Refund(ctx context.Context, intentID string, amountCents int64) error {
	_, err := g.sc.Refunds.New(&stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amountCents),
	})
	if err != nil {
		return errs.Wrap(err, "stripe refund failed")
	}
	return nil
}

func toGatewayIntent(pi *stripe.PaymentIntent) *usecase.GatewayIntent {
	return &usecase.GatewayIntent{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
}
