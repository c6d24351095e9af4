package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeGateway maps orders onto PaymentIntents. The client confirms the
// intent with ClientSecret; capture reads back its final state.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return NewStripeGatewayWithBackends(secretKey, nil)
}

func NewStripeGatewayWithBackends(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(strings.ToLower(currencyOrDefault(req.Currency))),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.ReferenceID != "" {
		params.AddMetadata("reference_id", req.ReferenceID)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &Order{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.Get(orderID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get payment intent: %w", err)
	}
	return captureFromIntent(pi), nil
}

func captureFromIntent(pi *stripe.PaymentIntent) *Capture {
	c := &Capture{OrderID: pi.ID, Status: strings.ToUpper(string(pi.Status))}
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		c.Status = StatusCompleted
	}
	if pi.LatestCharge != nil {
		c.TransactionID = pi.LatestCharge.ID
	}
	return c
}
