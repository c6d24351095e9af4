package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/plutov/paypal/v4"
)

type PayPalGateway struct {
	client *paypal.Client
	mu     sync.Mutex
}

func NewPayPalGateway(clientID, secret, baseURL string) (*PayPalGateway, error) {
	if baseURL == "" {
		baseURL = paypal.APIBaseSandBox
	}
	c, err := paypal.NewClient(clientID, secret, baseURL)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	return &PayPalGateway{client: c}, nil
}

func (g *PayPalGateway) Name() string { return "paypal" }

// authorize fetches the first access token; the client refreshes it afterwards.
func (g *PayPalGateway) authorize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client.Token != nil {
		return nil
	}
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return fmt.Errorf("paypal token: %w", err)
	}
	return nil
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := g.authorize(ctx); err != nil {
		return nil, err
	}

	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: req.ReferenceID,
		Description: req.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currencyOrDefault(req.Currency),
			Value:    formatAmount(req.Amount),
		},
	}}
	var appCtx *paypal.ApplicationContext
	if req.ReturnURL != "" || req.CancelURL != "" {
		appCtx = &paypal.ApplicationContext{
			BrandName: "Telugu Association",
			ReturnURL: req.ReturnURL,
			CancelURL: req.CancelURL,
		}
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	out := &Order{ID: order.ID}
	for _, l := range order.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			out.ApproveURL = l.Href
			break
		}
	}
	return out, nil
}

func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	if err := g.authorize(ctx); err != nil {
		return nil, err
	}

	resp, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("paypal capture order: %w", err)
	}

	c := &Capture{OrderID: orderID, Status: resp.Status}
	if len(resp.PurchaseUnits) > 0 && resp.PurchaseUnits[0].Payments != nil &&
		len(resp.PurchaseUnits[0].Payments.Captures) > 0 {
		c.TransactionID = resp.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return c, nil
}
