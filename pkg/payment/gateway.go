package payment

import (
	"context"
	"errors"
	"fmt"
)

// Capture statuses reported by every gateway.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

var ErrOrderNotFound = errors.New("payment: order not found")

type OrderRequest struct {
	Amount      float64
	Currency    string
	Description string
	ReferenceID string
	ReturnURL   string
	CancelURL   string
}

type Order struct {
	ID           string
	ApproveURL   string
	ClientSecret string
}

type Capture struct {
	OrderID       string
	Status        string
	TransactionID string
}

func (c *Capture) Completed() bool {
	return c != nil && c.Status == StatusCompleted
}

// Gateway opens and captures one-off payments.
type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}
