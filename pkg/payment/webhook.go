package payment

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

type EventKind int

const (
	EventIgnored EventKind = iota
	EventCompleted
	EventFailed
	EventRefunded
)

func (k EventKind) String() string {
	switch k {
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventRefunded:
		return "refunded"
	default:
		return "ignored"
	}
}

// WebhookEvent is a gateway notification reduced to what payment records need.
// Completed and failed events carry OrderID; refunds carry TransactionID.
type WebhookEvent struct {
	Type          string
	Kind          EventKind
	OrderID       string
	TransactionID string
}

type paypalEvent struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID                string `json:"id"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
	} `json:"resource"`
}

func ParsePayPalWebhook(body []byte) (*WebhookEvent, error) {
	var e paypalEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode paypal webhook: %w", err)
	}

	out := &WebhookEvent{
		Type:          e.EventType,
		OrderID:       e.Resource.SupplementaryData.RelatedIDs.OrderID,
		TransactionID: e.Resource.ID,
	}
	switch e.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		out.Kind = EventCompleted
	case "PAYMENT.CAPTURE.DENIED", "PAYMENT.CAPTURE.DECLINED":
		out.Kind = EventFailed
	case "PAYMENT.CAPTURE.REFUNDED":
		out.Kind = EventRefunded
	}
	return out, nil
}

// ParseStripeWebhook verifies the Stripe-Signature header before decoding.
func ParseStripeWebhook(body []byte, signature, secret string) (*WebhookEvent, error) {
	evt, err := webhook.ConstructEventWithOptions(body, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify stripe webhook: %w", err)
	}

	out := &WebhookEvent{Type: string(evt.Type)}
	switch out.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		out.OrderID = pi.ID
		if pi.LatestCharge != nil {
			out.TransactionID = pi.LatestCharge.ID
		}
		out.Kind = EventFailed
		if out.Type == "payment_intent.succeeded" {
			out.Kind = EventCompleted
		}
	case "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(evt.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("decode charge: %w", err)
		}
		out.Kind = EventRefunded
		out.TransactionID = ch.ID
		if ch.PaymentIntent != nil {
			out.OrderID = ch.PaymentIntent.ID
		}
	}
	return out, nil
}
