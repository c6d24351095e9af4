package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/payment"
	"go.uber.org/zap"
)

type PaymentDeps struct {
	Accounts    AccountStore
	Plans       MembershipPlanStore
	Payments    PaymentStore
	Gateway     payment.Gateway
	Tx          Transactor
	FrontendURL string
	Logger      *zap.Logger
	Now         Clock
}

// PaymentService sells memberships through the configured payment gateway.
type PaymentService struct {
	accounts    AccountStore
	plans       MembershipPlanStore
	payments    PaymentStore
	gateway     payment.Gateway
	tx          Transactor
	frontendURL string
	logger      *zap.Logger
	now         Clock
}

func NewPaymentService(d PaymentDeps) *PaymentService {
	s := &PaymentService{
		accounts:    d.Accounts,
		plans:       d.Plans,
		payments:    d.Payments,
		gateway:     d.Gateway,
		tx:          d.Tx,
		frontendURL: strings.TrimRight(d.FrontendURL, "/"),
		logger:      d.Logger,
		now:         d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CheckoutOrder struct {
	OrderID    string
	PaymentID  uint
	ApproveURL string
}

type CaptureResult struct {
	TransactionID string
	PaymentStatus string
}

// CaptureFailedError is returned when the gateway did not complete the
// capture. The payment is already marked FAILED.
type CaptureFailedError struct {
	PaymentStatus string
}

func (e *CaptureFailedError) Error() string { return "Payment capture failed" }

func (s *PaymentService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*CheckoutOrder, error) {
	if req.MembershipPlanID.String() == "" || req.UserID.String() == "" {
		return nil, Unprocessable("Membership plan ID and user ID are required")
	}
	planID, ok := req.MembershipPlanID.Uint()
	if !ok {
		return nil, NotFound("Membership plan not found")
	}
	userID, ok := req.UserID.Uint()
	if !ok {
		return nil, NotFound("User not found")
	}
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, found(err, "Membership plan not found")
	}
	if _, err := s.accounts.Get(ctx, userID); err != nil {
		return nil, found(err, "User not found")
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:      plan.Amount,
		Currency:    "USD",
		Description: plan.Title,
		ReferenceID: fmt.Sprintf("plan-%d-user-%d", plan.ID, userID),
		ReturnURL:   s.frontendURL + "/payment/success",
		CancelURL:   s.frontendURL + "/payment/cancel",
	})
	if err != nil {
		s.logger.Error("create gateway order", zap.String("gateway", s.gateway.Name()), zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderID := order.ID
	record := &models.Payment{
		UserID:           userID,
		MembershipPlanID: plan.ID,
		Amount:           plan.Amount,
		Currency:         "USD",
		PaypalOrderID:    &orderID,
		PaymentStatus:    models.PaymentPending,
		PaymentMethod:    s.gateway.Name(),
	}
	if err := s.payments.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &CheckoutOrder{OrderID: order.ID, PaymentID: record.ID, ApproveURL: order.ApproveURL}, nil
}

// CaptureOrder completes a pending payment. The gateway is only called for
// orders this service created.
func (s *PaymentService) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, Unprocessable("Order ID is required")
	}
	record, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, found(err, "Payment record not found")
	}
	switch record.PaymentStatus {
	case models.PaymentPending:
	case models.PaymentCompleted:
		var txID string
		if record.PaypalTransactionID != nil {
			txID = *record.PaypalTransactionID
		}
		return &CaptureResult{TransactionID: txID, PaymentStatus: record.PaymentStatus}, nil
	default:
		return nil, Conflict(fmt.Sprintf("Payment is already %s", record.PaymentStatus))
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("capture gateway order", zap.String("order_id", orderID), zap.Error(err))
		if errors.Is(err, payment.ErrOrderNotFound) {
			return nil, NotFound("Payment record not found")
		}
		return nil, fmt.Errorf("capture order: %w", err)
	}

	if !capture.Completed() {
		if models.CanTransition(record.PaymentStatus, models.PaymentFailed) {
			record.PaymentStatus = models.PaymentFailed
			if err := s.payments.Save(ctx, record); err != nil {
				return nil, err
			}
		}
		return nil, &CaptureFailedError{PaymentStatus: record.PaymentStatus}
	}

	if err := s.complete(ctx, record, capture.TransactionID); err != nil {
		return nil, err
	}
	return &CaptureResult{TransactionID: capture.TransactionID, PaymentStatus: record.PaymentStatus}, nil
}

// complete marks the payment COMPLETED and grants the plan to its account
// in one transaction. Memberships start at the capture instant.
func (s *PaymentService) complete(ctx context.Context, record *models.Payment, transactionID string) error {
	if record.PaymentStatus == models.PaymentCompleted {
		return nil
	}
	if !models.CanTransition(record.PaymentStatus, models.PaymentCompleted) {
		return Conflict(fmt.Sprintf("Payment is already %s", record.PaymentStatus))
	}
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record.PaymentStatus = models.PaymentCompleted
		if transactionID != "" {
			txID := transactionID
			record.PaypalTransactionID = &txID
		}
		record.MembershipPlan = nil
		if err := s.payments.Save(ctx, record); err != nil {
			return fmt.Errorf("complete payment: %w", err)
		}

		plan, err := s.plans.Get(ctx, record.MembershipPlanID)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}
		account, err := s.accounts.Get(ctx, record.UserID)
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}
		start := s.now().UTC()
		end := models.MembershipEndDate(plan.Duration, start, nil)
		if models.IsLifetime(plan.Duration) {
			end = models.LifetimeCaptureEnd
		}
		account.MembershipPlanID = &plan.ID
		account.MembershipPlan = nil
		account.MembershipStartDate = &start
		account.MembershipEndDate = &end
		account.MembershipStatus = account.StatusAt(start)
		if err := s.accounts.Save(ctx, account); err != nil {
			return fmt.Errorf("activate membership: %w", err)
		}
		return nil
	})
}

// HandleWebhook applies a gateway notification. Events for unknown payments
// and transitions the state machine forbids are logged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, ev *payment.WebhookEvent) error {
	log := s.logger.With(zap.String("event", ev.Type), zap.String("order_id", ev.OrderID))
	if ev.Kind == payment.EventIgnored {
		log.Info("webhook event ignored")
		return nil
	}

	record, err := s.webhookPayment(ctx, ev)
	if err != nil {
		if IsNotFound(err) {
			log.Warn("webhook for unknown payment")
			return nil
		}
		return err
	}

	switch ev.Kind {
	case payment.EventCompleted:
		if record.PaymentStatus == models.PaymentCompleted {
			return nil
		}
		if !models.CanTransition(record.PaymentStatus, models.PaymentCompleted) {
			log.Warn("webhook transition rejected", zap.String("status", record.PaymentStatus))
			return nil
		}
		return s.complete(ctx, record, ev.TransactionID)
	case payment.EventFailed:
		return s.transition(ctx, log, record, models.PaymentFailed)
	case payment.EventRefunded:
		return s.transition(ctx, log, record, models.PaymentRefunded)
	}
	return nil
}

func (s *PaymentService) webhookPayment(ctx context.Context, ev *payment.WebhookEvent) (*models.Payment, error) {
	if ev.Kind == payment.EventRefunded && ev.TransactionID != "" {
		record, err := s.payments.FindByTransactionID(ctx, ev.TransactionID)
		if err == nil || !IsNotFound(err) || ev.OrderID == "" {
			return record, err
		}
	}
	return s.payments.FindByOrderID(ctx, ev.OrderID)
}

func (s *PaymentService) transition(ctx context.Context, log *zap.Logger, record *models.Payment, to string) error {
	if record.PaymentStatus == to {
		return nil
	}
	if !models.CanTransition(record.PaymentStatus, to) {
		log.Warn("webhook transition rejected", zap.String("from", record.PaymentStatus), zap.String("to", to))
		return nil
	}
	record.PaymentStatus = to
	record.MembershipPlan = nil
	return s.payments.Save(ctx, record)
}

func (s *PaymentService) History(ctx context.Context, userID uint) ([]models.Payment, error) {
	return s.payments.ForUser(ctx, userID)
}
