package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/payment"
	"go.uber.org/zap"
)

type DonationDeps struct {
	Donations   DonationStore
	Gateway     payment.Gateway
	Mailer      Mailer
	Runner      Runner
	FrontendURL string
	Logger      *zap.Logger
	Now         Clock
}

type DonationService struct {
	donations   DonationStore
	gateway     payment.Gateway
	mailer      Mailer
	runner      Runner
	frontendURL string
	logger      *zap.Logger
	now         Clock
}

func NewDonationService(d DonationDeps) *DonationService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &DonationService{
		donations:   d.Donations,
		gateway:     d.Gateway,
		mailer:      d.Mailer,
		runner:      d.Runner,
		frontendURL: strings.TrimRight(d.FrontendURL, "/"),
		logger:      d.Logger,
		now:         now,
	}
}

// Create opens a gateway order and records a pending donation for it.
func (s *DonationService) Create(ctx context.Context, req models.DonationRequest) (*models.Donation, *payment.Order, error) {
	if req.TotalAmount.String() == "" {
		return nil, nil, Unprocessable("Total amount is required")
	}
	amount, ok := req.TotalAmount.Float()
	if !ok || amount <= 0 {
		return nil, nil, Unprocessable("Total amount must be a positive number")
	}
	method := strings.TrimSpace(req.PaymentInformation)
	if method == "" {
		method = "paypal"
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:      amount,
		Currency:    "USD",
		Description: "Donation to Telugu Association",
		ReturnURL:   s.frontendURL + "/donation/success",
		CancelURL:   s.frontendURL + "/donation/cancel",
	})
	if err != nil {
		s.logger.Error("create donation order", zap.String("gateway", s.gateway.Name()), zap.Error(err))
		return nil, nil, fmt.Errorf("create donation order: %w", err)
	}

	donation := &models.Donation{
		Firstname:          strings.TrimSpace(req.Firstname),
		Lastname:           strings.TrimSpace(req.Lastname),
		Email:              strings.TrimSpace(req.Email),
		Mobile:             strings.TrimSpace(req.Mobile),
		PaymentInformation: method,
		OrderID:            order.ID,
		TotalAmount:        amount,
		Status:             models.DonationPending,
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, nil, fmt.Errorf("record donation: %w", err)
	}
	return donation, order, nil
}

// Complete captures the donation's order. A completed donation is receipted
// by mail in the background.
func (s *DonationService) Complete(ctx context.Context, orderID string) (*models.Donation, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, Unprocessable("Order ID is required")
	}
	donation, err := s.donations.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, found(err, "Donation not found")
	}
	if donation.Status == models.DonationCompleted {
		return donation, nil
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("capture donation order", zap.String("order_id", orderID), zap.Error(err))
		if errors.Is(err, payment.ErrOrderNotFound) {
			return nil, NotFound("Donation not found")
		}
		return nil, fmt.Errorf("capture donation: %w", err)
	}

	if !capture.Completed() {
		donation.Status = models.DonationFailed
		if err := s.donations.Save(ctx, donation); err != nil {
			return nil, err
		}
		return nil, BadRequest("Payment not completed")
	}

	donation.Status = models.DonationCompleted
	donation.TransactionID = capture.TransactionID
	if err := s.donations.Save(ctx, donation); err != nil {
		return nil, fmt.Errorf("complete donation: %w", err)
	}
	s.sendReceipt(*donation)
	return donation, nil
}

func (s *DonationService) sendReceipt(d models.Donation) {
	if d.Email == "" {
		return
	}
	receipt := email.DonationReceipt{
		Firstname:     d.Firstname,
		Amount:        d.TotalAmount,
		TransactionID: d.TransactionID,
		Date:          s.now(),
	}
	s.runner.Go("donation-receipt", func(ctx context.Context) error {
		return s.mailer.SendDonationReceipt(ctx, d.Email, receipt)
	})
}

func (s *DonationService) List(ctx context.Context, f repository.DonationFilter) ([]models.Donation, models.Page, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 5)
	donations, total, err := s.donations.List(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	return donations, models.NewPage(f.Page, f.Limit, total), nil
}
