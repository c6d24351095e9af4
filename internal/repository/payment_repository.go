package repository

import (
	"context"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	*Repository[models.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{Repository: New[models.Payment](db)}
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	return r.First(ctx, "", Where("paypal_order_id = ?", orderID))
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	return r.First(ctx, "", Where("paypal_transaction_id = ?", transactionID))
}

// ForUser lists the user's payments with their plan, newest first.
func (r *PaymentRepository) ForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	return r.Find(ctx, ListOptions{Order: "created_at DESC", Preloads: []string{"MembershipPlan"}},
		Where("user_id = ?", userID))
}

type DonationFilter struct {
	Page               int
	Limit              int
	Firstname          string
	PaymentInformation string
	OrderID            string
	TransactionID      string
	TotalAmount        *float64
}

type DonationRepository struct {
	*Repository[models.Donation]
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{Repository: New[models.Donation](db)}
}

func (r *DonationRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	return r.First(ctx, "", Where("order_id = ?", orderID))
}

func (r *DonationRepository) List(ctx context.Context, f DonationFilter) ([]models.Donation, int64, error) {
	filters := []Scope{
		Like(f.Firstname, "firstname"),
		Like(f.PaymentInformation, "payment_information"),
		Like(f.OrderID, "order_id"),
		Like(f.TransactionID, "transaction_id"),
	}
	if f.TotalAmount != nil {
		filters = append(filters, Where("total_amount = ?", *f.TotalAmount))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "created_at DESC"}, filters...)
}
