package repository

import (
	"context"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberFilter struct {
	Page     int
	Limit    int
	Duration string
	Search   string
}

type AccountRepository struct {
	*Repository[models.Account]
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{Repository: New[models.Account](db)}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.First(ctx, "", Where("email = ?", strings.TrimSpace(email)))
}

func (r *AccountRepository) FindBySocialID(ctx context.Context, socialID string) (*models.Account, error) {
	return r.First(ctx, "", Where("social_id = ?", socialID))
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.Count(ctx, Where("email = ?", strings.TrimSpace(email)))
	return n > 0, err
}

// GetDetailed loads the account with its plan and payments.
func (r *AccountRepository) GetDetailed(ctx context.Context, id uint) (*models.Account, error) {
	return r.Get(ctx, id, "MembershipPlan", "Payments")
}

// FindOfType loads an account only when it has the given type.
func (r *AccountRepository) FindOfType(ctx context.Context, id uint, accountType string) (*models.Account, error) {
	return r.First(ctx, "", Where("id = ? AND type = ?", id, accountType))
}

// ListMembers pages member accounts newest first. A duration filter turns
// the plan join into an inner join.
func (r *AccountRepository) ListMembers(ctx context.Context, f MemberFilter) ([]models.Account, int64, error) {
	filters := []Scope{
		Where("auth.type = ?", models.AccountMember),
		Like(f.Search, "auth.firstname", "auth.lastname", "auth.email", "auth.mobile"),
	}
	if f.Duration != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Joins("JOIN membership_plans ON membership_plans.id = auth.membership_plan_id AND membership_plans.duration = ?", f.Duration)
		})
	}
	return r.Page(ctx, ListOptions{
		Page:     f.Page,
		Limit:    f.Limit,
		Order:    "auth.created_at DESC",
		Preloads: []string{"MembershipPlan", "Payments"},
	}, filters...)
}

func (r *AccountRepository) ListVolunteers(ctx context.Context, page, limit int) ([]models.Account, int64, error) {
	return r.Page(ctx, ListOptions{Page: page, Limit: limit, Order: "created_at DESC"},
		Where("type = ?", models.AccountVolunteer))
}

// DeleteOfType removes the listed accounts that have the given type.
func (r *AccountRepository) DeleteOfType(ctx context.Context, ids []uint, accountType string) (int64, error) {
	return r.DeleteIDs(ctx, ids, Where("type = ?", accountType))
}

func (r *AccountRepository) CountActiveMembers(ctx context.Context, now time.Time) (int64, error) {
	return r.Count(ctx, Where(
		"type = ? AND membership_start_date <= ? AND membership_end_date >= ?",
		models.AccountMember, now, now,
	))
}

// MembershipStartDates returns every recorded membership start date.
func (r *AccountRepository) MembershipStartDates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	err := r.conn(ctx).Model(&models.Account{}).
		Where("membership_start_date IS NOT NULL").
		Pluck("membership_start_date", &dates).Error
	return dates, err
}

// UpdateFirstPaymentReference rewrites the gateway reference on the member's
// oldest payment.
func (r *AccountRepository) UpdateFirstPaymentReference(ctx context.Context, userID uint, method, transactionID string) error {
	var p models.Payment
	err := r.conn(ctx).Where("user_id = ?", userID).Order("id ASC").Take(&p).Error
	if err != nil {
		return notFound(err)
	}
	return r.conn(ctx).Model(&p).Omit(clause.Associations).Updates(map[string]interface{}{
		"payment_method":        method,
		"paypal_transaction_id": transactionID,
	}).Error
}

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Upsert stores code for email, replacing any previous code.
func (r *OTPRepository) Upsert(ctx context.Context, email, code string) error {
	otp := models.OTP{Email: email, Code: code}
	return connFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "updated_at"}),
	}).Create(&otp).Error
}

func (r *OTPRepository) Find(ctx context.Context, email string) (*models.OTP, error) {
	var otp models.OTP
	if err := connFrom(ctx, r.db).Where("email = ?", email).Take(&otp).Error; err != nil {
		return nil, notFound(err)
	}
	return &otp, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	return connFrom(ctx, r.db).Where("email = ?", email).Delete(&models.OTP{}).Error
}
