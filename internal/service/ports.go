package service

import (
	"context"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/tasks"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Runner interface {
	Go(name string, fn tasks.Func)
}

type Mailer interface {
	SendOTP(ctx context.Context, to, subject, code string) error
	SendWelcome(ctx context.Context, to, subject, password string) error
	SendDonationReceipt(ctx context.Context, to string, r email.DonationReceipt) error
}

type TokenIssuer interface {
	GenerateToken(accountID uint) (string, error)
}

type FileRemover interface {
	Delete(ctx context.Context, fileURL string) error
}

type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	Get(ctx context.Context, id uint, preloads ...string) (*models.Account, error)
	Save(ctx context.Context, a *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetDetailed(ctx context.Context, id uint) (*models.Account, error)
	FindOfType(ctx context.Context, id uint, accountType string) (*models.Account, error)
	ListMembers(ctx context.Context, f repository.MemberFilter) ([]models.Account, int64, error)
	ListVolunteers(ctx context.Context, page, limit int) ([]models.Account, int64, error)
	DeleteOfType(ctx context.Context, ids []uint, accountType string) (int64, error)
	UpdateFirstPaymentReference(ctx context.Context, userID uint, method, transactionID string) error
}

type OTPStore interface {
	Upsert(ctx context.Context, email, code string) error
	Find(ctx context.Context, email string) (*models.OTP, error)
	Delete(ctx context.Context, email string) error
}

type MembershipPlanStore interface {
	Create(ctx context.Context, p *models.MembershipPlan) error
	Get(ctx context.Context, id uint, preloads ...string) (*models.MembershipPlan, error)
	Save(ctx context.Context, p *models.MembershipPlan) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, f repository.PlanFilter) ([]models.MembershipPlan, int64, error)
	Active(ctx context.Context) ([]models.MembershipPlan, error)
	ActiveByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error)
	ByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error)
}

type SponsorshipPlanStore interface {
	Create(ctx context.Context, p *models.SponsorshipPlan) error
	Get(ctx context.Context, id uint, preloads ...string) (*models.SponsorshipPlan, error)
	Save(ctx context.Context, p *models.SponsorshipPlan) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, f repository.PlanFilter) ([]models.SponsorshipPlan, int64, error)
	Active(ctx context.Context) ([]models.SponsorshipPlan, error)
	TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error)
}

type SponsorStore interface {
	Create(ctx context.Context, s *models.Sponsor) error
	Save(ctx context.Context, s *models.Sponsor) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	All(ctx context.Context, order string) ([]models.Sponsor, error)
	GetWithPlan(ctx context.Context, id uint) (*models.Sponsor, error)
	List(ctx context.Context, f repository.SponsorFilter) ([]models.Sponsor, int64, error)
	Active(ctx context.Context) ([]models.Sponsor, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	Save(ctx context.Context, p *models.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	ForUser(ctx context.Context, userID uint) ([]models.Payment, error)
}

type DonationStore interface {
	Create(ctx context.Context, d *models.Donation) error
	Save(ctx context.Context, d *models.Donation) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Donation, error)
	List(ctx context.Context, f repository.DonationFilter) ([]models.Donation, int64, error)
}

type NewsStore interface {
	Create(ctx context.Context, n *models.News) error
	Get(ctx context.Context, id uint, preloads ...string) (*models.News, error)
	Save(ctx context.Context, n *models.News) error
	Delete(ctx context.Context, id uint) error
	Latest(ctx context.Context, n int) ([]models.News, error)
}

// Clock is swapped out in tests.
type Clock func() time.Time

type EventStore interface {
	List(ctx context.Context, f repository.EventFilter) ([]models.Event, int64, error)
	Upcoming(ctx context.Context, today string, n int) ([]models.Event, error)
	CountUpcoming(ctx context.Context, today string) (int64, error)
}

type GalleryStore interface {
	List(ctx context.Context, f repository.GalleryFilter) ([]models.Gallery, int64, error)
	Years(ctx context.Context, mediaType string) ([]string, error)
	Titles(ctx context.Context, mediaType string) ([]string, error)
	OfMediaType(ctx context.Context, mediaType string) ([]models.Gallery, error)
	All(ctx context.Context, order string) ([]models.Gallery, error)
	DeleteOfMediaType(ctx context.Context, mediaType string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type BoardMemberStore interface {
	List(ctx context.Context, f repository.BoardFilter) ([]models.BoardMember, int64, error)
	Years(ctx context.Context) ([]string, error)
}

type HighlightStore interface {
	List(ctx context.Context, page, limit int) ([]models.HomepageHighlight, int64, error)
	FindIDs(ctx context.Context, ids []uint) ([]models.HomepageHighlight, error)
	DeleteIDs(ctx context.Context, ids []uint, filters ...repository.Scope) (int64, error)
	All(ctx context.Context, order string) ([]models.HomepageHighlight, error)
}

type Counter interface {
	Count(ctx context.Context, filters ...repository.Scope) (int64, error)
}

type MembershipStats interface {
	CountActiveMembers(ctx context.Context, now time.Time) (int64, error)
	MembershipStartDates(ctx context.Context) ([]time.Time, error)
}
