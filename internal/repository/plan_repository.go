package repository

import (
	"context"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"gorm.io/gorm"
)

type PlanFilter struct {
	Page     int
	Limit    int
	Duration string
	IsActive *bool
	Year     int
}

type MembershipPlanRepository struct {
	*Repository[models.MembershipPlan]
}

func NewMembershipPlanRepository(db *gorm.DB) *MembershipPlanRepository {
	return &MembershipPlanRepository{Repository: New[models.MembershipPlan](db)}
}

func (r *MembershipPlanRepository) List(ctx context.Context, f PlanFilter) ([]models.MembershipPlan, int64, error) {
	var filters []Scope
	if f.Duration != "" {
		filters = append(filters, Where("duration = ?", f.Duration))
	}
	if f.IsActive != nil {
		filters = append(filters, Where("is_active = ?", *f.IsActive))
	}
	if f.Year > 0 {
		from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		filters = append(filters, Where("created_at >= ? AND created_at < ?", from, from.AddDate(1, 0, 0)))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "amount ASC"}, filters...)
}

func (r *MembershipPlanRepository) Active(ctx context.Context) ([]models.MembershipPlan, error) {
	return r.Find(ctx, ListOptions{Order: "amount ASC"}, Where("is_active = ?", true))
}

// ActiveByDuration returns an active plan of the given duration.
func (r *MembershipPlanRepository) ActiveByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error) {
	return r.First(ctx, "id ASC", Where("duration = ? AND is_active = ?", duration, true))
}

// ByDuration returns any plan of the given duration, active or not.
func (r *MembershipPlanRepository) ByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error) {
	return r.First(ctx, "id ASC", Where("duration = ?", duration))
}

type SponsorshipPlanRepository struct {
	*Repository[models.SponsorshipPlan]
}

func NewSponsorshipPlanRepository(db *gorm.DB) *SponsorshipPlanRepository {
	return &SponsorshipPlanRepository{Repository: New[models.SponsorshipPlan](db)}
}

func (r *SponsorshipPlanRepository) List(ctx context.Context, f PlanFilter) ([]models.SponsorshipPlan, int64, error) {
	var filters []Scope
	if f.IsActive != nil {
		filters = append(filters, Where("is_active = ?", *f.IsActive))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "amount DESC"}, filters...)
}

func (r *SponsorshipPlanRepository) Active(ctx context.Context) ([]models.SponsorshipPlan, error) {
	return r.Find(ctx, ListOptions{Order: "amount DESC"}, Where("is_active = ?", true))
}

// TitleTaken reports whether another plan already uses title.
func (r *SponsorshipPlanRepository) TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error) {
	n, err := r.Count(ctx, Where("title = ? AND id <> ?", title, exceptID))
	return n > 0, err
}

type SponsorFilter struct {
	Page   int
	Limit  int
	Status string
	PlanID uint
	Search string
}

type SponsorRepository struct {
	*Repository[models.Sponsor]
}

func NewSponsorRepository(db *gorm.DB) *SponsorRepository {
	return &SponsorRepository{Repository: New[models.Sponsor](db)}
}

func (r *SponsorRepository) GetWithPlan(ctx context.Context, id uint) (*models.Sponsor, error) {
	return r.Get(ctx, id, "SponsorshipPlan")
}

func (r *SponsorRepository) List(ctx context.Context, f SponsorFilter) ([]models.Sponsor, int64, error) {
	filters := []Scope{Like(f.Search, "company_name", "sponsor_name", "email")}
	if f.Status != "" {
		filters = append(filters, Where("status = ?", f.Status))
	}
	if f.PlanID > 0 {
		filters = append(filters, Where("sponsorship_plan_id = ?", f.PlanID))
	}
	return r.Page(ctx, ListOptions{
		Page:     f.Page,
		Limit:    f.Limit,
		Order:    "created_at DESC",
		Preloads: []string{"SponsorshipPlan"},
	}, filters...)
}

// Active returns active sponsors with their plan, newest first.
func (r *SponsorRepository) Active(ctx context.Context) ([]models.Sponsor, error) {
	return r.Find(ctx, ListOptions{Order: "created_at DESC", Preloads: []string{"SponsorshipPlan"}},
		Where("status = ?", models.SponsorActive))
}
