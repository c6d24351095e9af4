package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
)

const msgInvalidDuration = `Duration must be "One year", "Two year", or "Lifetime"`

type PlanService struct {
	membership  MembershipPlanStore
	sponsorship SponsorshipPlanStore
}

func NewPlanService(membership MembershipPlanStore, sponsorship SponsorshipPlanStore) *PlanService {
	return &PlanService{membership: membership, sponsorship: sponsorship}
}

func (s *PlanService) CreateMembershipPlan(ctx context.Context, req models.MembershipPlanRequest) (*models.MembershipPlan, error) {
	amount, ok := req.Amount.Float()
	if anyBlank(req.Title, req.Duration, req.Benefits) || req.Amount.String() == "" {
		return nil, Unprocessable("Title, duration, amount, and benefits are required")
	}
	if !ok || amount < 0 {
		return nil, Unprocessable("Amount must be a valid number")
	}
	duration := models.NormalizeDuration(req.Duration)
	if !models.ValidDuration(duration) {
		return nil, Unprocessable(msgInvalidDuration)
	}
	plan := &models.MembershipPlan{
		Title:    strings.TrimSpace(req.Title),
		Duration: duration,
		Amount:   amount,
		Benefits: req.Benefits,
		IsActive: true,
	}
	if v, ok := req.IsActive.Bool(); ok {
		plan.IsActive = v
	}
	var err error
	if plan.ValidFrom, err = optionalDate(req.ValidFrom, "validFrom"); err != nil {
		return nil, err
	}
	if plan.ValidUntil, err = optionalDate(req.ValidUntil, "validUntil"); err != nil {
		return nil, err
	}
	if err := s.membership.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create membership plan: %w", err)
	}
	return plan, nil
}

func optionalDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, ok := models.ParseDate(value)
	if !ok {
		return nil, Unprocessable(fmt.Sprintf("Invalid %s date", field))
	}
	return &t, nil
}

func (s *PlanService) MembershipPlans(ctx context.Context, f repository.PlanFilter) ([]models.MembershipPlan, models.Page, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 10)
	if f.Duration != "" {
		f.Duration = models.NormalizeDuration(f.Duration)
	}
	plans, total, err := s.membership.List(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	return plans, models.NewPage(f.Page, f.Limit, total), nil
}

func (s *PlanService) ActiveMembershipPlans(ctx context.Context) ([]models.MembershipPlan, error) {
	return s.membership.Active(ctx)
}

func (s *PlanService) MembershipPlan(ctx context.Context, id uint) (*models.MembershipPlan, error) {
	plan, err := s.membership.Get(ctx, id)
	if err != nil {
		return nil, found(err, "Membership plan not found")
	}
	return plan, nil
}

// UpdateMembershipPlan applies the non-empty fields of req.
func (s *PlanService) UpdateMembershipPlan(ctx context.Context, id uint, req models.MembershipPlanRequest) (*models.MembershipPlan, error) {
	plan, err := s.MembershipPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		plan.Title = t
	}
	if req.Duration != "" {
		d := models.NormalizeDuration(req.Duration)
		if !models.ValidDuration(d) {
			return nil, Unprocessable(msgInvalidDuration)
		}
		plan.Duration = d
	}
	if req.Amount.String() != "" {
		amount, ok := req.Amount.Float()
		if !ok || amount < 0 {
			return nil, Unprocessable("Amount must be a valid number")
		}
		plan.Amount = amount
	}
	if req.Benefits != "" {
		plan.Benefits = req.Benefits
	}
	if v, ok := req.IsActive.Bool(); ok {
		plan.IsActive = v
	}
	if req.ValidFrom != "" {
		if plan.ValidFrom, err = optionalDate(req.ValidFrom, "validFrom"); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != "" {
		if plan.ValidUntil, err = optionalDate(req.ValidUntil, "validUntil"); err != nil {
			return nil, err
		}
	}
	if err := s.membership.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("update membership plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) ToggleMembershipPlan(ctx context.Context, id uint) (*models.MembershipPlan, error) {
	plan, err := s.MembershipPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.IsActive = !plan.IsActive
	if err := s.membership.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) DeleteMembershipPlan(ctx context.Context, id uint) error {
	return found(s.membership.Delete(ctx, id), "Membership plan not found")
}

func (s *PlanService) DeleteAllMembershipPlans(ctx context.Context) error {
	n, err := s.membership.DeleteAll(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return Unprocessable("No membership plans found")
	}
	return nil
}

func (s *PlanService) CreateSponsorshipPlan(ctx context.Context, req models.SponsorshipPlanRequest) (*models.SponsorshipPlan, error) {
	if anyBlank(req.Title, req.Benefits) || req.Amount.String() == "" {
		return nil, Unprocessable("Title, amount, and benefits are required")
	}
	amount, ok := req.Amount.Float()
	if !ok || amount < 0 {
		return nil, Unprocessable("Amount must be a valid number")
	}
	title := strings.TrimSpace(req.Title)
	if err := s.checkTitle(ctx, title, 0); err != nil {
		return nil, err
	}
	plan := &models.SponsorshipPlan{Title: title, Amount: amount, Benefits: req.Benefits, IsActive: true}
	if v, ok := req.IsActive.Bool(); ok {
		plan.IsActive = v
	}
	if err := s.sponsorship.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create sponsorship plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) checkTitle(ctx context.Context, title string, exceptID uint) error {
	taken, err := s.sponsorship.TitleTaken(ctx, title, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return Conflict("A sponsorship plan with this title already exists")
	}
	return nil
}

func (s *PlanService) SponsorshipPlans(ctx context.Context, f repository.PlanFilter) ([]models.SponsorshipPlan, models.Page, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 10)
	plans, total, err := s.sponsorship.List(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	return plans, models.NewPage(f.Page, f.Limit, total), nil
}

func (s *PlanService) ActiveSponsorshipPlans(ctx context.Context) ([]models.SponsorshipPlan, error) {
	return s.sponsorship.Active(ctx)
}

func (s *PlanService) SponsorshipPlan(ctx context.Context, id uint) (*models.SponsorshipPlan, error) {
	plan, err := s.sponsorship.Get(ctx, id)
	if err != nil {
		return nil, found(err, "Sponsorship plan not found")
	}
	return plan, nil
}

func (s *PlanService) UpdateSponsorshipPlan(ctx context.Context, id uint, req models.SponsorshipPlanRequest) (*models.SponsorshipPlan, error) {
	plan, err := s.SponsorshipPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(req.Title); t != "" && t != plan.Title {
		if err := s.checkTitle(ctx, t, plan.ID); err != nil {
			return nil, err
		}
		plan.Title = t
	}
	if req.Amount.String() != "" {
		amount, ok := req.Amount.Float()
		if !ok || amount < 0 {
			return nil, Unprocessable("Amount must be a valid number")
		}
		plan.Amount = amount
	}
	if req.Benefits != "" {
		plan.Benefits = req.Benefits
	}
	if v, ok := req.IsActive.Bool(); ok {
		plan.IsActive = v
	}
	if err := s.sponsorship.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("update sponsorship plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) ToggleSponsorshipPlan(ctx context.Context, id uint) (*models.SponsorshipPlan, error) {
	plan, err := s.SponsorshipPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.IsActive = !plan.IsActive
	if err := s.sponsorship.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) DeleteSponsorshipPlan(ctx context.Context, id uint) error {
	return found(s.sponsorship.Delete(ctx, id), "Sponsorship plan not found")
}

func (s *PlanService) DeleteAllSponsorshipPlans(ctx context.Context) error {
	n, err := s.sponsorship.DeleteAll(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return Unprocessable("No sponsorship plans found")
	}
	return nil
}
