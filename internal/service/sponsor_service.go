package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
)

type SponsorService struct {
	sponsors SponsorStore
	plans    SponsorshipPlanStore
	files    *FileCleaner
	validate *utils.Validator
}

func NewSponsorService(sponsors SponsorStore, plans SponsorshipPlanStore, files *FileCleaner, validate *utils.Validator) *SponsorService {
	return &SponsorService{sponsors: sponsors, plans: plans, files: files, validate: validate}
}

// Create stores a sponsor with the already uploaded logo at imageURL. The
// logo is discarded when the sponsor is rejected.
func (s *SponsorService) Create(ctx context.Context, req models.SponsorRequest, imageURL string) (sponsor *models.Sponsor, err error) {
	defer func() {
		if err != nil {
			s.files.Discard(imageURL)
		}
	}()

	if anyBlank(req.CompanyName, req.SponsorName, req.Email, req.SponsorshipPlanID, req.StartDate, req.EndDate) {
		return nil, Unprocessable("Company name, sponsor name, email, sponsorship plan, start date, and end date are required")
	}
	if !s.validate.IsEmail(strings.TrimSpace(req.Email)) {
		return nil, Unprocessable("Invalid email format")
	}
	planID, ok := models.FlexString(req.SponsorshipPlanID).Uint()
	if !ok {
		return nil, NotFound("Sponsorship plan not found")
	}
	if _, err := s.plans.Get(ctx, planID); err != nil {
		return nil, found(err, "Sponsorship plan not found")
	}
	start, end, err := sponsorDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	status := models.SponsorActive
	if req.Status != "" {
		if status, err = sponsorStatus(req.Status); err != nil {
			return nil, err
		}
	}

	sponsor = &models.Sponsor{
		CompanyName:       strings.TrimSpace(req.CompanyName),
		SponsorName:       strings.TrimSpace(req.SponsorName),
		Email:             strings.TrimSpace(req.Email),
		Website:           strings.TrimSpace(req.Website),
		SponsorshipPlanID: planID,
		Status:            status,
		StartDate:         start,
		EndDate:           end,
	}
	setLogo(sponsor, imageURL)
	if err := s.sponsors.Create(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("create sponsor: %w", err)
	}
	return sponsor, nil
}

func setLogo(s *models.Sponsor, imageURL string) {
	s.ImageURL = imageURL
	s.ImagePublicID = ""
	if imageURL != "" {
		s.ImagePublicID = media.PublicID(imageURL)
	}
}

func sponsorStatus(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case models.SponsorActive:
		return models.SponsorActive, nil
	case models.SponsorInactive:
		return models.SponsorInactive, nil
	}
	return "", Unprocessable(`Status must be either "active" or "inactive"`)
}

func sponsorDates(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, ok := models.ParseDate(startRaw)
	if !ok {
		return time.Time{}, time.Time{}, Unprocessable("Invalid start date")
	}
	end, ok := models.ParseDate(endRaw)
	if !ok {
		return time.Time{}, time.Time{}, Unprocessable("Invalid end date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, Unprocessable("End date must be after start date")
	}
	return start, end, nil
}

func (s *SponsorService) List(ctx context.Context, f repository.SponsorFilter) ([]models.Sponsor, models.Page, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 10)
	sponsors, total, err := s.sponsors.List(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	return sponsors, models.NewPage(f.Page, f.Limit, total), nil
}

func (s *SponsorService) Active(ctx context.Context) ([]models.Sponsor, error) {
	return s.sponsors.Active(ctx)
}

func (s *SponsorService) Get(ctx context.Context, id uint) (*models.Sponsor, error) {
	sponsor, err := s.sponsors.GetWithPlan(ctx, id)
	if err != nil {
		return nil, found(err, "Sponsor not found")
	}
	return sponsor, nil
}

// Update applies the non-empty fields of req. A new logo replaces the old
// one, which is then deleted from storage.
func (s *SponsorService) Update(ctx context.Context, id uint, req models.SponsorRequest, imageURL string) (sponsor *models.Sponsor, err error) {
	defer func() {
		if err != nil {
			s.files.Discard(imageURL)
		}
	}()

	sponsor, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if sponsor.Status, err = sponsorStatus(req.Status); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if !s.validate.IsEmail(strings.TrimSpace(req.Email)) {
			return nil, Unprocessable("Invalid email format")
		}
		sponsor.Email = strings.TrimSpace(req.Email)
	}
	if req.SponsorshipPlanID != "" {
		planID, ok := models.FlexString(req.SponsorshipPlanID).Uint()
		if !ok {
			return nil, NotFound("Sponsorship plan not found")
		}
		if _, err := s.plans.Get(ctx, planID); err != nil {
			return nil, found(err, "Sponsorship plan not found")
		}
		sponsor.SponsorshipPlanID = planID
	}
	startRaw, endRaw := req.StartDate, req.EndDate
	if startRaw != "" || endRaw != "" {
		if startRaw == "" {
			startRaw = sponsor.StartDate.Format(time.RFC3339)
		}
		if endRaw == "" {
			endRaw = sponsor.EndDate.Format(time.RFC3339)
		}
		if sponsor.StartDate, sponsor.EndDate, err = sponsorDates(startRaw, endRaw); err != nil {
			return nil, err
		}
	}
	if v := strings.TrimSpace(req.CompanyName); v != "" {
		sponsor.CompanyName = v
	}
	if v := strings.TrimSpace(req.SponsorName); v != "" {
		sponsor.SponsorName = v
	}
	if req.Website != "" {
		sponsor.Website = strings.TrimSpace(req.Website)
	}

	oldImage := sponsor.ImageURL
	if imageURL != "" {
		setLogo(sponsor, imageURL)
	}
	sponsor.SponsorshipPlan = nil
	if err := s.sponsors.Save(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("update sponsor: %w", err)
	}
	if imageURL != "" && oldImage != imageURL {
		s.files.Discard(oldImage)
	}
	return s.Get(ctx, id)
}

func (s *SponsorService) Toggle(ctx context.Context, id uint) (*models.Sponsor, error) {
	sponsor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sponsor.Status == models.SponsorActive {
		sponsor.Status = models.SponsorInactive
	} else {
		sponsor.Status = models.SponsorActive
	}
	sponsor.SponsorshipPlan = nil
	if err := s.sponsors.Save(ctx, sponsor); err != nil {
		return nil, err
	}
	return sponsor, nil
}

func (s *SponsorService) Delete(ctx context.Context, id uint) error {
	sponsor, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sponsors.Delete(ctx, id); err != nil {
		return found(err, "Sponsor not found")
	}
	s.files.Discard(sponsor.ImageURL)
	return nil
}

func (s *SponsorService) DeleteAll(ctx context.Context) error {
	sponsors, err := s.sponsors.All(ctx, "id ASC")
	if err != nil {
		return err
	}
	if len(sponsors) == 0 {
		return Unprocessable("No sponsors found")
	}
	if _, err := s.sponsors.DeleteAll(ctx); err != nil {
		return err
	}
	urls := make([]string, 0, len(sponsors))
	for _, sp := range sponsors {
		urls = append(urls, sp.ImageURL)
	}
	s.files.Discard(urls...)
	return nil
}
