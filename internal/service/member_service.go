package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/bcrypt"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"go.uber.org/zap"
)

const generatedPasswordLength = 8

type MemberDeps struct {
	Accounts AccountStore
	Plans    MembershipPlanStore
	Payments PaymentStore
	Tx       Transactor
	Mailer   Mailer
	Runner   Runner
	Logger   *zap.Logger
	Now      Clock
}

// MemberService is the administrator's view of members and volunteers.
type MemberService struct {
	accounts AccountStore
	plans    MembershipPlanStore
	payments PaymentStore
	tx       Transactor
	mailer   Mailer
	runner   Runner
	logger   *zap.Logger
	now      Clock
}

func NewMemberService(d MemberDeps) *MemberService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &MemberService{
		accounts: d.Accounts,
		plans:    d.Plans,
		payments: d.Payments,
		tx:       d.Tx,
		mailer:   d.Mailer,
		runner:   d.Runner,
		logger:   d.Logger,
		now:      now,
	}
}

func (s *MemberService) ListMembers(ctx context.Context, f repository.MemberFilter) ([]models.MemberSummary, models.Page, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 10)
	rows, total, err := s.accounts.ListMembers(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	out := make([]models.MemberSummary, 0, len(rows))
	for _, a := range rows {
		out = append(out, models.NewMemberSummary(a))
	}
	return out, models.NewPage(f.Page, f.Limit, total), nil
}

// DeleteMembers removes member accounts only; other ids in the list are ignored.
func (s *MemberService) DeleteMembers(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, Unprocessable("Please provide an array of member IDs to delete")
	}
	n, err := s.accounts.DeleteOfType(ctx, ids, models.AccountMember)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, NotFound("No members found to delete")
	}
	return n, nil
}

// AddMember creates a confirmed member on an active plan together with the
// completed payment recorded offline, and mails the generated password.
func (s *MemberService) AddMember(ctx context.Context, req models.AdminAddMemberRequest) (*models.Account, error) {
	if anyBlank(req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.PaymentMethod, req.TransactionID, req.SubscriptionPlan) {
		return nil, Unprocessable("All fields are required: First Name, Last Name, Email, Phone Number, Payment Method, Transaction Id, Subscription Plan")
	}
	duration := models.NormalizeDuration(req.SubscriptionPlan)
	lifetime := models.IsLifetime(duration)
	if !lifetime && anyBlank(req.StartDate, req.EndDate) {
		return nil, Unprocessable("Start Date and End Date are required for this plan")
	}

	exists, err := s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("Member with this email already exists")
	}

	plan, err := s.plans.ActiveByDuration(ctx, duration)
	if err != nil {
		return nil, found(err, fmt.Sprintf("Active membership plan for '%s' not found", req.SubscriptionPlan))
	}

	start := s.now()
	if req.StartDate != "" {
		t, ok := models.ParseDate(req.StartDate)
		if !ok {
			return nil, Unprocessable("Invalid start date")
		}
		start = t
	}
	var explicitEnd *time.Time
	if lifetime && req.EndDate != "" {
		t, ok := models.ParseDate(req.EndDate)
		if !ok {
			return nil, Unprocessable("Invalid end date")
		}
		explicitEnd = &t
	}
	end := models.MembershipEndDate(plan.Duration, start, explicitEnd)

	password := utils.GenerateRandomString(generatedPasswordLength)
	account, err := newAccount(models.AccountMember, req.FirstName, req.LastName, req.Email, req.PhoneNumber, password)
	if err != nil {
		return nil, err
	}
	account.MembershipPlanID = &plan.ID
	account.MembershipStartDate = &start
	account.MembershipEndDate = &end
	account.PaymentInformation = req.PaymentMethod
	if err := s.createWithPayment(ctx, account, plan, req.PaymentMethod, req.TransactionID); err != nil {
		return nil, duplicate(err, "Member with this email already exists")
	}
	s.sendWelcome(account.Email, email.SubjectWelcomeMember, password)
	return account, nil
}

// createWithPayment stores a member and its offline payment atomically.
func (s *MemberService) createWithPayment(ctx context.Context, account *models.Account, plan *models.MembershipPlan, method, transactionID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		txID := strings.TrimSpace(transactionID)
		payment := &models.Payment{
			UserID:              account.ID,
			MembershipPlanID:    plan.ID,
			Amount:              plan.Amount,
			Currency:            "USD",
			PaymentMethod:       method,
			PaypalTransactionID: &txID,
			PaymentStatus:       models.PaymentCompleted,
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		return nil
	})
}

func (s *MemberService) sendWelcome(to, subject, password string) {
	s.runner.Go("welcome-mail", func(ctx context.Context) error {
		return s.mailer.SendWelcome(ctx, to, subject, password)
	})
}

// EditMember updates a member. Changing the plan or the start date
// recomputes the end date; a manual end date on a fixed-term plan is moved
// to December 31 of its year. Membership status is always derived from the
// dates, so a status in the request has no effect.
func (s *MemberService) EditMember(ctx context.Context, id uint, req models.AdminEditMemberRequest) (*models.Account, error) {
	member, err := s.accounts.FindOfType(ctx, id, models.AccountMember)
	if err != nil {
		return nil, found(err, "Member not found")
	}

	if req.Email != "" && !strings.EqualFold(req.Email, member.Email) {
		taken, err := s.accounts.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Conflict("Email already in use")
		}
		member.Email = strings.TrimSpace(req.Email)
	}
	if req.FirstName != "" {
		member.Firstname = req.FirstName
	}
	if req.LastName != "" {
		member.Lastname = req.LastName
	}
	if req.Mobile != "" {
		m := strings.TrimSpace(req.Mobile)
		member.Mobile = &m
	}
	if req.PaymentMethod != "" {
		member.PaymentInformation = req.PaymentMethod
	}

	var plan *models.MembershipPlan
	if req.SubscriptionPlan != "" {
		plan, err = s.plans.ByDuration(ctx, models.NormalizeDuration(req.SubscriptionPlan))
		if err != nil {
			return nil, found(err, fmt.Sprintf("Membership plan %q not found", req.SubscriptionPlan))
		}
		member.MembershipPlanID = &plan.ID
	}
	if req.StartDate != "" {
		t, ok := models.ParseDate(req.StartDate)
		if !ok {
			return nil, Unprocessable("Invalid start date")
		}
		member.MembershipStartDate = &t
	}

	switch {
	case req.SubscriptionPlan != "" || req.StartDate != "":
		if plan == nil {
			plan, err = s.currentPlan(ctx, member)
			if err != nil {
				return nil, err
			}
		}
		if plan != nil && member.MembershipStartDate != nil {
			if models.IsLifetime(plan.Duration) {
				if member.MembershipEndDate == nil {
					end := models.MembershipEndDate(plan.Duration, *member.MembershipStartDate, nil)
					member.MembershipEndDate = &end
				}
			} else {
				end := models.MembershipEndDate(plan.Duration, *member.MembershipStartDate, nil)
				member.MembershipEndDate = &end
			}
		}
	case req.EndDate != "":
		end, ok := models.ParseDate(req.EndDate)
		if !ok {
			return nil, Unprocessable("Invalid end date")
		}
		current, err := s.currentPlan(ctx, member)
		if err != nil {
			return nil, err
		}
		if current == nil || !models.IsLifetime(current.Duration) {
			end = models.ClampToYearEnd(end)
		}
		member.MembershipEndDate = &end
	}

	if err := s.accounts.Save(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	if req.TransactionID != "" {
		method := req.PaymentMethod
		if method == "" {
			method = member.PaymentInformation
		}
		err := s.accounts.UpdateFirstPaymentReference(ctx, member.ID, method, strings.TrimSpace(req.TransactionID))
		if err != nil && !IsNotFound(err) {
			return nil, fmt.Errorf("update payment reference: %w", err)
		}
	}
	return member, nil
}

func (s *MemberService) currentPlan(ctx context.Context, a *models.Account) (*models.MembershipPlan, error) {
	if a.MembershipPlanID == nil {
		return nil, nil
	}
	plan, err := s.plans.Get(ctx, *a.MembershipPlanID)
	if IsNotFound(err) {
		return nil, nil
	}
	return plan, err
}

func (s *MemberService) AddVolunteer(ctx context.Context, req models.AdminAddVolunteerRequest) (*models.Account, error) {
	if anyBlank(req.FirstName, req.LastName, req.Email, req.Mobile) {
		return nil, Unprocessable("First Name, Last Name, Email and Phone are required")
	}
	exists, err := s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("User with this email already exists")
	}
	password := utils.GenerateRandomString(generatedPasswordLength)
	account, err := newAccount(models.AccountVolunteer, req.FirstName, req.LastName, req.Email, req.Mobile, password)
	if err != nil {
		return nil, err
	}
	account.VolunteerHours = req.HoursPerMonth.String()
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, duplicate(fmt.Errorf("create volunteer: %w", err), "User with this email already exists")
	}
	s.sendWelcome(account.Email, email.SubjectWelcomeVolunteer, password)
	return account, nil
}

// newAccount builds a confirmed local account with a hashed password.
func newAccount(accountType, first, last, addr, mobile, password string) (*models.Account, error) {
	hash, err := bcrypt.HashPassword(password)
	if err != nil {
		return nil, err
	}
	m := strings.TrimSpace(mobile)
	a := &models.Account{
		Type:              accountType,
		Firstname:         strings.TrimSpace(first),
		Lastname:          strings.TrimSpace(last),
		Email:             strings.TrimSpace(addr),
		Mobile:            &m,
		Password:          hash,
		AuthProvider:      models.ProviderLocal,
		Confirm:           true,
		IsProfileComplete: true,
	}
	if accountType == models.AccountVolunteer {
		a.VolunteerStatus = models.VolunteerActive
	}
	return a, nil
}

// EditVolunteer updates only the fields present in req.
func (s *MemberService) EditVolunteer(ctx context.Context, id uint, req models.AdminEditVolunteerRequest) (*models.Account, error) {
	v, err := s.accounts.FindOfType(ctx, id, models.AccountVolunteer)
	if err != nil {
		return nil, found(err, "Volunteer not found")
	}
	if req.VolunteerStatus != "" && req.VolunteerStatus != models.VolunteerActive && req.VolunteerStatus != models.VolunteerInactive {
		return nil, Unprocessable(`Volunteer status must be either "active" or "inactive"`)
	}
	if req.Email != "" && !strings.EqualFold(req.Email, v.Email) {
		taken, err := s.accounts.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Conflict("Email already in use")
		}
		v.Email = strings.TrimSpace(req.Email)
	}
	if req.FirstName != "" {
		v.Firstname = req.FirstName
	}
	if req.LastName != "" {
		v.Lastname = req.LastName
	}
	if req.Mobile != "" {
		m := strings.TrimSpace(req.Mobile)
		v.Mobile = &m
	}
	if req.HoursPerMonth != nil {
		v.VolunteerHours = req.HoursPerMonth.String()
	}
	if req.VolunteerStatus != "" {
		v.VolunteerStatus = req.VolunteerStatus
	}
	if err := s.accounts.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("update volunteer: %w", err)
	}
	return v, nil
}

func (s *MemberService) ListVolunteers(ctx context.Context, page, limit int) ([]models.VolunteerSummary, models.Page, int, error) {
	page, limit = pageDefaults(page, limit, 10)
	rows, total, err := s.accounts.ListVolunteers(ctx, page, limit)
	if err != nil {
		return nil, models.Page{}, 0, err
	}
	out := make([]models.VolunteerSummary, 0, len(rows))
	for _, a := range rows {
		out = append(out, models.NewVolunteerSummary(a))
	}
	return out, models.NewPage(page, limit, total), limit, nil
}

func (s *MemberService) DeleteVolunteers(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return Unprocessable("Volunteer IDs are required")
	}
	_, err := s.accounts.DeleteOfType(ctx, ids, models.AccountVolunteer)
	return err
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// pageDefaults clamps page to at least 1 and falls back to def for a missing limit.
func pageDefaults(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	return page, limit
}
