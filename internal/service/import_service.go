package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/spreadsheet"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"go.uber.org/zap"
)

var (
	memberColumns    = []string{"firstName", "lastName", "email", "mobile", "subscriptionPlan", "paymentMethod", "transactionId", "startDate", "endDate"}
	volunteerColumns = []string{"firstName", "lastName", "email", "mobile", "hoursPerMonth"}
)

// ImportService creates accounts in bulk from an uploaded spreadsheet. Each
// row succeeds or fails on its own; a failed row never stops the import.
type ImportService struct {
	members *MemberService
	logger  *zap.Logger
}

func NewImportService(members *MemberService, logger *zap.Logger) *ImportService {
	return &ImportService{members: members, logger: logger}
}

func (s *ImportService) read(filename string, src io.Reader, columns []string) ([]spreadsheet.Row, error) {
	if !spreadsheet.Supported(filename) {
		return nil, Unprocessable(spreadsheet.ErrUnsupported.Message)
	}
	rows, err := spreadsheet.Read(filename, src, columns)
	if err != nil {
		var fe *spreadsheet.FormatError
		if errors.As(err, &fe) {
			return nil, BadRequest(fe.Message)
		}
		return nil, err
	}
	return rows, nil
}

func (s *ImportService) Members(ctx context.Context, filename string, src io.Reader) (*models.BulkResult, error) {
	rows, err := s.read(filename, src, memberColumns)
	if err != nil {
		return nil, err
	}
	s.logger.Info("importing members", zap.Int("rows", len(rows)))

	result := &models.BulkResult{Summary: models.BulkSummary{Total: len(rows)}}
	for _, row := range rows {
		if msg := s.importMember(ctx, row); msg != "" {
			result.Fail(row.Number, row.Get("email"), msg)
			continue
		}
		result.Summary.Successful++
	}
	return result, nil
}

// importMember returns the row error message, or "" on success.
func (s *ImportService) importMember(ctx context.Context, row spreadsheet.Row) string {
	m := s.members
	addr := strings.TrimSpace(row.Get("email"))
	plan := strings.TrimSpace(row.Get("subscriptionPlan"))
	if anyBlank(row.Get("firstName"), row.Get("lastName"), addr, row.Get("mobile"), plan,
		row.Get("paymentMethod"), row.Get("transactionId"), row.Get("startDate")) {
		return "Missing required fields"
	}

	exists, err := m.accounts.EmailExists(ctx, addr)
	if err != nil {
		s.logger.Error("import member lookup", zap.Int("row", row.Number), zap.Error(err))
		return "Failed to check email"
	}
	if exists {
		return "Email already exists"
	}

	p, err := m.plans.ByDuration(ctx, models.NormalizeDuration(plan))
	if err != nil {
		if IsNotFound(err) {
			return fmt.Sprintf("Invalid subscription plan: %s", plan)
		}
		s.logger.Error("import member plan", zap.Int("row", row.Number), zap.Error(err))
		return "Failed to look up subscription plan"
	}

	start, ok := models.ParseDate(row.Get("startDate"))
	if !ok {
		return "Invalid start date"
	}
	var explicitEnd *time.Time
	if models.IsLifetime(p.Duration) && strings.TrimSpace(row.Get("endDate")) != "" {
		t, ok := models.ParseDate(row.Get("endDate"))
		if !ok {
			return "Invalid end date"
		}
		explicitEnd = &t
	}
	end := models.MembershipEndDate(p.Duration, start, explicitEnd)

	password := utils.GenerateRandomString(generatedPasswordLength)
	account, err := newAccount(models.AccountMember, row.Get("firstName"), row.Get("lastName"), addr, row.Get("mobile"), password)
	if err != nil {
		return "Failed to create member"
	}
	account.MembershipPlanID = &p.ID
	account.MembershipStartDate = &start
	account.MembershipEndDate = &end
	account.PaymentInformation = row.Get("paymentMethod")

	if err := m.createWithPayment(ctx, account, p, row.Get("paymentMethod"), row.Get("transactionId")); err != nil {
		s.logger.Error("import member", zap.Int("row", row.Number), zap.Error(err))
		return "Failed to create member"
	}
	m.sendWelcome(addr, email.SubjectWelcomeImported, password)
	return ""
}

func (s *ImportService) Volunteers(ctx context.Context, filename string, src io.Reader) (*models.BulkResult, error) {
	rows, err := s.read(filename, src, volunteerColumns)
	if err != nil {
		return nil, err
	}
	s.logger.Info("importing volunteers", zap.Int("rows", len(rows)))

	m := s.members
	result := &models.BulkResult{Summary: models.BulkSummary{Total: len(rows)}}
	for _, row := range rows {
		addr := strings.TrimSpace(row.Get("email"))
		if anyBlank(row.Get("firstName"), row.Get("lastName"), addr, row.Get("mobile")) {
			result.Fail(row.Number, addr, "Missing required fields")
			continue
		}
		exists, err := m.accounts.EmailExists(ctx, addr)
		if err != nil {
			s.logger.Error("import volunteer lookup", zap.Int("row", row.Number), zap.Error(err))
			result.Fail(row.Number, addr, "Failed to check email")
			continue
		}
		if exists {
			result.Fail(row.Number, addr, "Email already exists")
			continue
		}
		password := utils.GenerateRandomString(generatedPasswordLength)
		account, err := newAccount(models.AccountVolunteer, row.Get("firstName"), row.Get("lastName"), addr, row.Get("mobile"), password)
		if err == nil {
			account.VolunteerHours = strings.TrimSpace(row.Get("hoursPerMonth"))
			err = m.accounts.Create(ctx, account)
		}
		if err != nil {
			s.logger.Error("import volunteer", zap.Int("row", row.Number), zap.Error(err))
			result.Fail(row.Number, addr, "Failed to create volunteer")
			continue
		}
		m.sendWelcome(addr, email.SubjectWelcomeVolunteer, password)
		result.Summary.Successful++
	}
	return result, nil
}
