package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func newTestAccountService() (*AccountService, *fakeAccounts, *fakeOTPs, *fakeMailer) {
	accounts := newFakeAccounts()
	otps := newFakeOTPs()
	mailer := &fakeMailer{}
	svc := NewAccountService(AccountDeps{
		Accounts:  accounts,
		OTPs:      otps,
		Tokens:    fakeTokens{},
		Mailer:    mailer,
		Validator: utils.NewValidator(),
		Logger:    zap.NewNop(),
	})
	return svc, accounts, otps, mailer
}

func memberRegistration(addr string) models.RegisterRequest {
	return models.RegisterRequest{
		Type:               "member",
		Firstname:          "Lakshmi",
		Lastname:           "Reddy",
		Email:              addr,
		Mobile:             "9876543210",
		Password:           "Secret@123",
		ConfirmPassword:    "Secret@123",
		State:              "Texas",
		City:               "Dallas",
		Country:            "USA",
		Zipcode:            "75001",
		Address:            "12 Main St",
		MembershipType:     "One year",
		PaymentInformation: "paypal",
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, accounts, _, _ := newTestAccountService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, memberRegistration("lakshmi@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, memberRegistration("lakshmi@example.com"))
	if got := statusOf(err); got != http.StatusConflict {
		t.Fatalf("status: got %d, want %d (err %v)", got, http.StatusConflict, err)
	}
	if err.Error() != "Member Already exist" {
		t.Errorf("message: got %q", err.Error())
	}
	if got := accounts.count(); got != 1 {
		t.Errorf("accounts: got %d, want 1", got)
	}
}

// A concurrent insert of the same email passes EmailExists and then hits the
// unique index.
func TestUniqueIndexViolationIsConflict(t *testing.T) {
	ctx := context.Background()
	raced := fmt.Errorf("insert: %w", repository.ErrDuplicate)

	svc, accounts, _, _ := newTestAccountService()
	accounts.createErr = raced
	_, err := svc.Register(ctx, memberRegistration("ravi@example.com"))
	if statusOf(err) != http.StatusConflict || err.Error() != "Member Already exist" {
		t.Errorf("register: got %v, want 409 Member Already exist", err)
	}

	f := newMemberFixture(standardPlans...)
	f.accounts.createErr = raced
	_, err = f.svc.AddMember(ctx, models.AdminAddMemberRequest{
		FirstName:        "Padma",
		LastName:         "Rao",
		Email:            "padma@example.com",
		PhoneNumber:      "9876543210",
		PaymentMethod:    "check",
		TransactionID:    "CHK-204",
		SubscriptionPlan: "Lifetime",
	})
	if statusOf(err) != http.StatusConflict {
		t.Errorf("add member: got %v, want 409", err)
	}
	if len(f.mailer.sent) != 0 {
		t.Errorf("welcome mail sent for a rejected member")
	}
}

func TestRegisterAdminTypeStoredAsMember(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	req := memberRegistration("admin@example.com")
	req.Type = "admin"

	account, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Type != models.AccountMember || account.IsAdministrator() {
		t.Errorf("type: got %q admin=%v, want member", account.Type, account.IsAdministrator())
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		status int
	}{
		{"unknown type", func(r *models.RegisterRequest) { r.Type = "guest" }, http.StatusBadRequest},
		{"weak password", func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "password", "password" }, http.StatusUnprocessableEntity},
		{"short mobile", func(r *models.RegisterRequest) { r.Mobile = "123" }, http.StatusUnprocessableEntity},
		{"member without city", func(r *models.RegisterRequest) { r.City = "" }, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, _, _ := newTestAccountService()
			req := memberRegistration("x@example.com")
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			if err == nil {
				t.Fatal("expected an error")
			}
			var verr *ValidationError
			got := statusOf(err)
			if errors.As(err, &verr) {
				got = http.StatusUnprocessableEntity
			}
			if got != tt.status {
				t.Errorf("status: got %d, want %d (err %v)", got, tt.status, err)
			}
			if accounts.count() != 0 {
				t.Error("account created for an invalid request")
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, memberRegistration("ravi@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		req      models.LoginRequest
		wantMsg  string
		wantAuth bool
	}{
		{"ok", models.LoginRequest{Email: "ravi@example.com", Password: "Secret@123"}, "", true},
		{"wrong password", models.LoginRequest{Email: "ravi@example.com", Password: "Secret@124"}, "Invalid Password", false},
		{"unknown account", models.LoginRequest{Email: "nobody@example.com", Password: "Secret@123"}, "Account does not exist", false},
		{"missing fields", models.LoginRequest{Email: "ravi@example.com"}, "All fields are required", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.SignIn(ctx, tt.req)
			if tt.wantAuth {
				if err != nil || session == nil || session.Token == "" {
					t.Fatalf("sign in: session %v, err %v", session, err)
				}
				return
			}
			if session != nil {
				t.Error("session issued for a failed sign-in")
			}
			if statusOf(err) != http.StatusUnprocessableEntity || err.Error() != tt.wantMsg {
				t.Errorf("error: got %v (status %d), want %q", err, statusOf(err), tt.wantMsg)
			}
		})
	}
}

func TestVerifyOTPIsOneShot(t *testing.T) {
	svc, _, otps, mailer := newTestAccountService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, memberRegistration("sita@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "sita@example.com", false); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	mail, ok := mailer.last()
	if !ok || mail.Subject != email.SubjectForgotPassword || len(mail.Body) != 4 {
		t.Fatalf("otp mail: got %+v", mail)
	}

	if err := svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "sita@example.com", OTP: "no"}); err == nil || err.Error() != "Invalid OTP" {
		t.Errorf("wrong code: got %v, want Invalid OTP", err)
	}
	if err := svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "sita@example.com", OTP: mail.Body}); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, ok := otps.codes["sita@example.com"]; ok {
		t.Error("otp still stored after verification")
	}
	err := svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "sita@example.com", OTP: mail.Body})
	if err == nil || err.Error() != "OTP expired or not found" {
		t.Errorf("second verify: got %v, want OTP expired or not found", err)
	}
}

func TestForgotPasswordAdminOnly(t *testing.T) {
	svc, _, _, mailer := newTestAccountService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, memberRegistration("member@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := svc.ForgotPassword(ctx, "member@example.com", true)
	if err == nil || err.Error() != "Enter registered email id" {
		t.Errorf("member on admin route: got %v", err)
	}
	if _, ok := mailer.last(); ok {
		t.Error("otp mailed to a non-admin")
	}
}

func TestUpdateProfileRejectsBadEmail(t *testing.T) {
	svc, accounts, otps, _ := newTestAccountService()
	ctx := context.Background()
	admin := &models.Account{Type: models.AccountAdmin, IsAdmin: true, Email: "old@example.com"}
	if err := accounts.Create(ctx, admin); err != nil {
		t.Fatal(err)
	}
	for _, addr := range []string{"not-an-email", "ann@", "@example.com"} {
		addr := addr
		_, err := svc.UpdateProfile(ctx, admin.ID, models.UpdateProfileRequest{Email: &addr})
		if statusOf(err) != http.StatusUnprocessableEntity || err.Error() != "Invalid email format" {
			t.Errorf("email %q: got %v, want 422 Invalid email format", addr, err)
		}
		if _, ok := otps.codes[addr]; ok {
			t.Errorf("email %q: otp issued", addr)
		}
	}
}

func TestUpdateProfileAdminEmailNeedsOTP(t *testing.T) {
	svc, accounts, otps, _ := newTestAccountService()
	ctx := context.Background()
	admin := &models.Account{Type: models.AccountAdmin, IsAdmin: true, Email: "old@example.com"}
	if err := accounts.Create(ctx, admin); err != nil {
		t.Fatal(err)
	}

	newAddr := "new@example.com"
	pending, err := svc.UpdateProfile(ctx, admin.ID, models.UpdateProfileRequest{Email: &newAddr})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if !pending {
		t.Error("pending: got false, want true")
	}
	stored, _ := accounts.Get(ctx, admin.ID)
	if stored.Email != "old@example.com" {
		t.Errorf("email changed before verification: %q", stored.Email)
	}

	code := otps.codes[newAddr]
	if err := svc.VerifyEmailChange(ctx, admin.ID, models.VerifyOTPRequest{Email: newAddr, OTP: code}); err != nil {
		t.Fatalf("verify email change: %v", err)
	}
	stored, _ = accounts.Get(ctx, admin.ID)
	if stored.Email != newAddr {
		t.Errorf("email: got %q, want %q", stored.Email, newAddr)
	}
}
