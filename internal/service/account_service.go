package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/bcrypt"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/oauth"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"go.uber.org/zap"
)

const (
	msgWeakPassword = "Password must contain at least 8 characters, including at least one uppercase letter, one lowercase letter, one number, and one special character."
	msgInvalidType  = `Invalid type. Must be either "member" or "volunteer".`
)

// Session is the result of a successful sign-in.
type Session struct {
	Account *models.Account
	Token   string
}

type AccountDeps struct {
	Accounts  AccountStore
	OTPs      OTPStore
	Tokens    TokenIssuer
	Mailer    Mailer
	Google    oauth.Verifier
	Facebook  oauth.Verifier
	Validator *utils.Validator
	Logger    *zap.Logger
}

// AccountService covers self-service registration, sign-in, password
// recovery and profile maintenance.
type AccountService struct {
	accounts AccountStore
	otps     OTPStore
	tokens   TokenIssuer
	mailer   Mailer
	google   oauth.Verifier
	facebook oauth.Verifier
	validate *utils.Validator
	logger   *zap.Logger
}

func NewAccountService(d AccountDeps) *AccountService {
	return &AccountService{
		accounts: d.Accounts,
		otps:     d.OTPs,
		tokens:   d.Tokens,
		mailer:   d.Mailer,
		google:   d.Google,
		facebook: d.Facebook,
		validate: d.Validator,
		logger:   d.Logger,
	}
}

// Register validates req against the member or volunteer rules and creates
// the account. Administrators cannot be self-registered; the "admin" type is
// accepted for compatibility and stored as a member.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	accountType := strings.ToLower(strings.TrimSpace(req.Type))
	var fields []utils.FieldError
	switch accountType {
	case models.AccountMember, models.AccountAdmin:
		accountType = models.AccountMember
		fields = s.validate.Fields(models.MemberRegistration{
			RegistrationBase:   req.Base(),
			State:              req.State,
			City:               req.City,
			Country:            req.Country,
			Zipcode:            req.Zipcode,
			Address:            req.Address,
			Address2:           req.Address2,
			MembershipType:     req.MembershipType,
			PaymentInformation: req.PaymentInformation,
		})
	case models.AccountVolunteer:
		fields = s.validate.Fields(models.VolunteerRegistration{RegistrationBase: req.Base()})
	default:
		return nil, BadRequest(msgInvalidType)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	exists, err := s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("Member Already exist")
	}

	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	mobile := strings.TrimSpace(req.Mobile)
	account := &models.Account{
		Type:               accountType,
		Firstname:          strings.TrimSpace(req.Firstname),
		Lastname:           strings.TrimSpace(req.Lastname),
		Email:              strings.TrimSpace(req.Email),
		Mobile:             &mobile,
		Password:           hash,
		AuthProvider:       models.ProviderLocal,
		State:              req.State,
		City:               req.City,
		Country:            req.Country,
		Zipcode:            req.Zipcode,
		Address:            req.Address,
		Address2:           req.Address2,
		PaymentInformation: req.PaymentInformation,
	}
	if accountType == models.AccountVolunteer {
		account.VolunteerStatus = models.VolunteerActive
	}
	account.IsProfileComplete = account.ProfileComplete()
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, duplicate(fmt.Errorf("create account: %w", err), "Member Already exist")
	}
	return account, nil
}

// VolunteerSignup is the public volunteer form. Volunteers are confirmed on creation.
func (s *AccountService) VolunteerSignup(ctx context.Context, req models.VolunteerSignupRequest) (*models.Account, error) {
	for _, v := range []string{req.FirstName, req.LastName, req.Email, req.Mobile, req.Password, req.ConfirmPassword,
		req.State, req.City, req.Country, req.Zipcode, req.Address} {
		if strings.TrimSpace(v) == "" {
			return nil, Unprocessable("All fields are required")
		}
	}
	if req.Password != req.ConfirmPassword {
		return nil, Unprocessable("Passwords do not match")
	}
	if !utils.IsStrongPassword(req.Password) {
		return nil, Unprocessable(msgWeakPassword)
	}
	exists, err := s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("User with this email already exists")
	}
	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	mobile := strings.TrimSpace(req.Mobile)
	account := &models.Account{
		Type:              models.AccountVolunteer,
		Firstname:         req.FirstName,
		Lastname:          req.LastName,
		Email:             strings.TrimSpace(req.Email),
		Mobile:            &mobile,
		Password:          hash,
		AuthProvider:      models.ProviderLocal,
		Confirm:           true,
		VolunteerStatus:   models.VolunteerActive,
		IsProfileComplete: true,
		State:             req.State,
		City:              req.City,
		Country:           req.Country,
		Zipcode:           req.Zipcode,
		Address:           req.Address,
		Address2:          req.Address2,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, duplicate(fmt.Errorf("create volunteer: %w", err), "User with this email already exists")
	}
	return account, nil
}

func (s *AccountService) SignIn(ctx context.Context, req models.LoginRequest) (*Session, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, Unprocessable("All fields are required")
	}
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return nil, Unprocessable("Account does not exist")
		}
		return nil, err
	}
	if !bcrypt.Matches(account.Password, req.Password) {
		return nil, Unprocessable("Invalid Password")
	}
	return s.session(account)
}

func (s *AccountService) session(account *models.Account) (*Session, error) {
	token, err := s.tokens.GenerateToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Account: account, Token: token}, nil
}

func (s *AccountService) GoogleSignIn(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, Unprocessable("Token is required")
	}
	profile, err := s.google.Verify(ctx, token)
	if err != nil {
		s.logger.Warn("google sign-in rejected", zap.Error(err))
		return nil, Unprocessable("Invalid Google Token")
	}
	if profile.Email == "" {
		return nil, Unprocessable("Email not found in token")
	}
	return s.socialSignIn(ctx, models.ProviderGoogle, profile)
}

func (s *AccountService) FacebookSignIn(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, Unprocessable("Access token is required")
	}
	profile, err := s.facebook.Verify(ctx, token)
	if err != nil {
		s.logger.Warn("facebook sign-in rejected", zap.Error(err))
		return nil, Unprocessable("Invalid Facebook Token")
	}
	if profile.Email == "" {
		return nil, Unprocessable("Email not found in Facebook account")
	}
	return s.socialSignIn(ctx, models.ProviderFacebook, profile)
}

// socialSignIn creates a confirmed member on first sight of the email and
// links the provider to an existing account that has none yet.
func (s *AccountService) socialSignIn(ctx context.Context, provider string, p *oauth.Profile) (*Session, error) {
	socialID := p.ID
	account, err := s.accounts.FindByEmail(ctx, p.Email)
	switch {
	case IsNotFound(err):
		account = &models.Account{
			Type:           models.AccountMember,
			Email:          p.Email,
			SocialID:       &socialID,
			AuthProvider:   provider,
			Firstname:      p.FirstName,
			Lastname:       p.LastName,
			ProfilePicture: p.Picture,
			Confirm:        true,
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("create %s account: %w", provider, err)
		}
	case err != nil:
		return nil, err
	case account.SocialID == nil || *account.SocialID == "":
		account.SocialID = &socialID
		account.AuthProvider = provider
		account.ProfilePicture = p.Picture
		if err := s.accounts.Save(ctx, account); err != nil {
			return nil, fmt.Errorf("link %s account: %w", provider, err)
		}
	}
	return s.session(account)
}

// ForgotPassword issues a fresh 4-digit code for email, replacing any pending
// one. With adminOnly set, only administrator accounts qualify.
func (s *AccountService) ForgotPassword(ctx context.Context, emailAddr string, adminOnly bool) error {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return Unprocessable("Email is Required")
	}
	account, err := s.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if IsNotFound(err) {
			return Unprocessable("Enter registered email id")
		}
		return err
	}
	subject := email.SubjectForgotPassword
	if adminOnly {
		if !account.IsAdministrator() {
			return Unprocessable("Enter registered email id")
		}
		subject = email.SubjectAdminForgotPassword
	}
	return s.issueOTP(ctx, emailAddr, subject)
}

func (s *AccountService) issueOTP(ctx context.Context, to, subject string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Upsert(ctx, to, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := s.mailer.SendOTP(ctx, to, subject, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

// VerifyOTP consumes the pending code for email. A code verifies at most once.
func (s *AccountService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) error {
	record, err := s.otps.Find(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if IsNotFound(err) {
			return Unprocessable("OTP expired or not found")
		}
		return err
	}
	if strings.TrimSpace(req.OTP) == "" {
		return Unprocessable("OTP is required")
	}
	if record.Code != strings.TrimSpace(req.OTP) {
		return Unprocessable("Invalid OTP")
	}
	return s.otps.Delete(ctx, record.Email)
}

// ResetPassword sets a new password for the account with the given email.
func (s *AccountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return Unprocessable("Enter register email address")
		}
		return err
	}
	if req.NewPassword == "" || req.ConfirmPassword == "" {
		return Unprocessable("All fileds are Required")
	}
	if !utils.IsStrongPassword(req.NewPassword) {
		return Unprocessable(msgWeakPassword)
	}
	if req.NewPassword != req.ConfirmPassword {
		return Unprocessable("Passwords do not match")
	}
	return s.setPassword(ctx, account, req.NewPassword)
}

// UpdatePassword changes the signed-in account's password after checking the current one.
func (s *AccountService) UpdatePassword(ctx context.Context, accountID uint, req models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return Unprocessable("All fields are required")
	}
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return found(err, "User not found")
	}
	if !bcrypt.Matches(account.Password, req.CurrentPassword) {
		return Unprocessable("Current password is incorrect")
	}
	if !utils.IsStrongPassword(req.NewPassword) {
		return Unprocessable(msgWeakPassword)
	}
	if req.NewPassword != req.ConfirmPassword {
		return Unprocessable("New password and confirm password do not match")
	}
	return s.setPassword(ctx, account, req.NewPassword)
}

func (s *AccountService) setPassword(ctx context.Context, account *models.Account, password string) error {
	hash, err := bcrypt.HashPassword(password)
	if err != nil {
		return err
	}
	account.Password = hash
	return s.accounts.Save(ctx, account)
}

func (s *AccountService) Profile(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accounts.GetDetailed(ctx, id)
	if err != nil {
		return nil, found(err, "Profile not found")
	}
	return account, nil
}

func (s *AccountService) MemberData(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accounts.GetDetailed(ctx, id)
	if err != nil {
		return nil, found(err, "Member not found")
	}
	return account, nil
}

func (s *AccountService) AdminProfile(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, found(err, "Admin profile not found")
	}
	if !account.IsAdministrator() {
		return nil, NotFound("Admin profile not found")
	}
	return account, nil
}

func (s *AccountService) Confirm(ctx context.Context, id uint) error {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return found(err, "Member not found")
	}
	account.Confirm = true
	return s.accounts.Save(ctx, account)
}

// UpdateProfile applies the whitelisted fields of req. An administrator's
// email change is not applied directly: a code goes to the new address and
// the change waits for VerifyEmailChange. The returned flag reports that.
func (s *AccountService) UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (bool, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return false, found(err, "Member not found")
	}

	var newEmail string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		newEmail = strings.TrimSpace(*req.Email)
		if !s.validate.IsEmail(newEmail) {
			return false, Unprocessable("Invalid email format")
		}
	}
	if req.Password != nil && *req.Password != "" {
		if !utils.IsStrongPassword(*req.Password) {
			return false, Unprocessable("Password must be at least 8 characters long and include uppercase, lowercase, number, and special character")
		}
		confirm := ""
		if req.ConfirmPassword != nil {
			confirm = *req.ConfirmPassword
		}
		if *req.Password != confirm {
			return false, Unprocessable("Password and Confirm Password do not match")
		}
		hash, err := bcrypt.HashPassword(*req.Password)
		if err != nil {
			return false, err
		}
		account.Password = hash
	}

	applyProfile(account, req)

	pending := false
	if newEmail != "" && !strings.EqualFold(newEmail, account.Email) {
		taken, err := s.accounts.EmailExists(ctx, newEmail)
		if err != nil {
			return false, err
		}
		if taken {
			return false, Conflict("Email already in use")
		}
		if account.IsAdministrator() {
			if err := s.issueOTP(ctx, newEmail, email.SubjectEmailChange); err != nil {
				return false, err
			}
			pending = true
		} else {
			account.Email = newEmail
		}
	}

	account.IsProfileComplete = account.ProfileComplete()
	if err := s.accounts.Save(ctx, account); err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}
	return pending, nil
}

func applyProfile(a *models.Account, req models.UpdateProfileRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Firstname, req.Firstname)
	set(&a.Lastname, req.Lastname)
	set(&a.State, req.State)
	set(&a.City, req.City)
	set(&a.Country, req.Country)
	set(&a.Zipcode, req.Zipcode)
	set(&a.Address, req.Address)
	set(&a.Address2, req.Address2)
	set(&a.ProfilePicture, req.ProfilePicture)
	set(&a.PaymentInformation, req.PaymentInformation)
	if req.Mobile != nil {
		m := strings.TrimSpace(*req.Mobile)
		a.Mobile = &m
	}
}

// VerifyEmailChange applies an administrator's pending email change.
func (s *AccountService) VerifyEmailChange(ctx context.Context, accountID uint, req models.VerifyOTPRequest) error {
	newEmail := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.OTP)
	if newEmail == "" || code == "" {
		return Unprocessable("Email and OTP are required")
	}
	record, err := s.otps.Find(ctx, newEmail)
	if err != nil && !IsNotFound(err) {
		return err
	}
	if record == nil || record.Code != code {
		return Unprocessable("Invalid or expired OTP")
	}
	taken, err := s.accounts.EmailExists(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken {
		return Conflict("Email already in use")
	}
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return found(err, "User not found")
	}
	account.Email = newEmail
	if err := s.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return s.otps.Delete(ctx, newEmail)
}
