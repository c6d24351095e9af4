package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number, or boolean. Admin forms send
// numeric fields either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }

func (f FlexString) Uint() (uint, bool) {
	n, err := strconv.ParseUint(f.String(), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (f FlexString) Float() (float64, bool) {
	n, err := strconv.ParseFloat(f.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool reports the parsed value and whether one was supplied.
func (f FlexString) Bool() (bool, bool) {
	v, err := strconv.ParseBool(f.String())
	if err != nil {
		return false, false
	}
	return v, true
}

type RegistrationBase struct {
	Firstname       string `json:"firstname" validate:"required,min=3"`
	Lastname        string `json:"lastname" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Mobile          string `json:"mobile" validate:"required,mobile"`
	Password        string `json:"password" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmpassword" validate:"omitempty,eqfield=Password"`
}

type VolunteerRegistration struct {
	RegistrationBase
}

type MemberRegistration struct {
	RegistrationBase
	State              string `json:"state" validate:"required"`
	City               string `json:"city" validate:"required"`
	Country            string `json:"country" validate:"required"`
	Zipcode            string `json:"zipcode" validate:"required"`
	Address            string `json:"address" validate:"required"`
	Address2           string `json:"address2"`
	MembershipType     string `json:"membershiptype" validate:"required"`
	PaymentInformation string `json:"paymentinformation" validate:"required"`
}

// RegisterRequest is validated against the member or volunteer rules
// depending on Type.
type RegisterRequest struct {
	Type               string `json:"type"`
	Firstname          string `json:"firstname"`
	Lastname           string `json:"lastname"`
	Email              string `json:"email"`
	Mobile             string `json:"mobile"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirmpassword"`
	State              string `json:"state"`
	City               string `json:"city"`
	Country            string `json:"country"`
	Zipcode            string `json:"zipcode"`
	Address            string `json:"address"`
	Address2           string `json:"address2"`
	MembershipType     string `json:"membershiptype"`
	PaymentInformation string `json:"paymentinformation"`
}

func (r RegisterRequest) Base() RegistrationBase {
	return RegistrationBase{
		Firstname:       r.Firstname,
		Lastname:        r.Lastname,
		Email:           r.Email,
		Mobile:          r.Mobile,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleSignInRequest struct {
	Token string `json:"token"`
}

type FacebookSignInRequest struct {
	AccessToken string `json:"accessToken"`
}

type VolunteerSignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	State           string `json:"state"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Zipcode         string `json:"zipcode"`
	Address         string `json:"address"`
	Address2        string `json:"address2"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateProfileRequest lists the only fields a profile edit may touch.
type UpdateProfileRequest struct {
	Firstname          *string `json:"firstname"`
	Lastname           *string `json:"lastname"`
	Email              *string `json:"email"`
	Mobile             *string `json:"mobile"`
	Password           *string `json:"password"`
	ConfirmPassword    *string `json:"confirmpassword"`
	State              *string `json:"state"`
	City               *string `json:"city"`
	Country            *string `json:"country"`
	Zipcode            *string `json:"zipcode"`
	Address            *string `json:"address"`
	Address2           *string `json:"address2"`
	ProfilePicture     *string `json:"profilePicture"`
	PaymentInformation *string `json:"paymentinformation"`
}

type IDsRequest struct {
	IDs []uint `json:"ids"`
}

type AdminAddMemberRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	PaymentMethod    string `json:"paymentMethod"`
	TransactionID    string `json:"transactionId"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
}

type AdminEditMemberRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Mobile           string `json:"mobile"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	PaymentMethod    string `json:"paymentMethod"`
	TransactionID    string `json:"transactionId"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
}

type AdminAddVolunteerRequest struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Mobile        string     `json:"mobile"`
	HoursPerMonth FlexString `json:"hoursPerMonth"`
}

type AdminEditVolunteerRequest struct {
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Mobile          string      `json:"mobile"`
	HoursPerMonth   *FlexString `json:"hoursPerMonth"`
	VolunteerStatus string      `json:"volunteerStatus"`
}

type MembershipPlanRequest struct {
	Title      string     `json:"title"`
	Duration   string     `json:"duration"`
	Amount     FlexString `json:"amount"`
	Benefits   string     `json:"benefits"`
	IsActive   FlexString `json:"isActive"`
	ValidFrom  string     `json:"validFrom"`
	ValidUntil string     `json:"validUntil"`
}

type SponsorshipPlanRequest struct {
	Title    string     `json:"title"`
	Amount   FlexString `json:"amount"`
	Benefits string     `json:"benefits"`
	IsActive FlexString `json:"isActive"`
}

// SponsorRequest arrives as multipart form data alongside the logo upload.
type SponsorRequest struct {
	CompanyName       string `json:"companyName" form:"companyName"`
	SponsorName       string `json:"sponsorName" form:"sponsorName"`
	Email             string `json:"email" form:"email"`
	Website           string `json:"website" form:"website"`
	SponsorshipPlanID string `json:"sponsorshipPlanId" form:"sponsorshipPlanId"`
	Status            string `json:"status" form:"status"`
	StartDate         string `json:"startDate" form:"startDate"`
	EndDate           string `json:"endDate" form:"endDate"`
}

type NewsRequest struct {
	Description string `json:"description"`
}

type EventRequest struct {
	Eventtitle       string `json:"Eventtitle" form:"Eventtitle"`
	Eventdate        string `json:"Eventdate" form:"Eventdate"`
	Eventtime        string `json:"Eventtime" form:"Eventtime"`
	Eventvenue       string `json:"Eventvenue" form:"Eventvenue"`
	EventDescription string `json:"EventDescription" form:"EventDescription"`
}

type GalleryRequest struct {
	Year        string `json:"year" form:"year"`
	Title       string `json:"title" form:"title"`
	MediaType   string `json:"mediaType" form:"mediaType"`
	Youtubelink string `json:"youtubelink" form:"youtubelink"`
}

type BoardMemberRequest struct {
	Year      string `json:"year" form:"year"`
	Firstname string `json:"firstname" form:"firstname"`
	Lastname  string `json:"lastname" form:"lastname"`
	Role      string `json:"role" form:"role"`
}

type HighlightRequest struct {
	EventName     string `json:"eventName" form:"eventName"`
	HighlightText string `json:"highlightText" form:"highlightText"`
}

type CreateOrderRequest struct {
	MembershipPlanID FlexString `json:"membershipPlanId"`
	UserID           FlexString `json:"userId"`
}

type CaptureOrderRequest struct {
	OrderID string `json:"orderId"`
}

type DonationRequest struct {
	Firstname          string     `json:"firstname"`
	Lastname           string     `json:"lastname"`
	Email              string     `json:"email"`
	Mobile             string     `json:"mobile"`
	PaymentInformation string     `json:"paymentinformation"`
	TotalAmount        FlexString `json:"totalAmount"`
}

// BulkRowError names the spreadsheet row (header is row 1) that failed.
type BulkRowError struct {
	Row   int    `json:"row"`
	Email string `json:"email"`
	Error string `json:"error"`
}

type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type BulkResult struct {
	Summary BulkSummary    `json:"summary"`
	Errors  []BulkRowError `json:"errors,omitempty"`
}

// Fail records a rejected row. Rows without an email are reported as "N/A".
func (r *BulkResult) Fail(row int, email, message string) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = "N/A"
	}
	r.Errors = append(r.Errors, BulkRowError{Row: row, Email: email, Error: message})
	r.Summary.Failed++
}
