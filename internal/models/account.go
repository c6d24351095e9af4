package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	AccountMember    = "member"
	AccountVolunteer = "volunteer"
	AccountAdmin     = "admin"
)

const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

const (
	MembershipActive   = "active"
	MembershipInactive = "inactive"
	MembershipExpired  = "expired"
)

const (
	VolunteerActive   = "active"
	VolunteerInactive = "inactive"
)

// Account is a member, volunteer or administrator.
type Account struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Type                string          `json:"type" gorm:"type:varchar(16);not null;index"`
	Firstname           string          `json:"firstname"`
	Lastname            string          `json:"lastname"`
	Email               string          `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Mobile              *string         `json:"mobile" gorm:"type:varchar(32);uniqueIndex"`
	Password            string          `json:"-"`
	AuthProvider        string          `json:"authProvider" gorm:"type:varchar(16);default:local"`
	SocialID            *string         `json:"socialId" gorm:"type:varchar(255);uniqueIndex"`
	IsProfileComplete   bool            `json:"isProfileComplete" gorm:"default:false"`
	ProfilePicture      string          `json:"profilePicture"`
	State               string          `json:"state"`
	City                string          `json:"city"`
	Country             string          `json:"country"`
	Zipcode             string          `json:"zipcode"`
	Address             string          `json:"address"`
	Address2            string          `json:"address2"`
	MembershipPlanID    *uint           `json:"membershipPlanId" gorm:"index"`
	MembershipPlan      *MembershipPlan `json:"membershipPlan,omitempty" gorm:"foreignKey:MembershipPlanID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	MembershipStatus    string          `json:"membershipStatus" gorm:"type:varchar(16);default:inactive"`
	MembershipStartDate *time.Time      `json:"membershipStartDate"`
	MembershipEndDate   *time.Time      `json:"membershipEndDate"`
	PaymentInformation  string          `json:"paymentinformation"`
	Confirm             bool            `json:"confirm" gorm:"default:false"`
	IsAdmin             bool            `json:"IsAdmin" gorm:"default:false"`
	VolunteerHours      string          `json:"volunteerHours"`
	VolunteerStatus     string          `json:"volunteerStatus" gorm:"type:varchar(16)"`
	Payments            []Payment       `json:"payments,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (Account) TableName() string { return "auth" }

// IsAdministrator is the one admin predicate used by every authorization check.
func (a *Account) IsAdministrator() bool {
	return a.IsAdmin || a.Type == AccountAdmin
}

// Role is what sign-in reports to the client.
func (a *Account) Role() string {
	if a.IsAdministrator() {
		return AccountAdmin
	}
	return a.Type
}

// StatusAt derives the membership status from the stored dates.
func (a *Account) StatusAt(now time.Time) string {
	return MembershipStatusAt(now, a.MembershipStartDate, a.MembershipEndDate)
}

// ProfileComplete reports whether every required profile field is filled in.
func (a *Account) ProfileComplete() bool {
	mobile := ""
	if a.Mobile != nil {
		mobile = *a.Mobile
	}
	for _, v := range []string{a.Firstname, a.Lastname, a.Email, mobile, a.Address, a.City, a.State, a.Country, a.Zipcode} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.MembershipStatus = a.StatusAt(time.Now())
	if a.Mobile != nil && strings.TrimSpace(*a.Mobile) == "" {
		a.Mobile = nil
	}
	return nil
}

// AfterFind never trusts the stored status column.
func (a *Account) AfterFind(tx *gorm.DB) error {
	a.MembershipStatus = a.StatusAt(time.Now())
	return nil
}

// MembershipStatusAt returns inactive before start (or without dates),
// expired after end, and active otherwise, both boundaries inclusive.
func MembershipStatusAt(now time.Time, start, end *time.Time) string {
	if start == nil || end == nil {
		return MembershipInactive
	}
	if now.Before(*start) {
		return MembershipInactive
	}
	if now.After(*end) {
		return MembershipExpired
	}
	return MembershipActive
}

// OTP is a one-time code keyed by email. It is overwritten on every request
// and deleted when consumed.
type OTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Code      string    `json:"otp" gorm:"column:otp;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OTP) TableName() string { return "otp" }
