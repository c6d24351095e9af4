package models

import "time"

type MembershipPlan struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"not null"`
	Duration   string     `json:"duration" gorm:"type:varchar(16);not null;index"`
	Amount     float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	Benefits   string     `json:"benefits" gorm:"type:text;not null"`
	IsActive   bool       `json:"isActive" gorm:"default:true;index"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (MembershipPlan) TableName() string { return "membership_plans" }

type SponsorshipPlan struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);uniqueIndex;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Benefits  string    `json:"benefits" gorm:"type:text;not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SponsorshipPlan) TableName() string { return "sponsorship_plans" }

const (
	SponsorActive   = "active"
	SponsorInactive = "inactive"
)

type Sponsor struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	CompanyName       string           `json:"companyName" gorm:"not null;index"`
	SponsorName       string           `json:"sponsorName" gorm:"not null"`
	Email             string           `json:"email" gorm:"not null;index"`
	Website           string           `json:"website"`
	SponsorshipPlanID uint             `json:"sponsorshipPlanId" gorm:"not null"`
	SponsorshipPlan   *SponsorshipPlan `json:"sponsorshipPlan,omitempty" gorm:"foreignKey:SponsorshipPlanID"`
	Status            string           `json:"status" gorm:"type:varchar(16);not null;default:active"`
	StartDate         time.Time        `json:"startDate" gorm:"not null"`
	EndDate           time.Time        `json:"endDate" gorm:"not null"`
	ImageURL          string           `json:"imageUrl"`
	ImagePublicID     string           `json:"imagePublicId"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (Sponsor) TableName() string { return "sponsor" }
