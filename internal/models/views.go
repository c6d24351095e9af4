package models

import "time"

type MembershipSummary struct {
	MembershipPlanID    *uint      `json:"membershipPlanId"`
	MembershipStatus    string     `json:"membershipStatus"`
	MembershipStartDate *time.Time `json:"membershipStartDate"`
	MembershipEndDate   *time.Time `json:"membershipEndDate"`
	Type                *string    `json:"type"`
}

// MemberSummary is the admin member list row: membership fields grouped
// under one key and payments listed as transactions.
type MemberSummary struct {
	ID                 uint              `json:"id"`
	Type               string            `json:"type"`
	Firstname          string            `json:"firstname"`
	Lastname           string            `json:"lastname"`
	Email              string            `json:"email"`
	Mobile             *string           `json:"mobile"`
	AuthProvider       string            `json:"authProvider"`
	IsProfileComplete  bool              `json:"isProfileComplete"`
	ProfilePicture     string            `json:"profilePicture"`
	State              string            `json:"state"`
	City               string            `json:"city"`
	Country            string            `json:"country"`
	Zipcode            string            `json:"zipcode"`
	Address            string            `json:"address"`
	Address2           string            `json:"address2"`
	PaymentInformation string            `json:"paymentinformation"`
	Confirm            bool              `json:"confirm"`
	IsAdmin            bool              `json:"IsAdmin"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	Membership         MembershipSummary `json:"membership"`
	Transactions       []Payment         `json:"transactions"`
}

func NewMemberSummary(a Account) MemberSummary {
	var planType *string
	if a.MembershipPlan != nil {
		d := a.MembershipPlan.Duration
		planType = &d
	}
	transactions := a.Payments
	if transactions == nil {
		transactions = []Payment{}
	}
	return MemberSummary{
		ID:                 a.ID,
		Type:               a.Type,
		Firstname:          a.Firstname,
		Lastname:           a.Lastname,
		Email:              a.Email,
		Mobile:             a.Mobile,
		AuthProvider:       a.AuthProvider,
		IsProfileComplete:  a.IsProfileComplete,
		ProfilePicture:     a.ProfilePicture,
		State:              a.State,
		City:               a.City,
		Country:            a.Country,
		Zipcode:            a.Zipcode,
		Address:            a.Address,
		Address2:           a.Address2,
		PaymentInformation: a.PaymentInformation,
		Confirm:            a.Confirm,
		IsAdmin:            a.IsAdmin,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		Membership: MembershipSummary{
			MembershipPlanID:    a.MembershipPlanID,
			MembershipStatus:    a.MembershipStatus,
			MembershipStartDate: a.MembershipStartDate,
			MembershipEndDate:   a.MembershipEndDate,
			Type:                planType,
		},
		Transactions: transactions,
	}
}

type VolunteerSummary struct {
	ID              uint      `json:"id"`
	Firstname       string    `json:"firstname"`
	Lastname        string    `json:"lastname"`
	Email           string    `json:"email"`
	Mobile          *string   `json:"mobile"`
	VolunteerHours  string    `json:"volunteerHours"`
	VolunteerStatus string    `json:"volunteerStatus"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewVolunteerSummary(a Account) VolunteerSummary {
	return VolunteerSummary{
		ID:              a.ID,
		Firstname:       a.Firstname,
		Lastname:        a.Lastname,
		Email:           a.Email,
		Mobile:          a.Mobile,
		VolunteerHours:  a.VolunteerHours,
		VolunteerStatus: a.VolunteerStatus,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
