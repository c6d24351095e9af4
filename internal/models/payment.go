package models

import "time"

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// Payment is a membership purchase. Order and transaction ids are unique
// gateway references.
type Payment struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	UserID              uint            `json:"userId" gorm:"not null;index"`
	MembershipPlanID    uint            `json:"membershipPlanId" gorm:"not null"`
	MembershipPlan      *MembershipPlan `json:"MembershipPlan,omitempty" gorm:"foreignKey:MembershipPlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Amount              float64         `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency            string          `json:"currency" gorm:"type:varchar(3);default:USD"`
	PaypalOrderID       *string         `json:"paypalOrderId" gorm:"type:varchar(255);uniqueIndex"`
	PaypalTransactionID *string         `json:"paypalTransactionId" gorm:"type:varchar(255);uniqueIndex"`
	PaymentStatus       string          `json:"paymentStatus" gorm:"type:varchar(16);default:PENDING;index"`
	PaymentMethod       string          `json:"paymentMethod" gorm:"default:paypal"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }

// CanTransition encodes the payment state machine. FAILED and REFUNDED are
// terminal; REFUNDED is only reachable from COMPLETED.
func CanTransition(from, to string) bool {
	switch from {
	case PaymentPending:
		return to == PaymentCompleted || to == PaymentFailed
	case PaymentCompleted:
		return to == PaymentRefunded
	default:
		return false
	}
}

type Donation struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Firstname          string    `json:"firstname" gorm:"not null"`
	Lastname           string    `json:"lastname" gorm:"not null"`
	Email              string    `json:"email" gorm:"not null"`
	Mobile             string    `json:"mobile" gorm:"not null"`
	PaymentInformation string    `json:"paymentinformation" gorm:"not null"`
	OrderID            string    `json:"orderId" gorm:"type:varchar(255);index"`
	TransactionID      string    `json:"transactionId"`
	TotalAmount        float64   `json:"totalAmount" gorm:"not null"`
	Status             string    `json:"status" gorm:"type:varchar(16);default:pending"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (Donation) TableName() string { return "donations" }

// All lists every entity for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&MembershipPlan{},
		&SponsorshipPlan{},
		&Account{},
		&Payment{},
		&OTP{},
		&Donation{},
		&Sponsor{},
		&Event{},
		&Gallery{},
		&BoardMember{},
		&HomepageHighlight{},
		&News{},
	}
}
