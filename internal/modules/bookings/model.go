package bookings

import (
	"time"

	"gorm.io/datatypes"
)

const (
	KindAdventure    = "adventure"
	KindConsultation = "consultation"

	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusPaid      = "paid"

	PaymentFull    = "full"
	PaymentPartial = "partial"
)

type Booking struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	CustomerID string `gorm:"type:char(36);not null;index" json:"customer_id"`
	Kind       string `gorm:"type:varchar(16);not null" json:"kind"` // adventure|consultation
	RefID      string `gorm:"type:char(36);not null;index" json:"ref_id"`
	RefTitle   string `gorm:"type:varchar(255);not null" json:"ref_title"`
	Status     string `gorm:"type:varchar(16);not null;default:pending" json:"status"`

	PaymentType   string `gorm:"type:varchar(16);not null;default:full" json:"payment_type"` // full|partial
	SubtotalCents int64  `gorm:"not null" json:"subtotal_cents"`
	DiscountCents int64  `gorm:"not null;default:0" json:"discount_cents"`
	TotalCents    int64  `gorm:"not null" json:"total_cents"`
	PayNowCents   int64  `gorm:"not null" json:"pay_now_cents"`
	PaidCents     int64  `gorm:"not null;default:0" json:"paid_cents"`
	Currency      string `gorm:"type:char(3);not null" json:"currency"`

	CouponID     *string        `gorm:"type:char(36)" json:"coupon_id"`
	AddOnsJSON   datatypes.JSON `gorm:"type:json" json:"add_ons"`

	PaidAt    *time.Time `gorm:"type:datetime(3)" json:"paid_at"`
	CreatedAt time.Time  `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// BookingEvent is the audit trail row written on every status transition.
type BookingEvent struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	BookingID  string    `gorm:"type:char(36);not null;index" json:"booking_id"`
	ActorID    string    `gorm:"type:char(36);not null" json:"actor_id"`
	Action     string    `gorm:"type:varchar(32);not null" json:"action"`
	FromStatus string    `gorm:"type:varchar(16);not null" json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(16);not null" json:"to_status"`
	Note       *string   `gorm:"type:varchar(255)" json:"note"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (BookingEvent) TableName() string { return "booking_events" }

type Invoice struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	BookingID   string    `gorm:"type:char(36);not null;uniqueIndex" json:"booking_id"`
	Number      string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"number"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Currency    string    `gorm:"type:char(3);not null" json:"currency"`
	IssuedAt    time.Time `gorm:"type:datetime(3);not null" json:"issued_at"`
}

func (Invoice) TableName() string { return "invoices" }
