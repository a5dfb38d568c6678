package coupons

import "time"

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"

	ScopeAdventure    = "adventure"
	ScopeConsultation = "consultation"

	StatusActive   = "active"
	StatusRedeemed = "redeemed"
	StatusRevoked  = "revoked"
	StatusExpired  = "expired"
)

type Coupon struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	Code        string     `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	Type        string     `gorm:"type:varchar(16);not null" json:"type"` // percentage|fixed
	PercentOff  int        `gorm:"not null;default:0" json:"percent_off"`
	AmountCents int64      `gorm:"not null;default:0" json:"amount_cents"`
	Scope       string     `gorm:"type:varchar(16);not null" json:"scope"` // adventure|consultation
	CustomerID  *string    `gorm:"type:char(36);index" json:"customer_id"`
	Status      string     `gorm:"type:varchar(16);not null;default:active" json:"status"`
	ExpiresAt   *time.Time `gorm:"type:datetime(3)" json:"expires_at"`
	CreatedAt   time.Time  `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Coupon) TableName() string { return "coupons" }

// DiscountCents computes the discount against a subtotal. Percentage coupons
// take their cut of the subtotal; fixed coupons are capped at the subtotal so
// a total never goes negative.
func (c Coupon) DiscountCents(subtotalCents int64) int64 {
	switch c.Type {
	case TypePercentage:
		return subtotalCents * int64(c.PercentOff) / 100
	case TypeFixed:
		if c.AmountCents > subtotalCents {
			return subtotalCents
		}
		return c.AmountCents
	default:
		return 0
	}
}

func (c Coupon) Usable(now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
