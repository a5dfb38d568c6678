package consultations

import "time"

const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Package is a bookable consultation bundle (a number of advisory sessions
// at a fixed price).
type Package struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Sessions    int       `gorm:"not null;default:1" json:"sessions"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Currency    string    `gorm:"type:char(3);not null;default:USD" json:"currency"`
	Status      string    `gorm:"type:varchar(16);not null;default:draft" json:"status"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Package) TableName() string { return "consultation_packages" }
