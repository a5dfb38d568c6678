package payments

import (
	"time"

	"gorm.io/datatypes"
)

type Payment struct {
	ID             string  `gorm:"type:char(36);primaryKey" json:"id"`
	BookingID      string  `gorm:"type:char(36);not null;index" json:"booking_id"`
	Provider       string  `gorm:"type:varchar(64);not null" json:"provider"`
	ProviderRef    *string `gorm:"type:varchar(128);index" json:"provider_ref"`
	Status         string  `gorm:"type:varchar(16);not null" json:"status"`
	AmountCents    int64   `gorm:"not null" json:"amount_cents"`
	Currency       string  `gorm:"type:char(3);not null" json:"currency"`
	IdempotencyKey string  `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	ErrorMessage   *string `gorm:"type:varchar(255)" json:"error_message"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// ProviderEvent persists every webhook delivery; unique(provider,event_id)
// is the dedupe guard for redeliveries.
type ProviderEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Provider    string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_provider_events_provider_event,priority:1"`
	EventID     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_provider_events_provider_event,priority:2"`
	EventType   string         `gorm:"type:varchar(64);not null"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`

	ReceivedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ProcessedAt  *time.Time `gorm:"type:datetime(3)"`
	ProcessError *string    `gorm:"type:varchar(255)"`
}

func (ProviderEvent) TableName() string { return "provider_events" }
