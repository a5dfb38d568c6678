package adventures

import "time"

const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

type Adventure struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"type:varchar(255)" json:"location"`
	PriceCents  int64      `gorm:"not null" json:"price_cents"`
	Currency    string     `gorm:"type:char(3);not null;default:USD" json:"currency"`
	Capacity    int        `gorm:"not null;default:0" json:"capacity"`
	StartsAt    *time.Time `gorm:"type:datetime(3)" json:"starts_at"`
	Status      string     `gorm:"type:varchar(16);not null;default:draft" json:"status"`

	Images []Image `gorm:"foreignKey:AdventureID" json:"images,omitempty"`
	AddOns []AddOn `gorm:"foreignKey:AdventureID" json:"add_ons,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Adventure) TableName() string { return "adventures" }

type Image struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	AdventureID string    `gorm:"type:char(36);not null;index" json:"adventure_id"`
	StorageKey  string    `gorm:"type:varchar(512);not null" json:"-"`
	URL         string    `gorm:"type:varchar(512);not null" json:"url"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Image) TableName() string { return "adventure_images" }

// AddOn is a priced extra bookable with a specific adventure.
type AddOn struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	AdventureID string    `gorm:"type:char(36);not null;index" json:"adventure_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (AddOn) TableName() string { return "adventure_add_ons" }
