package customers

import (
	"time"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
)

type Customer struct {
	ID           string  `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName    string  `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string  `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone        string  `gorm:"type:varchar(32)" json:"phone"`
	Gender       string  `gorm:"type:varchar(16)" json:"gender"` // male|female
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Points       int     `gorm:"not null;default:0" json:"points"`
	LevelID      *string `gorm:"type:char(36)" json:"level_id"`
	Suspended    bool    `gorm:"not null;default:false" json:"suspended"`

	Level *levels.Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// PointsEvent records every loyalty point adjustment with who did it and why.
type PointsEvent struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	CustomerID string    `gorm:"type:char(36);not null;index" json:"customer_id"`
	ActorID    string    `gorm:"type:char(36);not null" json:"actor_id"`
	Delta      int       `gorm:"not null" json:"delta"`
	Balance    int       `gorm:"not null" json:"balance"`
	Reason     string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (PointsEvent) TableName() string { return "customer_points_events" }
