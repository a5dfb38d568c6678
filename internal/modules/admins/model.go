package admins

import "time"

const (
	StatusInvited = "invited"
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

type Admin struct {
	ID           string     `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Status       string     `gorm:"type:varchar(16);not null;default:invited" json:"status"`
	InvitedBy    *string    `gorm:"type:char(36)" json:"invited_by"`
	RevokedAt    *time.Time `gorm:"type:datetime(3)" json:"revoked_at"`
	CreatedAt    time.Time  `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Admin) TableName() string { return "admins" }
