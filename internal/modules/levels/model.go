package levels

import "time"

// Level is a loyalty tier. Customers are assigned the highest tier whose
// MinPoints they meet.
type Level struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	MinPoints int       `gorm:"not null" json:"min_points"`
	Perks     string    `gorm:"type:text" json:"perks"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Level) TableName() string { return "levels" }
