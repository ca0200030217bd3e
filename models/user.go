package models

import "time"

// User is an account. Username and email are unique; Password holds the bcrypt hash.
// Profile attributes are nullable and only change through a profile update.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Age       *int      `json:"age"`
	Height    *float64  `json:"height"` // cm
	Weight    *float64  `json:"weight"` // kg
	Gender    *string   `gorm:"size:32" json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}
