package models

import "time"

// Workout is one logged exercise session. Date is an ISO YYYY-MM-DD string.
type Workout struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	WorkoutType    string    `gorm:"not null" json:"workout_type"`
	Minutes        int       `gorm:"not null" json:"minutes"`
	CaloriesBurned *int      `json:"calories_burned"`
	Date           string    `gorm:"size:10;index;not null" json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}
