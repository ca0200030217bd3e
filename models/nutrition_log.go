package models

import "time"

// NutritionLog is one food entry. Macros are grams.
type NutritionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	FoodName  string    `gorm:"not null" json:"food_name"`
	Calories  int       `gorm:"not null" json:"calories"`
	Protein   *float64  `json:"protein"`
	Carbs     *float64  `json:"carbs"`
	Fat       *float64  `json:"fat"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
