package models

import "time"

// Reminder is reserved: the table is migrated but nothing reads or fires reminders yet.
type Reminder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ReminderType  string    `gorm:"size:32;not null" json:"reminder_type"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	ScheduledTime *string   `gorm:"size:8" json:"scheduled_time"` // HH:MM[:SS]
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// All lists every model that belongs in the schema, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Workout{},
		&NutritionLog{},
		&Reminder{},
	}
}
