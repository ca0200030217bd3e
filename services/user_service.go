package services

import (
	"context"
	"errors"
	"fmt"

	"healthtracker/models"
	"healthtracker/utils"

	"gorm.io/gorm"
)

// ProfileInput is the full profile form. Every field is written on update;
// nil clears the column.
type ProfileInput struct {
	Age    *int
	Height *float64
	Weight *float64
	Gender *string
}

type Profile struct {
	models.User
	BMI         *float64 `json:"bmi,omitempty"`
	BMICategory string   `json:"bmi_category,omitempty"`
}

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) FindByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return &user, nil
}

// GetProfile returns the user with BMI derived from height (cm) and weight (kg)
// when both are present and plausible.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &Profile{User: *user}
	if user.Height != nil && user.Weight != nil {
		if bmi, err := utils.ComputeBMI(*user.Height, *user.Weight); err == nil {
			p.BMI = &bmi.Value
			p.BMICategory = bmi.Category
		}
	}
	return p, nil
}

// UpdateProfile overwrites age, height, weight and gender unconditionally.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Select("age", "height", "weight", "gender").
			Updates(map[string]any{
				"age":    in.Age,
				"height": in.Height,
				"weight": in.Weight,
				"gender": in.Gender,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
