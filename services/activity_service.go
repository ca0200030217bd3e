package services

import (
	"context"
	"fmt"
	"strings"

	"healthtracker/metrics"
	"healthtracker/models"

	"gorm.io/gorm"
)

type WorkoutInput struct {
	WorkoutType    string
	Minutes        int
	CaloriesBurned *int
	Date           string
}

type NutritionInput struct {
	FoodName string
	Calories int
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Date     string
}

type ActivityService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

// NewActivityService builds the entry store. hub may be nil.
func NewActivityService(db *gorm.DB, hub *RealtimeHub) *ActivityService {
	return &ActivityService{db: db, hub: hub}
}

// AddWorkout stores a workout. Missing calories are stored as 0; minutes are
// stored exactly as given.
func (s *ActivityService) AddWorkout(ctx context.Context, userID uint, in WorkoutInput) (*models.Workout, error) {
	calories := 0
	if in.CaloriesBurned != nil {
		calories = *in.CaloriesBurned
	}
	w := &models.Workout{
		UserID:         userID,
		WorkoutType:    strings.TrimSpace(in.WorkoutType),
		Minutes:        in.Minutes,
		CaloriesBurned: &calories,
		Date:           in.Date,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(w).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}
	metrics.EntriesCreated.WithLabelValues("workout").Inc()
	s.hub.Broadcast(userID, ActivityEvent{Kind: "workout.created", Date: w.Date, Entry: w})
	return w, nil
}

// AddNutrition stores a food entry. Missing macros are stored as 0.
func (s *ActivityService) AddNutrition(ctx context.Context, userID uint, in NutritionInput) (*models.NutritionLog, error) {
	n := &models.NutritionLog{
		UserID:   userID,
		FoodName: strings.TrimSpace(in.FoodName),
		Calories: in.Calories,
		Protein:  zeroIfNil(in.Protein),
		Carbs:    zeroIfNil(in.Carbs),
		Fat:      zeroIfNil(in.Fat),
		Date:     in.Date,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(n).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add nutrition: %w", err)
	}
	metrics.EntriesCreated.WithLabelValues("nutrition").Inc()
	s.hub.Broadcast(userID, ActivityEvent{Kind: "nutrition.created", Date: n.Date, Entry: n})
	return n, nil
}

// ListForDate returns the user's entries with exactly this date, oldest first.
func (s *ActivityService) ListForDate(ctx context.Context, userID uint, date string) ([]models.Workout, []models.NutritionLog, error) {
	workouts := []models.Workout{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").
		Find(&workouts).Error; err != nil {
		return nil, nil, fmt.Errorf("list workouts: %w", err)
	}

	nutrition := []models.NutritionLog{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").
		Find(&nutrition).Error; err != nil {
		return nil, nil, fmt.Errorf("list nutrition: %w", err)
	}
	return workouts, nutrition, nil
}

func zeroIfNil(v *float64) *float64 {
	out := 0.0
	if v != nil {
		out = *v
	}
	return &out
}
