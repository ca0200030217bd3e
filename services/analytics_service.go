package services

import (
	"context"
	"fmt"
	"time"

	"healthtracker/models"

	"gorm.io/gorm"
)

const (
	DateLayout = "2006-01-02"
	WindowDays = 7
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

type DailyTotals struct {
	CaloriesBurned   int `json:"calories_burned"`
	CaloriesConsumed int `json:"calories_consumed"`
	WorkoutMinutes   int `json:"workout_minutes"`
}

type WorkoutTypeTotal struct {
	WorkoutType  string `json:"workout_type"`
	TotalMinutes int    `json:"total_minutes"`
	Count        int    `json:"count"`
}

type DailyPoint struct {
	Date          string `json:"date"`
	TotalMinutes  int    `json:"total_minutes"`
	TotalCalories int    `json:"total_calories"`
}

type workoutSums struct {
	Burned  int
	Minutes int
}

type nutritionSums struct {
	Consumed int
}

// ProgressReport bundles both weekly aggregations for one window.
type ProgressReport struct {
	From      string             `json:"from"`
	To        string             `json:"to"`
	Breakdown []WorkoutTypeTotal `json:"breakdown"`
	Series    []DailyPoint       `json:"series"`
}

// Window returns the inclusive [asOf-7d, asOf] bounds as ISO date strings.
// Rows are filtered by comparing these strings, which is only correct for
// zero-padded YYYY-MM-DD values.
func Window(asOf time.Time) (from, to string) {
	return asOf.AddDate(0, 0, -WindowDays).Format(DateLayout), asOf.Format(DateLayout)
}

// DailyTotals sums the user's entries dated exactly date. No rows yields zeros.
func (s *AnalyticsService) DailyTotals(ctx context.Context, userID uint, date string) (DailyTotals, error) {
	var w workoutSums
	if err := s.db.WithContext(ctx).
		Model(&models.Workout{}).
		Select("COALESCE(SUM(COALESCE(calories_burned, 0)), 0) AS burned, COALESCE(SUM(minutes), 0) AS minutes").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&w).Error; err != nil {
		return DailyTotals{}, fmt.Errorf("sum workouts: %w", err)
	}

	var n nutritionSums
	if err := s.db.WithContext(ctx).
		Model(&models.NutritionLog{}).
		Select("COALESCE(SUM(calories), 0) AS consumed").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&n).Error; err != nil {
		return DailyTotals{}, fmt.Errorf("sum nutrition: %w", err)
	}

	return DailyTotals{
		CaloriesBurned:   w.Burned,
		CaloriesConsumed: n.Consumed,
		WorkoutMinutes:   w.Minutes,
	}, nil
}

// WeeklyWorkoutBreakdown groups the window's workouts by type, most minutes first.
func (s *AnalyticsService) WeeklyWorkoutBreakdown(ctx context.Context, userID uint, asOf time.Time) ([]WorkoutTypeTotal, error) {
	from, to := Window(asOf)
	out := []WorkoutTypeTotal{}
	if err := s.db.WithContext(ctx).
		Model(&models.Workout{}).
		Select("workout_type, COALESCE(SUM(minutes), 0) AS total_minutes, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("workout_type").
		Order("total_minutes DESC, workout_type ASC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("weekly workout breakdown: %w", err)
	}
	if out == nil {
		out = []WorkoutTypeTotal{}
	}
	return out, nil
}

// WeeklyDailySeries returns one point per date in the window that has workouts,
// in ascending date order.
func (s *AnalyticsService) WeeklyDailySeries(ctx context.Context, userID uint, asOf time.Time) ([]DailyPoint, error) {
	from, to := Window(asOf)
	out := []DailyPoint{}
	if err := s.db.WithContext(ctx).
		Model(&models.Workout{}).
		Select("date, COALESCE(SUM(minutes), 0) AS total_minutes, COALESCE(SUM(calories_burned), 0) AS total_calories").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("date").
		Order("date ASC").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("weekly daily series: %w", err)
	}
	if out == nil {
		out = []DailyPoint{}
	}
	return out, nil
}

func (s *AnalyticsService) Progress(ctx context.Context, userID uint, asOf time.Time) (*ProgressReport, error) {
	breakdown, err := s.WeeklyWorkoutBreakdown(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}
	series, err := s.WeeklyDailySeries(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}
	from, to := Window(asOf)
	return &ProgressReport{From: from, To: to, Breakdown: breakdown, Series: series}, nil
}
