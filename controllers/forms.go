package controllers

import (
	"strconv"
	"strings"
	"time"

	"healthtracker/services"
)

// Form structs keep the raw strings so a rejected form can be re-rendered as typed.

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type registerForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	Age             string `form:"age"`
	Gender          string `form:"gender"`
}

func (f registerForm) input() (services.RegisterInput, error) {
	age, err := optionalInt("age", "Age", f.Age)
	if err != nil {
		return services.RegisterInput{}, err
	}
	return services.RegisterInput{
		Username:        f.Username,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		Age:             age,
		Gender:          optionalString(f.Gender),
	}, nil
}

type workoutForm struct {
	WorkoutType string `form:"workout_type"`
	Minutes     string `form:"minutes"`
	Calories    string `form:"calories"`
	Date        string `form:"date"`
}

func (f workoutForm) input() (services.WorkoutInput, error) {
	if strings.TrimSpace(f.WorkoutType) == "" {
		return services.WorkoutInput{}, &services.ValidationError{Field: "workout_type", Message: "Workout type is required"}
	}
	minutes, err := requiredInt("minutes", "Minutes", f.Minutes)
	if err != nil {
		return services.WorkoutInput{}, err
	}
	calories, err := optionalInt("calories", "Calories", f.Calories)
	if err != nil {
		return services.WorkoutInput{}, err
	}
	date, err := isoDate(f.Date)
	if err != nil {
		return services.WorkoutInput{}, err
	}
	return services.WorkoutInput{
		WorkoutType:    f.WorkoutType,
		Minutes:        minutes,
		CaloriesBurned: calories,
		Date:           date,
	}, nil
}

type nutritionForm struct {
	FoodName string `form:"food_name"`
	Calories string `form:"calories"`
	Protein  string `form:"protein"`
	Carbs    string `form:"carbs"`
	Fat      string `form:"fat"`
	Date     string `form:"date"`
}

func (f nutritionForm) input() (services.NutritionInput, error) {
	var in services.NutritionInput
	if strings.TrimSpace(f.FoodName) == "" {
		return in, &services.ValidationError{Field: "food_name", Message: "Food name is required"}
	}
	calories, err := requiredInt("calories", "Calories", f.Calories)
	if err != nil {
		return in, err
	}
	in = services.NutritionInput{FoodName: f.FoodName, Calories: calories}
	if in.Protein, err = optionalFloat("protein", "Protein", f.Protein); err != nil {
		return in, err
	}
	if in.Carbs, err = optionalFloat("carbs", "Carbs", f.Carbs); err != nil {
		return in, err
	}
	if in.Fat, err = optionalFloat("fat", "Fat", f.Fat); err != nil {
		return in, err
	}
	if in.Date, err = isoDate(f.Date); err != nil {
		return in, err
	}
	return in, nil
}

type profileForm struct {
	Age    string `form:"age"`
	Height string `form:"height"`
	Weight string `form:"weight"`
	Gender string `form:"gender"`
}

func (f profileForm) input() (services.ProfileInput, error) {
	var (
		in  services.ProfileInput
		err error
	)
	if in.Age, err = optionalInt("age", "Age", f.Age); err != nil {
		return in, err
	}
	if in.Height, err = optionalFloat("height", "Height", f.Height); err != nil {
		return in, err
	}
	if in.Weight, err = optionalFloat("weight", "Weight", f.Weight); err != nil {
		return in, err
	}
	in.Gender = optionalString(f.Gender)
	return in, nil
}

func requiredInt(field, label, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &services.ValidationError{Field: field, Message: label + " is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Field: field, Message: label + " must be a whole number"}
	}
	return n, nil
}

func optionalInt(field, label, raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := requiredInt(field, label, raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloat(field, label, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &services.ValidationError{Field: field, Message: label + " must be a number"}
	}
	return &v, nil
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// isoDate accepts only zero-padded YYYY-MM-DD, the format window filtering relies on.
func isoDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &services.ValidationError{Field: "date", Message: "Date is required"}
	}
	if _, err := time.Parse(services.DateLayout, raw); err != nil {
		return "", &services.ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"}
	}
	return raw, nil
}
