package controllers

import (
	"testing"

	"healthtracker/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Message
}

func TestWorkoutFormInput(t *testing.T) {
	in, err := workoutForm{WorkoutType: "running", Minutes: " 30 ", Date: "2024-01-15"}.input()
	require.NoError(t, err)
	assert.Equal(t, 30, in.Minutes)
	assert.Nil(t, in.CaloriesBurned)

	in, err = workoutForm{WorkoutType: "rowing", Minutes: "-5", Calories: "120", Date: "2024-01-15"}.input()
	require.NoError(t, err)
	assert.Equal(t, -5, in.Minutes)
	require.NotNil(t, in.CaloriesBurned)
	assert.Equal(t, 120, *in.CaloriesBurned)

	tests := []struct {
		name string
		form workoutForm
		want string
	}{
		{"missing type", workoutForm{Minutes: "30", Date: "2024-01-15"}, "Workout type is required"},
		{"blank minutes", workoutForm{WorkoutType: "run", Date: "2024-01-15"}, "Minutes is required"},
		{"fractional minutes", workoutForm{WorkoutType: "run", Minutes: "1.5", Date: "2024-01-15"}, "Minutes must be a whole number"},
		{"bad calories", workoutForm{WorkoutType: "run", Minutes: "30", Calories: "lots", Date: "2024-01-15"}, "Calories must be a whole number"},
		{"missing date", workoutForm{WorkoutType: "run", Minutes: "30"}, "Date is required"},
		{"unpadded date", workoutForm{WorkoutType: "run", Minutes: "30", Date: "2024-1-5"}, "Date must be in YYYY-MM-DD format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.input()
			assert.Equal(t, tt.want, validationMessage(t, err))
		})
	}
}

func TestNutritionFormInput(t *testing.T) {
	in, err := nutritionForm{FoodName: "oats", Calories: "150", Carbs: "27.5", Date: "2024-01-15"}.input()
	require.NoError(t, err)
	assert.Equal(t, 150, in.Calories)
	assert.Nil(t, in.Protein)
	require.NotNil(t, in.Carbs)
	assert.Equal(t, 27.5, *in.Carbs)

	_, err = nutritionForm{FoodName: "oats", Calories: "150", Fat: "x", Date: "2024-01-15"}.input()
	assert.Equal(t, "Fat must be a number", validationMessage(t, err))

	_, err = nutritionForm{Calories: "150", Date: "2024-01-15"}.input()
	assert.Equal(t, "Food name is required", validationMessage(t, err))
}

func TestProfileFormInputBlankClears(t *testing.T) {
	in, err := profileForm{Age: "", Height: "180.5", Gender: "  "}.input()
	require.NoError(t, err)
	assert.Nil(t, in.Age)
	assert.Nil(t, in.Weight)
	assert.Nil(t, in.Gender)
	require.NotNil(t, in.Height)
	assert.Equal(t, 180.5, *in.Height)
}

func TestRegisterFormInput(t *testing.T) {
	in, err := registerForm{Username: "alice", Age: "31", Gender: "f"}.input()
	require.NoError(t, err)
	require.NotNil(t, in.Age)
	assert.Equal(t, 31, *in.Age)
	require.NotNil(t, in.Gender)
	assert.Equal(t, "f", *in.Gender)

	_, err = registerForm{Age: "thirty"}.input()
	assert.Equal(t, "Age must be a whole number", validationMessage(t, err))
}
