package controllers

import (
	"net/http"
	"time"

	"healthtracker/models"
	"healthtracker/services"

	"github.com/gin-gonic/gin"
)

// ActivityController serves the dashboard and the entry forms.
type ActivityController struct {
	Activity  *services.ActivityService
	Analytics *services.AnalyticsService
	Now       func() time.Time
}

func NewActivityController(activity *services.ActivityService, analytics *services.AnalyticsService) *ActivityController {
	return &ActivityController{Activity: activity, Analytics: analytics, Now: time.Now}
}

func (h *ActivityController) today() string {
	return h.Now().Format(services.DateLayout)
}

type dashboardData struct {
	Date      string                `json:"date"`
	Totals    services.DailyTotals  `json:"totals"`
	Workouts  []models.Workout      `json:"workouts"`
	Nutrition []models.NutritionLog `json:"nutrition"`
}

func (h *ActivityController) load(c *gin.Context, userID uint) (*dashboardData, error) {
	ctx := c.Request.Context()
	date := h.today()
	totals, err := h.Analytics.DailyTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	workouts, nutrition, err := h.Activity.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &dashboardData{Date: date, Totals: totals, Workouts: workouts, Nutrition: nutrition}, nil
}

func (h *ActivityController) Dashboard(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	d, err := h.load(c, userID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Dashboard",
		"Today":     d.Date,
		"Totals":    d.Totals,
		"Workouts":  d.Workouts,
		"Nutrition": d.Nutrition,
	})
}

func (h *ActivityController) DashboardJSON(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	d, err := h.load(c, userID)
	if err != nil {
		serverErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ActivityController) AddWorkoutPage(c *gin.Context) {
	render(c, http.StatusOK, "add_workout.html", gin.H{"Title": "Add workout", "Form": workoutForm{Date: h.today()}})
}

func (h *ActivityController) AddWorkout(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	var form workoutForm
	_ = c.ShouldBind(&form)
	page := gin.H{"Title": "Add workout", "Form": form}

	in, err := form.input()
	if err != nil {
		renderFailure(c, "add_workout.html", page, err)
		return
	}
	if _, err := h.Activity.AddWorkout(c.Request.Context(), userID, in); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *ActivityController) AddNutritionPage(c *gin.Context) {
	render(c, http.StatusOK, "add_nutrition.html", gin.H{"Title": "Add food", "Form": nutritionForm{Date: h.today()}})
}

func (h *ActivityController) AddNutrition(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	var form nutritionForm
	_ = c.ShouldBind(&form)
	page := gin.H{"Title": "Add food", "Form": form}

	in, err := form.input()
	if err != nil {
		renderFailure(c, "add_nutrition.html", page, err)
		return
	}
	if _, err := h.Activity.AddNutrition(c.Request.Context(), userID, in); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
