package controllers

import (
	"net/http"
	"time"

	"healthtracker/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
	Now func() time.Time
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Now: time.Now}
}

func (h *AnalyticsController) Progress(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	report, err := h.Svc.Progress(c.Request.Context(), userID, h.Now())
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "progress.html", gin.H{"Title": "Progress", "Report": report})
}

func (h *AnalyticsController) ProgressJSON(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	report, err := h.Svc.Progress(c.Request.Context(), userID, h.Now())
	if err != nil {
		serverErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// WorkoutData feeds the progress chart: parallel arrays, largest total first.
func (h *AnalyticsController) WorkoutData(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	breakdown, err := h.Svc.WeeklyWorkoutBreakdown(c.Request.Context(), userID, h.Now())
	if err != nil {
		serverErrorJSON(c, err)
		return
	}
	types := make([]string, 0, len(breakdown))
	minutes := make([]int, 0, len(breakdown))
	for _, b := range breakdown {
		types = append(types, b.WorkoutType)
		minutes = append(minutes, b.TotalMinutes)
	}
	c.JSON(http.StatusOK, gin.H{"types": types, "minutes": minutes})
}
