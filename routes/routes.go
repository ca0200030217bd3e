package routes

import (
	"fmt"
	"time"

	"healthtracker/controllers"
	"healthtracker/middlewares"
	"healthtracker/services"
	"healthtracker/utils"
	"healthtracker/views"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps is everything the router needs. Hub, Mailer and Now are optional.
type Deps struct {
	DB       *gorm.DB
	Sessions services.SessionStore
	Cookie   middlewares.SessionCookie
	TTL      time.Duration
	Hub      *services.RealtimeHub
	Mailer   utils.Mailer
	Now      func() time.Time
}

func SetupRouter(d Deps) (*gin.Engine, error) {
	if d.DB == nil || d.Sessions == nil {
		return nil, fmt.Errorf("router needs a database and a session store")
	}
	if d.Hub == nil {
		d.Hub = services.NewRealtimeHub()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	authSvc := services.NewAuthService(d.DB, d.Sessions, d.Mailer, d.TTL)
	activitySvc := services.NewActivityService(d.DB, d.Hub)
	analyticsSvc := services.NewAnalyticsService(d.DB)
	userSvc := services.NewUserService(d.DB)

	authCtl := controllers.NewAuthController(authSvc, d.Cookie)
	activityCtl := controllers.NewActivityController(activitySvc, analyticsSvc)
	activityCtl.Now = d.Now
	analyticsCtl := controllers.NewAnalyticsController(analyticsSvc)
	analyticsCtl.Now = d.Now
	userCtl := controllers.NewUserController(userSvc)
	realtimeCtl := controllers.NewRealtimeController(d.Hub)
	healthCtl := controllers.NewHealthController(d.DB)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(), middlewares.Metrics())
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", healthCtl.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Everything below knows about the session; only the groups require it.
	web := r.Group("/")
	web.Use(middlewares.LoadSession(authSvc, d.Cookie))
	{
		web.GET("/", authCtl.Index)
		web.GET("/register", authCtl.RegisterPage)
		web.POST("/register", authCtl.Register)
		web.GET("/login", authCtl.LoginPage)
		web.POST("/login", authCtl.Login)
		web.GET("/logout", authCtl.Logout)
	}

	pages := web.Group("/")
	pages.Use(middlewares.RequireSession())
	{
		pages.GET("/dashboard", activityCtl.Dashboard)
		pages.GET("/add-workout", activityCtl.AddWorkoutPage)
		pages.POST("/add-workout", activityCtl.AddWorkout)
		pages.GET("/add-nutrition", activityCtl.AddNutritionPage)
		pages.POST("/add-nutrition", activityCtl.AddNutrition)
		pages.GET("/progress", analyticsCtl.Progress)
		pages.GET("/profile", userCtl.Profile)
		pages.POST("/update-profile", userCtl.UpdateProfile)
		pages.GET("/ws/activity", realtimeCtl.ActivityWS)
	}

	api := web.Group("/api")
	api.Use(middlewares.RequireSessionJSON())
	{
		api.GET("/workout-data", analyticsCtl.WorkoutData)
		api.GET("/progress", analyticsCtl.ProgressJSON)
		api.GET("/dashboard", activityCtl.DashboardJSON)
	}

	return r, nil
}
