package routes

import (
	"log"

	"github.com/KristjanKelk/wellness-app-sub002/config"
	"github.com/KristjanKelk/wellness-app-sub002/controllers"
	"github.com/KristjanKelk/wellness-app-sub002/middlewares"
	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	db := config.DB

	// services
	profileSvc := services.NewProfileService(db)
	milestoneSvc := services.NewMilestoneService(db)
	weightSvc := services.NewWeightService(db, milestoneSvc)
	activitySvc := services.NewActivityService(db, milestoneSvc)
	wellnessSvc := services.NewWellnessService(db)
	analyticsSvc := services.NewAnalyticsService(db)
	insightSvc := services.NewInsightService(db)

	hub := services.NewRealtimeHub()
	pushSvc, err := services.NewPushService(db)
	if err != nil {
		log.Printf("push disabled: %v", err)
		pushSvc = nil
	}
	services.InitAlertDeps(db, hub, pushSvc)

	rekSvc, err := services.NewRekognitionService()
	if err != nil {
		log.Printf("photo labelling disabled: %v", err)
	}

	// controllers
	profileCtrl := controllers.NewProfileController(profileSvc)
	weightCtrl := controllers.NewWeightController(weightSvc)
	activityCtrl := controllers.NewActivityController(activitySvc, rekSvc)
	milestoneCtrl := controllers.NewMilestoneController(milestoneSvc, profileSvc)
	wellnessCtrl := controllers.NewWellnessController(wellnessSvc, profileSvc)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsSvc, profileSvc)
	insightCtrl := controllers.NewInsightController(insightSvc)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// Public routes
	r.GET("/health", controllers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/account", controllers.GetAccount)
		api.PUT("/account", controllers.UpdateAccount)
		api.DELETE("/account", controllers.DeactivateAccount)

		api.GET("/profile", profileCtrl.Get)
		api.PUT("/profile", profileCtrl.Update)

		api.GET("/weights", weightCtrl.List)
		api.POST("/weights", weightCtrl.Add)
		api.DELETE("/weights/:id", weightCtrl.Delete)

		api.GET("/activities", activityCtrl.List)
		api.POST("/activities", activityCtrl.Add)
		api.PUT("/activities/:id", activityCtrl.Update)
		api.DELETE("/activities/:id", activityCtrl.Delete)
		api.POST("/activities/photo", activityCtrl.PhotoSuggest)

		api.GET("/milestones", milestoneCtrl.List)

		api.GET("/wellness/score", wellnessCtrl.GetScore)
		api.GET("/wellness/history", wellnessCtrl.GetHistory)

		api.GET("/analytics/summary", analyticsCtrl.GetSummary)
		api.GET("/analytics/weekly", analyticsCtrl.GetWeeklyOverview)

		api.POST("/insights", insightCtrl.Generate)
		api.GET("/insights/payload", insightCtrl.Payload)

		api.GET("/alerts", controllers.ListAlerts)
		api.POST("/notifications/toggle", controllers.ToggleNotifications)

		deviceCtrl := controllers.NewDeviceController(pushSvc)
		api.POST("/devices/register", deviceCtrl.Register)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", realtimeCtrl.AlertsWS)
	}

	return r
}
