package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/auth"
)

// NewRouter builds the gin engine with all routes. Everything under
// /api/user requires a verified bearer token; the model registry and the
// liveness probe are public.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/", Health())

	model := r.Group("/api/model")
	model.GET("/latest", GetLatestModel(app))

	user := r.Group("/api/user")
	user.Use(auth.Middleware(app.Auth()))
	{
		user.POST("/register", RegisterUser(app))
		user.DELETE("/account", DeleteAccount(app))
		user.GET("/profile", GetProfile(app))
		user.PATCH("/profile", UpdateProfile(app))

		user.POST("/predictions", PostPrediction(app))
		user.GET("/predictions", GetPredictions(app))
		user.GET("/predictions/latest", GetLatestPrediction(app))
		user.GET("/predictions/filter", FilterPredictions(app))
		user.GET("/predictions/:id", GetPredictionByID(app))

		user.POST("/sleep-schedules", PostSchedule(app))
		user.GET("/sleep-schedules", GetSchedules(app))
		user.GET("/sleep-schedules/:id", GetScheduleByID(app))
		user.PATCH("/sleep-schedules/:id", PatchSchedule(app))

		user.GET("/sleep-goals", GetSleepGoal(app))
		user.PATCH("/sleep-goals", PatchSleepGoal(app))

		user.GET("/statistics", GetStatistics(app))
		user.POST("/feedback", PostFeedback(app))
	}

	return r
}
