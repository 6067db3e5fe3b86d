package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/service"
)

func GetSleepGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		goal, err := service.GetSleepGoal(c.Request.Context(), app.Store(), user.UID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Sleep goal has not been set")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Sleep goal retrieved successfully.", goal)
	}
}

func PatchSleepGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateGoalRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		goal, err := service.UpdateSleepGoal(c.Request.Context(), app.Store(), user.UID, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update sleep goal")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Sleep goal updated successfully.", goal)
	}
}
