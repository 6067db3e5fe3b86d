package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/service"
)

// PostSchedule creates a sleep schedule with its derived planned duration.
func PostSchedule(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var req service.ScheduleCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateScheduleCreateRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		rec, err := service.CreateSchedule(c.Request.Context(), app.Store(), user, &req, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to create sleep schedule")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusCreated, "Sleep schedule created successfully.", rec)
	}
}

// GetSchedules lists the user's schedules, newest first.
func GetSchedules(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		recs, err := app.Store().ListSchedules(c.Request.Context(), user.UID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to retrieve sleep schedules")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Sleep schedules retrieved successfully.", recs)
	}
}

func GetScheduleByID(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		rec, err := app.Store().GetSchedule(c.Request.Context(), user.UID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Sleep schedule not found")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Sleep schedule retrieved successfully.", rec)
	}
}

// PatchSchedule applies a partial update, recomputing derived durations.
func PatchSchedule(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var req service.ScheduleUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateScheduleUpdateRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		rec, err := service.UpdateSchedule(c.Request.Context(), app.Store(), user.UID, c.Param("id"), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update sleep schedule")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Sleep schedule updated successfully.", rec)
	}
}
