package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/response"
	"github.com/dreamguard-id/DreamGuard/internal/service"
)

// PostPrediction runs the classification pipeline and persists the record.
func PostPrediction(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var req service.PredictionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidatePredictionRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		rec, err := service.CreatePrediction(c.Request.Context(), app.Store(), app.Classifier(), user, &req, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save prediction")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusCreated, "Prediction saved successfully.", rec)
	}
}

// GetPredictions lists the history, ascending by sequence number unless
// ?order=desc.
func GetPredictions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		order := c.DefaultQuery("order", "asc")
		if order != "asc" && order != "desc" {
			c.JSON(http.StatusBadRequest, response.Error("order must be 'asc' or 'desc'"))
			return
		}

		recs, err := service.ListPredictions(c.Request.Context(), app.Store(), user.UID, order)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to retrieve prediction history")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Prediction history retrieved successfully.", recs)
	}
}

// GetLatestPrediction returns the newest record, 404 when the history is
// empty.
func GetLatestPrediction(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		rec, err := service.LatestPrediction(c.Request.Context(), app.Store(), user.UID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "No prediction history found")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Latest prediction retrieved successfully.", rec)
	}
}

// FilterPredictions returns records whose stored result id matches
// ?predictionResultId=, in creation order.
func FilterPredictions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		raw := c.Query("predictionResultId")
		resultID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("predictionResultId must be an integer"))
			return
		}

		recs, err := service.FilterPredictions(c.Request.Context(), app.Store(), user.UID, resultID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to filter predictions")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Predictions filtered successfully.", recs)
	}
}

func GetPredictionByID(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		rec, err := app.Store().GetPrediction(c.Request.Context(), user.UID, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Prediction not found")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Prediction retrieved successfully.", rec)
	}
}
