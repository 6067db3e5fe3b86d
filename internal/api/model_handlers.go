package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/response"
	"github.com/dreamguard-id/DreamGuard/internal/service"
)

// Health is the unauthenticated liveness probe.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Success("DreamGuard API is running", nil))
	}
}

// GetLatestModel resolves the newest versioned model object in blob
// storage and refreshes the cached metadata document.
func GetLatestModel(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := service.ResolveLatestModel(c.Request.Context(), app.Objects(), app.Store())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch the latest model")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK,
			"Latest model URL fetched successfully and can be downloaded from the provided URL.", info)
	}
}
