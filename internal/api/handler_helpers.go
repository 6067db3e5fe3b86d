package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/prediction"
	"github.com/dreamguard-id/DreamGuard/internal/response"
	"github.com/dreamguard-id/DreamGuard/internal/service"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
	"github.com/dreamguard-id/DreamGuard/internal/timeutil"
)

// HandleError logs the failure and renders the error envelope. Sentinel
// errors override the fallback status so services never need to know HTTP.
func HandleError(c *gin.Context, logger internal.Logger, err error, fallbackStatus int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)

	status := fallbackStatus
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNoModels):
		status = http.StatusNotFound
	case errors.Is(err, timeutil.ErrParse):
		status = http.StatusBadRequest
	case errors.Is(err, prediction.ErrInference):
		status = http.StatusInternalServerError
	case errors.Is(err, prediction.ErrInvalidClass):
		status = http.StatusInternalServerError
	}

	c.JSON(status, response.Error(msg+": "+err.Error()))
}

// HandleValidationError renders field-level messages from validator
// failures.
func HandleValidationError(c *gin.Context, logger internal.Logger, err error) {
	requestID := c.GetString("request_id")
	logger.Warnf("[request_id=%s] validation failed: %v", requestID, err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, len(verrs))
		for i, fe := range verrs {
			details[i] = fmt.Sprintf("Field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
		}
		c.JSON(http.StatusBadRequest, response.ValidationError("Validation failed", details))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error("Validation failed: "+err.Error()))
}

// HandleSuccess renders the success envelope.
func HandleSuccess(c *gin.Context, logger internal.Logger, status int, message string, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] %s", requestID, message)
	c.JSON(status, response.Success(message, data))
}
