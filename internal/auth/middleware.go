package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/response"
)

// ContextUserKey is where the middleware stores the verified *internal.User.
const ContextUserKey = "user"

// Middleware verifies the bearer token on every request. A missing or
// malformed header is 401; a token the provider rejects is 403.
func Middleware(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.Error("Authorization token is missing or malformed"))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.Error("Authorization token is missing or malformed"))
			return
		}

		user, err := provider.VerifyToken(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(msg))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser fetches the verified claims set by Middleware.
func CurrentUser(c *gin.Context) *internal.User {
	return c.MustGet(ContextUserKey).(*internal.User)
}
