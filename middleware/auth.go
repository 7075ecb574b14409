package middleware

import (
	"net/http"
	"strings"

	"fashion-store/models"
	"fashion-store/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"

	adminRole = "admin"
)

func abortWith(c *gin.Context, status int, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// AuthMiddleware accepts "Authorization: Bearer <jwt>" signed with secret and
// exposes the claims on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		switch {
		case scheme == "":
			abortWith(c, http.StatusUnauthorized, "Authorization header required", nil)
			return
		case !found || scheme != "Bearer" || token == "":
			abortWith(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != adminRole {
			abortWith(c, http.StatusForbidden, "Admin role required", nil)
			return
		}
		c.Next()
	}
}
