package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/model"
)

// RequireAdmin lets only the operator account through. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != model.RoleAdmin {
			slog.Warn("admin route denied",
				"email", GetEmail(c),
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
