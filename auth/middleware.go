package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the caller identity.
const ContextUserID = "user_id"

// TokenFrom reads the session token from the Authorization header, falling
// back to the token query parameter used by websocket clients.
func TokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

// Middleware resolves the caller identity for every request. A missing or
// unknown token leaves the identity empty; the store then refuses the call.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, s.Identity(TokenFrom(c)))
		c.Next()
	}
}

// UserID returns the identity Middleware stored, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
