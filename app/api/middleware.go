package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDContextKey = "user_id"

// UserIdentity resolves the calling user from the X-User-ID header and
// stores it in the request context. Requests without a valid user ID are
// rejected before they reach a handler.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetHeader("X-User-ID"))
		if err != nil || userID == uuid.Nil {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the user ID set by UserIdentity, or uuid.Nil
// when the middleware did not run.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	if value, exists := c.Get(userIDContextKey); exists {
		if userID, ok := value.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}
