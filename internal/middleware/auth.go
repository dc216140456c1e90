package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-demo/ticket-service/internal/directory"
	"github.com/helpdesk-demo/ticket-service/internal/model"
	"github.com/helpdesk-demo/ticket-service/internal/session"
)

const userContextKey = "auth_user"

// Auth verifies the Bearer token and resolves the directory user it was
// issued for. The token carries only the user id; role comes from the
// directory on every request, never from token claims.
func Auth(sessions *session.Manager, dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			c.Abort()
			return
		}
		userID, err := sessions.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		user, err := dir.ResolveID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user stashed by Auth.
func UserFrom(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
