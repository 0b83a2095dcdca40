package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// SessionChecker reports whether the agent holds a bearer token.
type SessionChecker interface {
	Authenticated() bool
}

// SessionRequired rejects requests needing the remote service on behalf of a
// user while no token has been obtained or restored.
func SessionRequired(session SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "sign in required"})
			return
		}
		c.Next()
	}
}
