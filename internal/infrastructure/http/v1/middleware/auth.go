package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
)

// JWTValidator interface for token validation.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.SessionContext, error)
}

// Auth middleware validates JWT tokens and populates the session context.
func Auth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		sess, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := appctx.WithSession(c.Request.Context(), sess)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("employee_id", sess.EmployeeID)
		c.Set("position", sess.Position)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
