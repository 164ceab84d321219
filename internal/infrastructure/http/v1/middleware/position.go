package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
	"hoteldash/internal/domain/session"
)

// methodOps maps HTTP methods on entity routes to gated operations.
var methodOps = map[string]session.Operation{
	http.MethodGet:    session.OpRead,
	http.MethodPost:   session.OpCreate,
	http.MethodPut:    session.OpUpdate,
	http.MethodDelete: session.OpDelete,
}

// Manage gates entity mutations by the employee's position. The entity name
// comes from the route parameter, so this applies only under /entities.
func Manage(policy *session.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := appctx.GetSession(c.Request.Context())
		if sess == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		op, ok := methodOps[c.Request.Method]
		if !ok {
			_ = c.Error(apperror.NewForbidden("method not allowed"))
			c.Abort()
			return
		}

		entity := c.Param("entity")
		if !policy.CanManage(sess.Position, entity, op) {
			_ = c.Error(
				apperror.NewForbidden("Your position does not allow this action").
					WithDetail("position", sess.Position).
					WithDetail("entity", entity).
					WithDetail("operation", string(op)),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
