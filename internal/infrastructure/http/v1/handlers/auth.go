package handlers

import (
	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
	"hoteldash/internal/domain/crud"
	"hoteldash/internal/domain/session"
	"hoteldash/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	sessions     *session.Service
	orchestrator *crud.Orchestrator
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(sessions *session.Service, orchestrator *crud.Orchestrator) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  NewBaseHandler(),
		sessions:     sessions,
		orchestrator: orchestrator,
	}
}

// Login verifies credentials and issues a session token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		Token:      result.Token,
		ExpiresAt:  result.ExpiresAt,
		EmployeeID: result.Session.EmployeeID,
		Username:   result.Session.Username,
		Position:   result.Session.Position,
	})
}

// Register creates a login account for an employee who has none yet. The
// route takes no session on purpose: a new hire cannot log in before the
// account exists. Uniqueness of the employee id and username is still
// enforced by the create pipeline.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.MutateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.orchestrator.Create(c.Request.Context(), "login", req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// Session returns the authenticated employee's session details.
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess := appctx.GetSession(c.Request.Context())
	if sess == nil {
		h.HandleError(c, apperror.NewUnauthorized("No active session"))
		return
	}

	h.OK(c, dto.SessionResponse{
		EmployeeID: sess.EmployeeID,
		Username:   sess.Username,
		Position:   sess.Position,
	})
}
