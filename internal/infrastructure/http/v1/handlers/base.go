// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.HandleError(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseIntParam parses an integer path parameter.
func (h *BaseHandler) ParseIntParam(c *gin.Context, key string) (int, bool) {
	val, err := strconv.Atoi(c.Param(key))
	if err != nil {
		h.HandleError(c, apperror.NewValidation("invalid path parameter").
			WithDetail("param", key).
			WithDetail("error", err.Error()))
		return 0, false
	}
	return val, true
}

// HandleError registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
