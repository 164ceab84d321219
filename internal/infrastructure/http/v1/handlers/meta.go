package handlers

import (
	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
	"hoteldash/internal/infrastructure/http/v1/dto"
	"hoteldash/internal/schema"
)

// MetaHandler exposes entity schemas so clients can render forms without
// hardcoding field lists.
type MetaHandler struct {
	*BaseHandler
	registry *schema.Registry
}

// NewMetaHandler creates a meta handler.
func NewMetaHandler(registry *schema.Registry) *MetaHandler {
	return &MetaHandler{
		BaseHandler: NewBaseHandler(),
		registry:    registry,
	}
}

// List returns every entity definition in registration order.
// GET /api/v1/meta
func (h *MetaHandler) List(c *gin.Context) {
	defs := h.registry.List()
	h.OK(c, dto.ListResponse{Items: defs, Count: len(defs)})
}

// Get returns a single entity definition by name.
// GET /api/v1/meta/:entity
func (h *MetaHandler) Get(c *gin.Context) {
	name := c.Param("entity")

	ent, ok := h.registry.Get(name)
	if !ok {
		h.HandleError(c, apperror.NewNotFound("entity", name))
		return
	}

	h.OK(c, ent)
}
