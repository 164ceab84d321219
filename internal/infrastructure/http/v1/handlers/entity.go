package handlers

import (
	"github.com/gin-gonic/gin"

	"hoteldash/internal/core/apperror"
	"hoteldash/internal/domain/crud"
	"hoteldash/internal/infrastructure/http/v1/dto"
	"hoteldash/internal/schema"
)

// EntityHandler serves every registered entity through one set of routes.
// The entity name in the path selects the schema; unknown names are 404s.
type EntityHandler struct {
	*BaseHandler
	registry     *schema.Registry
	orchestrator *crud.Orchestrator
}

// NewEntityHandler creates an entity handler.
func NewEntityHandler(registry *schema.Registry, orchestrator *crud.Orchestrator) *EntityHandler {
	return &EntityHandler{
		BaseHandler:  NewBaseHandler(),
		registry:     registry,
		orchestrator: orchestrator,
	}
}

// List returns all records of the entity.
// GET /api/v1/entities/:entity
func (h *EntityHandler) List(c *gin.Context) {
	records, err := h.orchestrator.List(c.Request.Context(), c.Param("entity"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: records, Count: len(records)})
}

// Get returns one record.
// GET /api/v1/entities/:entity/records/:id
func (h *EntityHandler) Get(c *gin.Context) {
	id, ok := h.ParseIntParam(c, "id")
	if !ok {
		return
	}
	record, err := h.orchestrator.Get(c.Request.Context(), c.Param("entity"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, record)
}

// Create validates field values and creates a record.
// POST /api/v1/entities/:entity
func (h *EntityHandler) Create(c *gin.Context) {
	var req dto.MutateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record, err := h.orchestrator.Create(c.Request.Context(), c.Param("entity"), req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// Update validates field values and updates a record.
// PUT /api/v1/entities/:entity/records/:id
func (h *EntityHandler) Update(c *gin.Context) {
	id, ok := h.ParseIntParam(c, "id")
	if !ok {
		return
	}
	var req dto.MutateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record, err := h.orchestrator.Update(c.Request.Context(), c.Param("entity"), id, req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, record)
}

// Delete removes a record unless dependent records still reference it.
// DELETE /api/v1/entities/:entity/records/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIntParam(c, "id")
	if !ok {
		return
	}
	if err := h.orchestrator.Delete(c.Request.Context(), c.Param("entity"), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Choices returns the ids selectable for a reference field.
// GET /api/v1/entities/:entity/choices/:field
func (h *EntityHandler) Choices(c *gin.Context) {
	entityName := c.Param("entity")
	fieldName := c.Param("field")

	ent, ok := h.registry.Get(entityName)
	if !ok {
		h.HandleError(c, apperror.NewNotFound("entity", entityName))
		return
	}
	field, ok := ent.Field(fieldName)
	if !ok {
		h.HandleError(c, apperror.NewNotFound("field", fieldName))
		return
	}
	if field.Type != schema.TypeReference {
		h.HandleError(c, apperror.NewValidation("field is not a reference").
			WithDetail("field", fieldName))
		return
	}

	ids, err := h.orchestrator.ChoiceIDs(c.Request.Context(), field.ReferenceTo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ChoicesResponse{Entity: entityName, Field: fieldName, IDs: ids})
}
