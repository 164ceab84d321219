package handlers

import (
	"github.com/gin-gonic/gin"

	"hoteldash/internal/domain/stats"
	"hoteldash/internal/infrastructure/http/v1/dto"
)

// StatsHandler serves the analytical report endpoints.
type StatsHandler struct {
	*BaseHandler
	stats *stats.Service
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{
		BaseHandler: NewBaseHandler(),
		stats:       statsService,
	}
}

// GlobalReports lists the report names accepted by Global.
// GET /api/v1/stats/global
func (h *StatsHandler) GlobalReports(c *gin.Context) {
	names := stats.GlobalReportNames()
	h.OK(c, dto.ListResponse{Items: names, Count: len(names)})
}

// Global runs a system-wide report.
// GET /api/v1/stats/global/:report
func (h *StatsHandler) Global(c *gin.Context) {
	rows, err := h.stats.Global(c.Request.Context(), c.Param("report"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: rows, Count: len(rows)})
}

// Hotel runs a per-hotel report.
// GET /api/v1/stats/hotel/:hid/:report
func (h *StatsHandler) Hotel(c *gin.Context) {
	hid, ok := h.ParseIntParam(c, "hid")
	if !ok {
		return
	}
	rows, err := h.stats.Hotel(c.Request.Context(), hid, c.Param("report"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: rows, Count: len(rows)})
}
