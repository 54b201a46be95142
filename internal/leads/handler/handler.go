// Package handler exposes the dashboard lead API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prequal_backend/internal/leads/repository"
	"prequal_backend/internal/leads/service"
	"prequal_backend/internal/leads/transport"
	"prequal_backend/platform/httpkit"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/events", h.Events)
}

func (h *Handler) List(c *gin.Context) {
	var q transport.ListLeadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	leads, err := h.svc.ListLeads(c.Request.Context(), repository.ListParams{
		Prequalified: q.Prequalified,
		State:        q.State,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.LeadSummary, 0, len(leads))
	for _, l := range leads {
		out = append(out, transport.ToLeadSummary(l))
	}
	httpkit.OK(c, gin.H{"leads": out})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Events(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	events, err := h.svc.ListEvents(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, transport.ToEventResponse(e))
	}
	httpkit.OK(c, gin.H{"events": out})
}
