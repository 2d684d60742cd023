package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
)

type ScheduleService interface {
	Create(ctx context.Context, userID uint, req dtos.ScheduleCreateRequest) (models.Schedule, error)
	ListMine(ctx context.Context, userID uint, q dtos.ScheduleListQuery) ([]models.Schedule, error)
}

type ScheduleHandler struct {
	schedules ScheduleService
}

func NewScheduleHandler(schedules ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dtos.ScheduleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	sc, err := h.schedules.Create(c.Request.Context(), auth.UserIDFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// List is GET /schedules?from=&to=
func (h *ScheduleHandler) List(c *gin.Context) {
	var q dtos.ScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}
	list, err := h.schedules.ListMine(c.Request.Context(), auth.UserIDFromContext(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
