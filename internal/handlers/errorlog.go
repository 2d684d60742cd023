package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/models"
)

type ErrorLogReader interface {
	Recent(ctx context.Context, limit int) ([]models.ErrorLog, error)
}

type ErrorLogHandler struct {
	logs ErrorLogReader
}

func NewErrorLogHandler(logs ErrorLogReader) *ErrorLogHandler {
	return &ErrorLogHandler{logs: logs}
}

// List is GET /errors?limit=
func (h *ErrorLogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
