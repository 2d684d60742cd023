package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
)

type BookmarkService interface {
	Create(ctx context.Context, userID uint, req dtos.BookmarkCreateRequest) (models.Bookmark, error)
	ListMine(ctx context.Context, userID uint) ([]models.Bookmark, error)
	Update(ctx context.Context, userID, id uint, req dtos.BookmarkUpdateRequest) (models.Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
}

type BookmarkHandler struct {
	bookmarks BookmarkService
}

func NewBookmarkHandler(bookmarks BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	var req dtos.BookmarkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	b, err := h.bookmarks.Create(c.Request.Context(), auth.UserIDFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookmarkHandler) List(c *gin.Context) {
	list, err := h.bookmarks.ListMine(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookmarkHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req dtos.BookmarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	b, err := h.bookmarks.Update(c.Request.Context(), auth.UserIDFromContext(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookmarks.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
