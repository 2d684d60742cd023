package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/dtos"
)

type PostingService interface {
	List(ctx context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error)
	Detail(ctx context.Context, id string) (dtos.PostingDetail, error)
	Create(ctx context.Context, req dtos.PostingCreateRequest) (dtos.PostingDetail, error)
	Stats(ctx context.Context) (dtos.PostingStats, error)
}

type PostingExtractor interface {
	ExtractPosting(ctx context.Context, rawHTML, url string) (dtos.PostingCreateRequest, error)
}

type PostingHandler struct {
	postings  PostingService
	extractor PostingExtractor
}

func NewPostingHandler(postings PostingService, extractor PostingExtractor) *PostingHandler {
	return &PostingHandler{postings: postings, extractor: extractor}
}

// List is GET /postings?keyword=&tag=&page=
func (h *PostingHandler) List(c *gin.Context) {
	var q dtos.PostingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}
	list, err := h.postings.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PostingHandler) Stats(c *gin.Context) {
	st, err := h.postings.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *PostingHandler) Detail(c *gin.Context) {
	d, err := h.postings.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *PostingHandler) Create(c *gin.Context) {
	var req dtos.PostingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	d, err := h.postings.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// Extract is POST /postings/extract. It returns a draft; nothing is stored.
func (h *PostingHandler) Extract(c *gin.Context) {
	var req dtos.PostingExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	draft, err := h.extractor.ExtractPosting(c.Request.Context(), req.RawHTML, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}
