package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/dtos"
)

// PostingLookup resolves the posting a new card is created from.
type PostingLookup interface {
	Detail(ctx context.Context, id string) (dtos.PostingDetail, error)
}

// CardExporter pushes cards to an external tracker.
type CardExporter interface {
	ExportCards(ctx context.Context, cards []board.Card) ([]string, error)
}

type BoardHandler struct {
	boards   *board.Registry
	postings PostingLookup
	exporter CardExporter
	now      func() time.Time
}

// NewBoardHandler wires the board routes. exporter may be nil.
func NewBoardHandler(boards *board.Registry, postings PostingLookup, exporter CardExporter) *BoardHandler {
	return &BoardHandler{boards: boards, postings: postings, exporter: exporter, now: time.Now}
}

func (h *BoardHandler) store(c *gin.Context) *board.Store {
	return h.boards.For(auth.UserIDFromContext(c))
}

// List is GET /board/cards: the snapshot plus the kanban columns.
func (h *BoardHandler) List(c *gin.Context) {
	cards := h.store(c).Cards()
	c.JSON(http.StatusOK, gin.H{
		"cards":   cards,
		"columns": board.Columns(cards, h.now()),
	})
}

// StartApplication is POST /board/cards. Re-adding a posting answers 200 with
// the existing card id; a new card answers 201.
func (h *BoardHandler) StartApplication(c *gin.Context) {
	var req dtos.StartApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	var status board.Status
	if req.Status != "" {
		s, err := board.ParseStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		status = s
	}

	store := h.store(c)
	if existing, ok := store.FindByPostingID(req.PostingID); ok {
		c.JSON(http.StatusOK, board.AddResult{Created: false, CardID: existing.ID})
		return
	}

	p, err := h.postings.Detail(c.Request.Context(), req.PostingID)
	if err != nil {
		respondError(c, err)
		return
	}
	deadline := p.Deadline
	if deadline == "" {
		deadline = board.NoDeadline
	}

	res, err := store.AddCard(board.NewCard{
		PostingID: req.PostingID,
		Company:   p.Company,
		Title:     p.Title,
		Deadline:  deadline,
		Status:    status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	c.JSON(code, res)
}

// Lookup is GET /board/cards/lookup?postingId=
func (h *BoardHandler) Lookup(c *gin.Context) {
	postingID := c.Query("postingId")
	if postingID == "" {
		badRequest(c, "postingId is required")
		return
	}
	card, ok := h.store(c).FindByPostingID(postingID)
	if !ok {
		respondError(c, board.ErrCardNotFound)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Move is PATCH /board/cards/:id/status.
func (h *BoardHandler) Move(c *gin.Context) {
	var req dtos.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	store := h.store(c)
	id := c.Param("id")
	if err := store.MoveCard(id, board.Status(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	h.respondCard(c, store, id)
}

// Update is PATCH /board/cards/:id with memo and/or nextActionDate.
// An empty nextActionDate clears it.
func (h *BoardHandler) Update(c *gin.Context) {
	var req dtos.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	if req.NextActionDate != nil && *req.NextActionDate != "" {
		if _, ok := board.ParseDate(*req.NextActionDate); !ok {
			badRequest(c, "nextActionDate must be YYYY-MM-DD")
			return
		}
	}
	store := h.store(c)
	id := c.Param("id")
	err := store.UpdateCard(id, board.CardPatch{
		Memo:           req.Memo,
		NextActionDate: req.NextActionDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCard(c, store, id)
}

// ApplyQuickAction is POST /board/cards/:id/quick-action.
func (h *BoardHandler) ApplyQuickAction(c *gin.Context) {
	var req dtos.QuickActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	template := strings.TrimSpace(req.Template)
	if template == "" {
		badRequest(c, "template is required")
		return
	}
	card, err := h.store(c).ApplyQuickAction(c.Param("id"), template, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// ClearQuickAction is DELETE /board/cards/:id/quick-action.
func (h *BoardHandler) ClearQuickAction(c *gin.Context) {
	card, err := h.store(c).ClearQuickAction(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// QuickTemplates is GET /board/quick-templates.
func (h *BoardHandler) QuickTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, board.QuickTemplates)
}

// ExportNotion is POST /board/export/notion.
func (h *BoardHandler) ExportNotion(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notion export is not configured"})
		return
	}
	ids, err := h.exporter.ExportCards(c.Request.Context(), h.store(c).Cards())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pageIds": ids})
}

// Dashboard is GET /dashboard.
func (h *BoardHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, board.BuildDashboard(h.store(c).Cards(), h.now()))
}

// Calendar is GET /calendar?year=2026&month=9&selected=2026-10-18. month is
// zero-based like the response; both default to the current month.
func (h *BoardHandler) Calendar(c *gin.Context) {
	today := h.now()
	year, month0 := today.Year(), int(today.Month())-1

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "invalid year")
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "invalid month")
			return
		}
		month0 = m
	}
	selected := c.Query("selected")
	if selected != "" {
		if _, ok := board.ParseDate(selected); !ok {
			badRequest(c, "selected must be YYYY-MM-DD")
			return
		}
	}

	c.JSON(http.StatusOK, board.MonthCalendar(h.store(c).Cards(), year, month0, selected, today))
}

func (h *BoardHandler) respondCard(c *gin.Context, store *board.Store, id string) {
	card, ok := store.Get(id)
	if !ok {
		respondError(c, board.ErrCardNotFound)
		return
	}
	c.JSON(http.StatusOK, card)
}
