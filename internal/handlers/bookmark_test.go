package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
	"github.com/justsurfingit/job-hub/internal/services"
)

// fakeBookmarks keeps bookmarks in memory with the same ownership and
// uniqueness rules as the database-backed service.
type fakeBookmarks struct {
	rows       map[uint]models.Bookmark
	nextID     uint
	lastUpdate dtos.BookmarkUpdateRequest
}

func newFakeBookmarks() *fakeBookmarks {
	return &fakeBookmarks{rows: map[uint]models.Bookmark{}, nextID: 1}
}

func (f *fakeBookmarks) Create(_ context.Context, userID uint, req dtos.BookmarkCreateRequest) (models.Bookmark, error) {
	for _, b := range f.rows {
		if b.UserID == userID && b.JobID == req.JobID {
			return models.Bookmark{}, services.ErrBookmarkExists
		}
	}
	b := models.Bookmark{ID: f.nextID, UserID: userID, JobID: req.JobID, Status: models.BookmarkSaved, Memo: req.Memo}
	f.rows[b.ID] = b
	f.nextID++
	return b, nil
}

func (f *fakeBookmarks) ListMine(_ context.Context, userID uint) ([]models.Bookmark, error) {
	out := make([]models.Bookmark, 0)
	for _, b := range f.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookmarks) Update(_ context.Context, userID, id uint, req dtos.BookmarkUpdateRequest) (models.Bookmark, error) {
	f.lastUpdate = req
	b, ok := f.rows[id]
	if !ok || b.UserID != userID {
		return models.Bookmark{}, services.ErrNotFound
	}
	if req.Status != nil {
		b.Status = models.BookmarkStatus(*req.Status)
	}
	if req.Memo != nil {
		b.Memo = *req.Memo
	}
	f.rows[id] = b
	return b, nil
}

func (f *fakeBookmarks) Delete(_ context.Context, userID, id uint) error {
	b, ok := f.rows[id]
	if !ok || b.UserID != userID {
		return services.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newBookmarkRouter(svc BookmarkService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookmarkHandler(svc)
	r := gin.New()
	g := r.Group("/api/v1", withUser(userID))
	g.POST("/bookmarks", h.Create)
	g.GET("/bookmarks", h.List)
	g.PATCH("/bookmarks/:id", h.Update)
	g.DELETE("/bookmarks/:id", h.Delete)
	return r
}

func TestBookmarkCreateConflict(t *testing.T) {
	r := newBookmarkRouter(newFakeBookmarks(), 1)

	w := do(r, http.MethodPost, "/api/v1/bookmarks", gin.H{"jobId": 7, "memo": "looks good"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body)
	}
	if b := decode[models.Bookmark](t, w); b.JobID != 7 || b.UserID != 1 {
		t.Fatalf("created = %+v", b)
	}
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", gin.H{"jobId": 7}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", gin.H{"memo": "no job"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing jobId status = %d, want 400", w.Code)
	}
}

// TestBookmarkPartialUpdate checks omitted JSON fields reach the service as nil.
func TestBookmarkPartialUpdate(t *testing.T) {
	svc := newFakeBookmarks()
	r := newBookmarkRouter(svc, 1)
	do(r, http.MethodPost, "/api/v1/bookmarks", gin.H{"jobId": 7, "memo": "keep me"})

	w := do(r, http.MethodPatch, "/api/v1/bookmarks/1", gin.H{"status": "APPLIED"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (%s)", w.Code, w.Body)
	}
	if svc.lastUpdate.Status == nil || *svc.lastUpdate.Status != "APPLIED" {
		t.Fatalf("status not bound: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Memo != nil || svc.lastUpdate.NextActionDate != nil || svc.lastUpdate.IsNotified != nil {
		t.Fatalf("omitted fields bound: %+v", svc.lastUpdate)
	}
	if b := decode[models.Bookmark](t, w); b.Status != models.BookmarkApplied || b.Memo != "keep me" {
		t.Fatalf("updated = %+v", b)
	}

	if w := do(r, http.MethodPatch, "/api/v1/bookmarks/abc", gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", w.Code)
	}
}

func TestBookmarkOwnership(t *testing.T) {
	svc := newFakeBookmarks()
	owner := newBookmarkRouter(svc, 1)
	other := newBookmarkRouter(svc, 2)
	do(owner, http.MethodPost, "/api/v1/bookmarks", gin.H{"jobId": 7})

	if w := do(other, http.MethodPatch, "/api/v1/bookmarks/1", gin.H{"memo": "mine now"}); w.Code != http.StatusNotFound {
		t.Fatalf("foreign update status = %d, want 404", w.Code)
	}
	if w := do(other, http.MethodDelete, "/api/v1/bookmarks/1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", w.Code)
	}
	if list := decode[[]models.Bookmark](t, do(other, http.MethodGet, "/api/v1/bookmarks", nil)); len(list) != 0 {
		t.Fatalf("other user sees %d bookmarks", len(list))
	}

	w := do(owner, http.MethodDelete, "/api/v1/bookmarks/1", nil)
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("delete status = %d body = %q, want 204 and empty", w.Code, w.Body)
	}
	if w := do(owner, http.MethodDelete, "/api/v1/bookmarks/1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}
