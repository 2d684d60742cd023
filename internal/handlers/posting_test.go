package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
	"github.com/justsurfingit/job-hub/internal/services"
)

type mockPostingService struct {
	lastQuery dtos.PostingListQuery
	createErr error
}

func (m *mockPostingService) List(_ context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error) {
	m.lastQuery = q
	return []dtos.PostingSummary{{ID: "1", Title: "Frontend Engineer", Company: "Kakao", TechStack: []string{}}}, nil
}

func (m *mockPostingService) Detail(_ context.Context, id string) (dtos.PostingDetail, error) {
	if id != "1" {
		return dtos.PostingDetail{}, services.ErrNotFound
	}
	return dtos.PostingDetail{ID: "1", Title: "Frontend Engineer", Company: "Kakao"}, nil
}

func (m *mockPostingService) Create(_ context.Context, req dtos.PostingCreateRequest) (dtos.PostingDetail, error) {
	if m.createErr != nil {
		return dtos.PostingDetail{}, m.createErr
	}
	return dtos.PostingDetail{ID: "9", Title: req.Title, Company: req.Company}, nil
}

func (m *mockPostingService) Stats(context.Context) (dtos.PostingStats, error) {
	return dtos.PostingStats{Total: 1}, nil
}

type mockExtractor struct{ err error }

func (m *mockExtractor) ExtractPosting(_ context.Context, _, url string) (dtos.PostingCreateRequest, error) {
	if m.err != nil {
		return dtos.PostingCreateRequest{}, m.err
	}
	return dtos.PostingCreateRequest{Title: "Backend Engineer", Company: "Acme", Link: url}, nil
}

func newPostingRouter(svc PostingService, ex PostingExtractor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostingHandler(svc, ex)
	r := gin.New()
	r.GET("/postings", h.List)
	r.GET("/postings/stats", h.Stats)
	r.GET("/postings/:id", h.Detail)
	r.POST("/postings", h.Create)
	r.POST("/postings/extract", h.Extract)
	return r
}

func TestPostingListBindsQuery(t *testing.T) {
	svc := &mockPostingService{}
	r := newPostingRouter(svc, &mockExtractor{})

	w := do(r, http.MethodGet, "/postings?keyword=react&tag=Go&page=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.lastQuery.Keyword != "react" || svc.lastQuery.Tag != "Go" || svc.lastQuery.Page != 2 {
		t.Fatalf("query = %+v", svc.lastQuery)
	}
	if w := do(r, http.MethodGet, "/postings?page=abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad page status = %d, want 400", w.Code)
	}
}

func TestPostingDetailAndStats(t *testing.T) {
	r := newPostingRouter(&mockPostingService{}, &mockExtractor{})
	if w := do(r, http.MethodGet, "/postings/1", nil); w.Code != http.StatusOK {
		t.Fatalf("detail status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/postings/2", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing detail status = %d, want 404", w.Code)
	}
	st := decode[dtos.PostingStats](t, do(r, http.MethodGet, "/postings/stats", nil))
	if st.Total != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestPostingCreate(t *testing.T) {
	svc := &mockPostingService{}
	r := newPostingRouter(svc, &mockExtractor{})

	if w := do(r, http.MethodPost, "/postings", gin.H{"title": "x", "company": "y"}); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/postings", gin.H{"title": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing company status = %d, want 400", w.Code)
	}
	svc.createErr = services.ErrPostingExists
	if w := do(r, http.MethodPost, "/postings", gin.H{"title": "x", "company": "y"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}
}

func TestPostingExtract(t *testing.T) {
	r := newPostingRouter(&mockPostingService{}, &mockExtractor{})
	w := do(r, http.MethodPost, "/postings/extract", gin.H{"raw_html": "<p>x</p>", "url": "https://acme.example"})
	if w.Code != http.StatusOK {
		t.Fatalf("extract status = %d", w.Code)
	}
	body := decode[struct {
		Success bool                      `json:"success"`
		Data    dtos.PostingCreateRequest `json:"data"`
	}](t, w)
	if !body.Success || body.Data.Link != "https://acme.example" {
		t.Fatalf("body = %+v", body)
	}

	r = newPostingRouter(&mockPostingService{}, &mockExtractor{err: services.ErrExtractionDisabled})
	if w := do(r, http.MethodPost, "/postings/extract", gin.H{"raw_html": "<p>x</p>"}); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("disabled status = %d, want 503", w.Code)
	}
}

type mockAccounts struct{}

func (mockAccounts) Register(_ context.Context, email, _ string) (models.User, error) {
	if email == "taken@example.com" {
		return models.User{}, services.ErrEmailTaken
	}
	return models.User{ID: 5, Email: email}, nil
}

func (mockAccounts) Login(_ context.Context, email, password string) (models.User, error) {
	if password != "secret1" {
		return models.User{}, services.ErrInvalidCredentials
	}
	return models.User{ID: 5, Email: email}, nil
}

func (mockAccounts) Me(_ context.Context, id uint) (models.User, error) {
	if id != 5 {
		return models.User{}, services.ErrNotFound
	}
	return models.User{ID: 5, Email: "me@example.com"}, nil
}

// TestAuthFlow verifies register/login status codes and that the issued
// token opens /auth/me.
func TestAuthFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := NewAuthHandler(mockAccounts{}, tokens)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", auth.RequireAuth(tokens), h.Me)

	w := do(r, http.MethodPost, "/auth/register", gin.H{"email": "me@example.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d (%s)", w.Code, w.Body)
	}
	resp := decode[dtos.AuthResponse](t, w)
	if resp.Token == "" || resp.User.ID != 5 {
		t.Fatalf("register resp = %+v", resp)
	}

	cases := []struct {
		path string
		body gin.H
		want int
	}{
		{"/auth/register", gin.H{"email": "taken@example.com", "password": "secret1"}, http.StatusConflict},
		{"/auth/register", gin.H{"email": "not-an-email", "password": "secret1"}, http.StatusBadRequest},
		{"/auth/register", gin.H{"email": "a@example.com", "password": "123"}, http.StatusBadRequest},
		{"/auth/login", gin.H{"email": "me@example.com", "password": "wrong"}, http.StatusUnauthorized},
		{"/auth/login", gin.H{"email": "me@example.com", "password": "secret1"}, http.StatusOK},
	}
	for _, c := range cases {
		if w := do(r, http.MethodPost, c.path, c.body); w.Code != c.want {
			t.Errorf("%s %v: status = %d, want %d", c.path, c.body, w.Code, c.want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	if u := decode[models.User](t, w); u.Email != "me@example.com" {
		t.Fatalf("me = %+v", u)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{services.ErrBookmarkExists, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
