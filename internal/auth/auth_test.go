package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Sign(42)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, _ := tokens.Sign(7)

	if _, err := NewTokens("other", time.Hour).Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("other secret err = %v, want %v", err, ErrInvalidToken)
	}

	later := NewTokens("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", time.Hour)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserIDFromContext(c)})
	})

	good, _ := tokens.Sign(3)
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + good, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + good, http.StatusOK},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(0.0001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestIPLimitersDropIdleClients(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	l := newIPLimiters(1, 1, 10*time.Minute)
	l.now = func() time.Time { return now }

	first := l.get("10.0.0.1")
	l.get("10.0.0.2")
	if got := l.size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}

	now = now.Add(5 * time.Minute)
	l.get("10.0.0.2")
	now = now.Add(5 * time.Minute)
	l.get("10.0.0.3")
	if got := l.size(); got != 2 {
		t.Fatalf("size after sweep = %d, want 2", got)
	}
	if l.get("10.0.0.1") == first {
		t.Fatal("idle client kept its old limiter")
	}
}
