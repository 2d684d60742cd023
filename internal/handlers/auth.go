package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Me(ctx context.Context, userID uint) (models.User, error)
}

type AuthHandler struct {
	accounts AccountService
	tokens   *auth.Tokens
}

func NewAuthHandler(accounts AccountService, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issue(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issue(c, http.StatusOK, user)
}

// Logout is stateless: the client drops its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.accounts.Me(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issue(c *gin.Context, status int, user models.User) {
	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, dtos.AuthResponse{
		Token: token,
		User:  dtos.UserResponse{ID: user.ID, Email: user.Email},
	})
}
