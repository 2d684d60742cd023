package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-hub/internal/auth"
	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/cache"
	"github.com/justsurfingit/job-hub/internal/config"
	"github.com/justsurfingit/job-hub/internal/handlers"
	"github.com/justsurfingit/job-hub/internal/notion"
	"github.com/justsurfingit/job-hub/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the handlers and middleware the routes are built from.
type Deps struct {
	Tokens    *auth.Tokens
	Auth      *handlers.AuthHandler
	Postings  *handlers.PostingHandler
	Bookmarks *handlers.BookmarkHandler
	Schedules *handlers.ScheduleHandler
	Board     *handlers.BoardHandler
	Errors    *handlers.ErrorLogHandler
}

func buildDeps(ctx context.Context, cfg config.Config, db *gorm.DB, rdb *redis.Client) (*Deps, error) {
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())

	var postingCache *cache.PostingCache
	if rdb != nil {
		postingCache = cache.NewPostingCache(rdb, cfg.Redis.CacheTTL.Duration())
	}
	errorLogs := services.NewErrorLogService(db)
	postings := services.NewPostingService(db, postingCache, errorLogs)

	llm, err := services.NewLLMService(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	if llm.Client == nil {
		log.Warn().Msg("GEMINI_API_KEY not set, posting extraction disabled")
	}

	var exporter handlers.CardExporter
	if cfg.Notion.Enabled() {
		nc := notion.New(cfg.Notion.Token, cfg.Notion.DatabaseID)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := nc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("notion database not reachable, export may fail")
		}
		cancel()
		exporter = nc
	}

	return &Deps{
		Tokens:    tokens,
		Auth:      handlers.NewAuthHandler(services.NewAuthService(db), tokens),
		Postings:  handlers.NewPostingHandler(postings, llm),
		Bookmarks: handlers.NewBookmarkHandler(services.NewBookmarkService(db)),
		Schedules: handlers.NewScheduleHandler(services.NewScheduleService(db)),
		Board:     handlers.NewBoardHandler(board.NewRegistry(), postings, exporter),
		Errors:    handlers.NewErrorLogHandler(errorLogs),
	}, nil
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d *Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Job Hub API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"api":     "/api/v1",
		})
	})

	api := r.Group("/api/v1")
	api.GET("/health", handlers.HealthCheck)

	limited := api.Group("", auth.RateLimit(cfg.Auth.RatePerSec, cfg.Auth.RateBurst))
	limited.POST("/auth/register", d.Auth.Register)
	limited.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/logout", d.Auth.Logout)

	api.GET("/postings", d.Postings.List)
	api.GET("/postings/stats", d.Postings.Stats)
	api.GET("/postings/:id", d.Postings.Detail)

	protected := api.Group("", auth.RequireAuth(d.Tokens))
	protected.GET("/auth/me", d.Auth.Me)
	protected.POST("/postings", d.Postings.Create)
	protected.POST("/postings/extract", d.Postings.Extract)

	registerBookmarkRoutes(protected, d.Bookmarks)
	registerScheduleRoutes(protected, d.Schedules)
	registerBoardRoutes(protected, d.Board)

	// Error logs hold raw database errors from every user.
	if cfg.App.DevMode() {
		protected.GET("/errors", d.Errors.List)
	}
}

func registerBookmarkRoutes(api *gin.RouterGroup, h *handlers.BookmarkHandler) {
	api.POST("/bookmarks", h.Create)
	api.GET("/bookmarks", h.List)
	api.PATCH("/bookmarks/:id", h.Update)
	api.DELETE("/bookmarks/:id", h.Delete)
}

func registerScheduleRoutes(api *gin.RouterGroup, h *handlers.ScheduleHandler) {
	api.POST("/schedules", h.Create)
	api.GET("/schedules", h.List)
}

func registerBoardRoutes(api *gin.RouterGroup, h *handlers.BoardHandler) {
	api.GET("/board/cards", h.List)
	api.POST("/board/cards", h.StartApplication)
	api.GET("/board/cards/lookup", h.Lookup)
	api.PATCH("/board/cards/:id/status", h.Move)
	api.PATCH("/board/cards/:id", h.Update)
	api.POST("/board/cards/:id/quick-action", h.ApplyQuickAction)
	api.DELETE("/board/cards/:id/quick-action", h.ClearQuickAction)
	api.GET("/board/quick-templates", h.QuickTemplates)
	api.POST("/board/export/notion", h.ExportNotion)

	api.GET("/dashboard", h.Dashboard)
	api.GET("/calendar", h.Calendar)
}
