package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/cache"
	"github.com/justsurfingit/job-hub/internal/database"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const PostingPageSize = 20

type PostingService struct {
	DB    *gorm.DB
	cache *cache.PostingCache
	errs  *ErrorLogService
	sf    singleflight.Group
	now   func() time.Time

	// Fallback serves the placeholder postings when the database fails.
	Fallback bool
}

// NewPostingService creates a PostingService. If c is nil, caching is disabled.
func NewPostingService(db *gorm.DB, c *cache.PostingCache, errs *ErrorLogService) *PostingService {
	return &PostingService{DB: db, cache: c, errs: errs, now: time.Now, Fallback: true}
}

func (s *PostingService) List(ctx context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if s.cache == nil {
		return s.listOrFallback(ctx, q)
	}
	v, err, _ := s.sf.Do(cache.ListKey(q), func() (any, error) {
		if list, err := s.cache.GetList(ctx, q); err == nil && list != nil {
			return list, nil
		}
		list, err := s.listFromDB(ctx, q)
		if err != nil {
			return s.fallbackList(ctx, q, err)
		}
		_ = s.cache.SetList(ctx, q, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dtos.PostingSummary), nil
}

func (s *PostingService) listOrFallback(ctx context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error) {
	list, err := s.listFromDB(ctx, q)
	if err != nil {
		return s.fallbackList(ctx, q, err)
	}
	return list, nil
}

func (s *PostingService) listFromDB(ctx context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error) {
	tx := s.DB.WithContext(ctx).Model(&models.JobPost{})
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + kw + "%"
		tx = tx.Where("(title ILIKE ? OR company ILIKE ?)", like, like)
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		tx = tx.Where("EXISTS (SELECT 1 FROM unnest(tech_stack) AS t WHERE lower(t) = lower(?))", tag)
	}

	var rows []models.JobPost
	err := tx.Order("created_at DESC").Order("id DESC").
		Limit(PostingPageSize).
		Offset((q.Page - 1) * PostingPageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	out := make([]dtos.PostingSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, toSummary(p))
	}
	return out, nil
}

func (s *PostingService) fallbackList(ctx context.Context, q dtos.PostingListQuery, cause error) ([]dtos.PostingSummary, error) {
	if !s.Fallback {
		return nil, cause
	}
	s.recordFallback(ctx, "postings.list", cause)
	return FilterFallback(q), nil
}

// Detail returns one posting by id.
func (s *PostingService) Detail(ctx context.Context, id string) (dtos.PostingDetail, error) {
	if s.cache != nil {
		if d, err := s.cache.GetDetail(ctx, id); err == nil && d != nil {
			return *d, nil
		}
	}

	pid, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return dtos.PostingDetail{}, ErrNotFound
	}
	var p models.JobPost
	err = s.DB.WithContext(ctx).First(&p, uint(pid)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dtos.PostingDetail{}, ErrNotFound
	}
	if err != nil {
		if !s.Fallback {
			return dtos.PostingDetail{}, fmt.Errorf("find posting: %w", err)
		}
		s.recordFallback(ctx, "postings.detail", err)
		d, ok := FallbackDetail(id)
		if !ok {
			return dtos.PostingDetail{}, ErrNotFound
		}
		return d, nil
	}

	d := toDetail(p)
	if s.cache != nil {
		_ = s.cache.SetDetail(ctx, d)
	}
	return d, nil
}

// Create stores a new posting. The same company, title and link cannot be
// stored twice.
func (s *PostingService) Create(ctx context.Context, req dtos.PostingCreateRequest) (dtos.PostingDetail, error) {
	p := models.JobPost{
		Title:     strings.TrimSpace(req.Title),
		Company:   strings.TrimSpace(req.Company),
		Summary:   req.Summary,
		TechStack: pq.StringArray(cleanTags(req.TechStack)),
	}
	if p.Title == "" || p.Company == "" {
		return dtos.PostingDetail{}, fmt.Errorf("%w: title and company are required", ErrInvalidInput)
	}
	if req.Deadline != "" {
		d, ok := board.ParseDate(req.Deadline)
		if !ok {
			return dtos.PostingDetail{}, fmt.Errorf("%w: deadline must be YYYY-MM-DD", ErrInvalidInput)
		}
		p.Deadline = &d
	}
	if link := strings.TrimSpace(req.Link); link != "" {
		p.Link = &link
	}
	p.Fingerprint = Fingerprint(p.Company, p.Title, req.Link)

	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return dtos.PostingDetail{}, ErrPostingExists
		}
		return dtos.PostingDetail{}, fmt.Errorf("create posting: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("posting cache invalidation failed")
		}
	}
	return toDetail(p), nil
}

// Stats summarizes the stored postings as of today.
func (s *PostingService) Stats(ctx context.Context) (dtos.PostingStats, error) {
	today := s.now()
	day := board.FormatDate(today)
	if s.cache != nil {
		if st, err := s.cache.GetStats(ctx, day); err == nil && st != nil {
			return *st, nil
		}
	}

	var rows []models.JobPost
	err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error
	if err != nil {
		if !s.Fallback {
			return dtos.PostingStats{}, fmt.Errorf("load postings: %w", err)
		}
		s.recordFallback(ctx, "postings.stats", err)
		return BuildPostingStats(FilterFallback(dtos.PostingListQuery{}), today), nil
	}

	list := make([]dtos.PostingSummary, 0, len(rows))
	for _, p := range rows {
		list = append(list, toSummary(p))
	}
	st := BuildPostingStats(list, today)
	if s.cache != nil {
		_ = s.cache.SetStats(ctx, day, st)
	}
	return st, nil
}

func (s *PostingService) recordFallback(ctx context.Context, source string, cause error) {
	log.Warn().Err(cause).Str("source", source).Msg("database unavailable, serving placeholder postings")
	if s.errs == nil {
		return
	}
	if err := s.errs.Record(ctx, source, "DB_UNAVAILABLE", cause.Error(), map[string]any{"fallback": true}); err != nil {
		log.Error().Err(err).Str("source", source).Msg("record error log")
	}
}

// Fingerprint identifies a posting by company, title and link.
func Fingerprint(company, title, link string) string {
	key := strings.ToLower(strings.TrimSpace(company)) + "|" +
		strings.ToLower(strings.TrimSpace(title)) + "|" +
		strings.TrimSpace(link)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(board.DateLayout)
}

func toSummary(p models.JobPost) dtos.PostingSummary {
	return dtos.PostingSummary{
		ID:         strconv.FormatUint(uint64(p.ID), 10),
		Title:      p.Title,
		Company:    p.Company,
		Deadline:   formatDeadline(p.Deadline),
		TechStack:  append([]string{}, p.TechStack...),
		HasSummary: p.Summary != nil,
	}
}

func toDetail(p models.JobPost) dtos.PostingDetail {
	d := dtos.PostingDetail{
		ID:        strconv.FormatUint(uint64(p.ID), 10),
		Title:     p.Title,
		Company:   p.Company,
		Deadline:  formatDeadline(p.Deadline),
		TechStack: append([]string{}, p.TechStack...),
		Summary:   p.Summary,
	}
	if p.Link != nil {
		d.Link = *p.Link
	}
	return d
}
