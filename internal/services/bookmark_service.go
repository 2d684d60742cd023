package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/database"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
	"gorm.io/gorm"
)

type BookmarkService struct {
	DB *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{DB: db}
}

func parseBookmarkStatus(raw string) (models.BookmarkStatus, error) {
	if raw == "" {
		return models.BookmarkSaved, nil
	}
	st := models.BookmarkStatus(raw)
	if !st.Valid() {
		return "", fmt.Errorf("%w: status %q", ErrInvalidInput, raw)
	}
	return st, nil
}

// parseOptionalDate maps "" to nil and anything else through YYYY-MM-DD.
func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, ok := board.ParseDate(raw)
	if !ok {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return &t, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID uint, req dtos.BookmarkCreateRequest) (models.Bookmark, error) {
	status, err := parseBookmarkStatus(req.Status)
	if err != nil {
		return models.Bookmark{}, err
	}
	next, err := parseOptionalDate(req.NextActionDate)
	if err != nil {
		return models.Bookmark{}, err
	}

	db := s.DB.WithContext(ctx)
	var job models.JobPost
	if err := db.First(&job, req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bookmark{}, ErrNotFound
		}
		return models.Bookmark{}, fmt.Errorf("find posting: %w", err)
	}

	b := models.Bookmark{
		UserID:         userID,
		JobID:          job.ID,
		Status:         status,
		Memo:           req.Memo,
		NextActionDate: next,
	}
	if err := db.Create(&b).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.Bookmark{}, ErrBookmarkExists
		}
		return models.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	b.Job = job
	return b, nil
}

// ListMine returns the user's bookmarks, newest first, with postings loaded.
func (s *BookmarkService) ListMine(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	list := make([]models.Bookmark, 0)
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return list, nil
}

func (s *BookmarkService) Update(ctx context.Context, userID, id uint, req dtos.BookmarkUpdateRequest) (models.Bookmark, error) {
	db := s.DB.WithContext(ctx)
	var b models.Bookmark
	err := db.Preload("Job").Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Bookmark{}, ErrNotFound
	}
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("find bookmark: %w", err)
	}

	if err := applyBookmarkUpdate(&b, req); err != nil {
		return models.Bookmark{}, err
	}

	err = db.Model(&b).Select("Status", "Memo", "NextActionDate", "IsNotified").Updates(&b).Error
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("update bookmark: %w", err)
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id uint) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// applyBookmarkUpdate copies the fields present in req onto b. Omitted fields
// keep their stored values.
func applyBookmarkUpdate(b *models.Bookmark, req dtos.BookmarkUpdateRequest) error {
	if req.Status != nil {
		st := models.BookmarkStatus(*req.Status)
		if !st.Valid() {
			return fmt.Errorf("%w: status %q", ErrInvalidInput, *req.Status)
		}
		b.Status = st
	}
	if req.Memo != nil {
		b.Memo = *req.Memo
	}
	if req.NextActionDate != nil {
		next, err := parseOptionalDate(*req.NextActionDate)
		if err != nil {
			return err
		}
		b.NextActionDate = next
	}
	if req.IsNotified != nil {
		b.IsNotified = *req.IsNotified
	}
	return nil
}
