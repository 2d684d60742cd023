package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
	"gorm.io/gorm"
)

type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// ParseEventTime accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func ParseEventTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, ok := board.ParseDate(raw); ok {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidInput, raw)
	}
	return t, nil
}

// Create adds a schedule to one of the user's own bookmarks.
func (s *ScheduleService) Create(ctx context.Context, userID uint, req dtos.ScheduleCreateRequest) (models.Schedule, error) {
	typ := models.ScheduleType(req.Type)
	if !typ.Valid() {
		return models.Schedule{}, fmt.Errorf("%w: type %q", ErrInvalidInput, req.Type)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Schedule{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	at, err := ParseEventTime(req.EventDate)
	if err != nil {
		return models.Schedule{}, err
	}

	db := s.DB.WithContext(ctx)
	var n int64
	if err := db.Model(&models.Bookmark{}).
		Where("id = ? AND user_id = ?", req.BookmarkID, userID).
		Count(&n).Error; err != nil {
		return models.Schedule{}, fmt.Errorf("find bookmark: %w", err)
	}
	if n == 0 {
		return models.Schedule{}, ErrNotFound
	}

	sc := models.Schedule{
		UserID:     userID,
		BookmarkID: req.BookmarkID,
		Type:       typ,
		EventDate:  at,
		Title:      title,
	}
	if err := db.Create(&sc).Error; err != nil {
		return models.Schedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return sc, nil
}

// ListMine returns the user's schedules by event time. from and to are
// optional inclusive bounds.
func (s *ScheduleService) ListMine(ctx context.Context, userID uint, q dtos.ScheduleListQuery) ([]models.Schedule, error) {
	tx := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if q.From != "" {
		from, err := ParseEventTime(q.From)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("event_date >= ?", from)
	}
	if q.To != "" {
		to, err := scheduleUpperBound(q.To)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("event_date <= ?", to)
	}

	list := make([]models.Schedule, 0)
	if err := tx.Order("event_date ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return list, nil
}

// scheduleUpperBound parses the inclusive "to" bound. A bare date covers the
// whole day.
func scheduleUpperBound(raw string) (time.Time, error) {
	to, err := ParseEventTime(raw)
	if err != nil {
		return time.Time{}, err
	}
	if _, ok := board.ParseDate(strings.TrimSpace(raw)); ok {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return to, nil
}
