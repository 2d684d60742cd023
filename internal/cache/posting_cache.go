package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/redis/go-redis/v9"
)

const (
	keyList   = "postings:list:"
	keyDetail = "postings:detail:"
	keyStats  = "postings:stats"
)

// PostingCache caches posting list pages, details and stats in Redis.
type PostingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPostingCache(rdb *redis.Client, ttl time.Duration) *PostingCache {
	return &PostingCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached page for q, or nil on a miss.
func (c *PostingCache) GetList(ctx context.Context, q dtos.PostingListQuery) ([]dtos.PostingSummary, error) {
	var list []dtos.PostingSummary
	ok, err := c.get(ctx, ListKey(q), &list)
	if err != nil || !ok {
		return nil, err
	}
	return list, nil
}

func (c *PostingCache) SetList(ctx context.Context, q dtos.PostingListQuery, list []dtos.PostingSummary) error {
	return c.set(ctx, ListKey(q), list)
}

// GetDetail returns the cached posting, or nil on a miss.
func (c *PostingCache) GetDetail(ctx context.Context, id string) (*dtos.PostingDetail, error) {
	var d dtos.PostingDetail
	ok, err := c.get(ctx, keyDetail+id, &d)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (c *PostingCache) SetDetail(ctx context.Context, d dtos.PostingDetail) error {
	return c.set(ctx, keyDetail+d.ID, d)
}

// GetStats returns cached stats, or nil on a miss. Stats depend on the
// current day so the key carries it.
func (c *PostingCache) GetStats(ctx context.Context, day string) (*dtos.PostingStats, error) {
	var s dtos.PostingStats
	ok, err := c.get(ctx, keyStats+":"+day, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (c *PostingCache) SetStats(ctx context.Context, day string, s dtos.PostingStats) error {
	return c.set(ctx, keyStats+":"+day, s)
}

// InvalidateAll drops every posting key. Called after a posting is created.
func (c *PostingCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "postings:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *PostingCache) get(ctx context.Context, key string, v any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *PostingCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// ListKey is the cache key for one list page. Keyword and tag are
// normalized so equivalent queries share an entry.
func ListKey(q dtos.PostingListQuery) string {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return keyList + normalizeQuery(q.Keyword) + "|" + normalizeQuery(q.Tag) + "|" + strconv.Itoa(page)
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
