// Package cached provides a caching wrapper over a primary author repository using Redis.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// key helpers; the cache: prefix keeps entries apart from the redis-backed store's own keys.
const keyList = "cache:authors:all"

func keyAuthor(id int64) string { return "cache:author:" + strconv.FormatInt(id, 10) }

// AuthorRepository is a cache-aside repository combining Redis with a primary store.
// Redis errors never fail a call; the primary store is authoritative.
type AuthorRepository struct {
	primary repository.AuthorRepository
	redis   *redis.Client
	ttl     time.Duration
}

// NewAuthorRepository creates a new cached repository.
func NewAuthorRepository(primary repository.AuthorRepository, redis *redis.Client, ttl time.Duration) *AuthorRepository {
	return &AuthorRepository{primary: primary, redis: redis, ttl: ttl}
}

// FindByID attempts Redis then falls back to primary. Misses are not cached.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (domain.Author, error) {
	var a domain.Author
	if r.get(ctx, keyAuthor(id), &a) {
		return a, nil
	}
	a, err := r.primary.FindByID(ctx, id)
	if err != nil {
		return domain.Author{}, err
	}
	r.set(ctx, keyAuthor(a.ID), a)
	return a, nil
}

// FindAll caches the full listing under a single key.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]domain.Author, error) {
	var items []domain.Author
	if r.get(ctx, keyList, &items) && items != nil {
		return items, nil
	}
	items, err := r.primary.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, keyList, items)
	return items, nil
}

// Save writes through to primary, refreshes the entry and drops the listing.
func (r *AuthorRepository) Save(ctx context.Context, a domain.Author) (domain.Author, error) {
	saved, err := r.primary.Save(ctx, a)
	if err != nil {
		return domain.Author{}, err
	}
	r.set(ctx, keyAuthor(saved.ID), saved)
	r.invalidate(ctx, keyList)
	return saved, nil
}

// DeleteByID deletes from primary and evicts the entry and the listing.
func (r *AuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.primary.DeleteByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	r.invalidate(ctx, keyAuthor(id), keyList)
	return err
}

func (r *AuthorRepository) get(ctx context.Context, key string, dst any) bool {
	val, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithField(ctx, "key", key).Warnf("cache get failed: %v", err)
		}
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (r *AuthorRepository) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		logger.WithField(ctx, "key", key).Warnf("cache set failed: %v", err)
	}
}

func (r *AuthorRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		logger.With(ctx, map[string]any{"keys": keys}).Warnf("cache invalidate failed: %v", err)
	}
}

var _ repository.AuthorRepository = (*AuthorRepository)(nil)
