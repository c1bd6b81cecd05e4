// Package redis provides a Redis-backed implementation of the author repository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
)

const (
	keySeq   = "authors:seq"
	keyIndex = "authors:index"
)

func keyAuthor(id int64) string { return "author:" + strconv.FormatInt(id, 10) }

// raiseSeq moves the id sequence forward so explicitly saved ids are never handed out again.
var raiseSeq = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
if cur < tonumber(ARGV[1]) then
  redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// AuthorRepository implements repository.AuthorRepository using Redis as backend.
// Authors are stored as JSON under author:<id>; a sorted set scored by id keeps listing order.
type AuthorRepository struct {
	client *redis.Client
}

// NewAuthorRepository creates a new Redis-backed author repository.
func NewAuthorRepository(client *redis.Client) *AuthorRepository {
	return &AuthorRepository{client: client}
}

// FindByID retrieves an author by id.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (domain.Author, error) {
	val, err := r.client.Get(ctx, keyAuthor(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Author{}, repository.ErrNotFound
		}
		return domain.Author{}, fmt.Errorf("redis get: %w", err)
	}
	var a domain.Author
	if err := json.Unmarshal(val, &a); err != nil {
		return domain.Author{}, fmt.Errorf("unmarshal: %w", err)
	}
	return a, nil
}

// FindAll returns every author ordered by id.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]domain.Author, error) {
	ids, err := r.client.ZRange(ctx, keyIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrange: %w", err)
	}
	res := make([]domain.Author, 0, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, "author:"+id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// index entry without a value
			continue
		}
		var a domain.Author
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}
		res = append(res, a)
	}
	return res, nil
}

// Save stores the author, assigning the next sequence id when ID is zero.
func (r *AuthorRepository) Save(ctx context.Context, a domain.Author) (domain.Author, error) {
	if a.ID == 0 {
		id, err := r.client.Incr(ctx, keySeq).Result()
		if err != nil {
			return domain.Author{}, fmt.Errorf("redis incr: %w", err)
		}
		a.ID = id
	} else if err := raiseSeq.Run(ctx, r.client, []string{keySeq}, a.ID).Err(); err != nil {
		return domain.Author{}, fmt.Errorf("redis raise seq: %w", err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		return domain.Author{}, err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyAuthor(a.ID), data, 0)
		pipe.ZAdd(ctx, keyIndex, &redis.Z{Score: float64(a.ID), Member: strconv.FormatInt(a.ID, 10)})
		return nil
	})
	if err != nil {
		return domain.Author{}, fmt.Errorf("redis save: %w", err)
	}
	return a, nil
}

// DeleteByID removes the author and its index entry.
func (r *AuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, keyAuthor(id))
		pipe.ZRem(ctx, keyIndex, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	if del.Val() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AuthorRepository = (*AuthorRepository)(nil)
