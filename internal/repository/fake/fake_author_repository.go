// Package fake provides an in-memory implementation of repository.AuthorRepository.
package fake

import (
	"context"
	"sort"
	"sync"

	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
)

// AuthorRepository is an in-memory author store. Ids are assigned from a counter
// that only moves forward, so deleted ids are never reused.
type AuthorRepository struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Author
	nextID int64
}

// Option configures the fake repository.
type Option func(*AuthorRepository)

// WithItems seeds the repository with the provided authors (by ID).
func WithItems(items ...domain.Author) Option {
	return func(r *AuthorRepository) {
		for _, a := range items {
			r.byID[a.ID] = a
			if a.ID >= r.nextID {
				r.nextID = a.ID + 1
			}
		}
	}
}

// NewAuthorRepository creates a new in-memory repo.
func NewAuthorRepository(opts ...Option) *AuthorRepository {
	r := &AuthorRepository{byID: make(map[int64]domain.Author), nextID: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *AuthorRepository) FindByID(_ context.Context, id int64) (domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return domain.Author{}, repository.ErrNotFound
}

func (r *AuthorRepository) FindAll(_ context.Context) ([]domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]domain.Author, 0, len(r.byID))
	for _, a := range r.byID {
		items = append(items, a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *AuthorRepository) Save(_ context.Context, a domain.Author) (domain.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	} else if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *AuthorRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Len reports how many authors are stored.
func (r *AuthorRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var _ repository.AuthorRepository = (*AuthorRepository)(nil)
