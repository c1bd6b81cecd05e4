// Package repository defines the author store contract shared by all backends.
package repository

import (
	"context"
	"errors"

	"github.com/roguepikachu/libraryual/internal/domain"
)

// ErrNotFound is returned by stores when no author has the requested id.
var ErrNotFound = errors.New("not found")

// AuthorRepository is a key-based store of authors.
type AuthorRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Author, error)
	// FindAll returns every author ordered by id.
	FindAll(ctx context.Context) ([]domain.Author, error)
	// Save inserts the author when ID is zero and assigns an id; otherwise it updates in place.
	Save(ctx context.Context, a domain.Author) (domain.Author, error)
	DeleteByID(ctx context.Context, id int64) error
}
