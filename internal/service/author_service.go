// Package service contains business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
	"github.com/roguepikachu/libraryual/pkg/logger"
	"github.com/samber/lo"
)

// ErrAuthorNotFound matches every NotFoundError via errors.Is.
var ErrAuthorNotFound = errors.New("author not found")

// NotFoundError reports that no author exists with ID.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("author %d not found", e.ID)
}

// Is lets errors.Is(err, ErrAuthorNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrAuthorNotFound
}

// AuthorService mediates between AuthorDTOs and the author store.
type AuthorService struct {
	repo repository.AuthorRepository
}

// NewAuthorService creates a new AuthorService backed by repo.
func NewAuthorService(repo repository.AuthorRepository) *AuthorService {
	return &AuthorService{repo: repo}
}

// requireAuthor loads the author or fails with NotFoundError. Update and Delete
// go through here before touching the store.
func (s *AuthorService) requireAuthor(ctx context.Context, id int64) (domain.Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Author{}, storeError(id, "find", err)
	}
	return a, nil
}

// storeError turns a store not-found into NotFoundError and wraps everything else.
func storeError(id int64, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	return fmt.Errorf("%s author %d: %w", op, id, err)
}

// FindByID returns the author with the given id.
func (s *AuthorService) FindByID(ctx context.Context, id int64) (domain.AuthorDTO, error) {
	a, err := s.requireAuthor(ctx, id)
	if err != nil {
		return domain.AuthorDTO{}, err
	}
	return a.ToDTO(), nil
}

// FindAll returns every author in store order.
func (s *AuthorService) FindAll(ctx context.Context) ([]domain.AuthorDTO, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all authors: %w", err)
	}
	return lo.Map(authors, func(a domain.Author, _ int) domain.AuthorDTO { return a.ToDTO() }), nil
}

// Insert persists a new author. Any id on dto is ignored; the store assigns one.
func (s *AuthorService) Insert(ctx context.Context, dto domain.AuthorDTO) (domain.AuthorDTO, error) {
	saved, err := s.repo.Save(ctx, domain.Author{Name: dto.Name})
	if err != nil {
		return domain.AuthorDTO{}, fmt.Errorf("insert author: %w", err)
	}
	logger.WithField(ctx, "author_id", saved.ID).Info("author inserted")
	return saved.ToDTO(), nil
}

// Update renames an existing author. The id never changes.
func (s *AuthorService) Update(ctx context.Context, id int64, dto domain.AuthorDTO) (domain.AuthorDTO, error) {
	a, err := s.requireAuthor(ctx, id)
	if err != nil {
		return domain.AuthorDTO{}, err
	}
	a.Name = dto.Name
	saved, err := s.repo.Save(ctx, a)
	if err != nil {
		// row removed between lookup and write
		return domain.AuthorDTO{}, storeError(id, "update", err)
	}
	logger.WithField(ctx, "author_id", saved.ID).Info("author updated")
	return saved.ToDTO(), nil
}

// Delete removes an existing author.
func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.requireAuthor(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return storeError(id, "delete", err)
	}
	logger.WithField(ctx, "author_id", id).Info("author deleted")
	return nil
}
