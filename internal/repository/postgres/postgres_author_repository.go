// Package postgres provides a Postgres-backed implementation of the author repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/repository"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	queryFindByID = `SELECT id, name FROM authors WHERE id = $1`
	queryFindAll  = `SELECT id, name FROM authors ORDER BY id`
	queryInsert   = `INSERT INTO authors (name) VALUES ($1) RETURNING id, name`
	queryUpdate   = `UPDATE authors SET name = $1 WHERE id = $2 RETURNING id, name`
	queryDelete   = `DELETE FROM authors WHERE id = $1`
)

// AuthorRepository implements repository.AuthorRepository using Postgres.
type AuthorRepository struct {
	db DB
}

// NewAuthorRepository creates a new Postgres-backed author repository.
func NewAuthorRepository(db DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// EnsureSchema creates required tables if they don't exist.
func (r *AuthorRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS authors (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL
);
`
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// FindByID retrieves an author by id.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (domain.Author, error) {
	var a domain.Author
	err := r.db.QueryRow(ctx, queryFindByID, id).Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Author{}, repository.ErrNotFound
		}
		return domain.Author{}, fmt.Errorf("query author: %w", err)
	}
	return a, nil
}

// FindAll returns all authors ordered by id.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.db.Query(ctx, queryFindAll)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()
	res := make([]domain.Author, 0)
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return res, nil
}

// Save inserts a new author (ID == 0) or updates the name of an existing one.
func (r *AuthorRepository) Save(ctx context.Context, a domain.Author) (domain.Author, error) {
	var (
		saved domain.Author
		err   error
	)
	if a.ID == 0 {
		err = r.db.QueryRow(ctx, queryInsert, a.Name).Scan(&saved.ID, &saved.Name)
		if err != nil {
			return domain.Author{}, fmt.Errorf("insert author: %w", err)
		}
		return saved, nil
	}
	err = r.db.QueryRow(ctx, queryUpdate, a.Name, a.ID).Scan(&saved.ID, &saved.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Author{}, repository.ErrNotFound
		}
		return domain.Author{}, fmt.Errorf("update author: %w", err)
	}
	return saved, nil
}

// DeleteByID removes the author row with the given id.
func (r *AuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AuthorRepository = (*AuthorRepository)(nil)
