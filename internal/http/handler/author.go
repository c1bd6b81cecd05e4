// Package handler provides HTTP handler functions for the library API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/roguepikachu/libraryual/internal/domain"
	"github.com/roguepikachu/libraryual/internal/service"
	"github.com/roguepikachu/libraryual/pkg"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// AuthorService defines the handler's dependency contract.
type AuthorService interface {
	FindByID(ctx context.Context, id int64) (domain.AuthorDTO, error)
	FindAll(ctx context.Context) ([]domain.AuthorDTO, error)
	Insert(ctx context.Context, dto domain.AuthorDTO) (domain.AuthorDTO, error)
	Update(ctx context.Context, id int64, dto domain.AuthorDTO) (domain.AuthorDTO, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorHandler handles HTTP requests for authors.
type AuthorHandler struct {
	svc AuthorService
}

// NewAuthorHandler constructs an AuthorHandler with the given AuthorService.
func NewAuthorHandler(svc AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

// parseID reads the :id path parameter. Ids must be positive integers.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	// Min treats 0 as empty and skips it, so Required must come first.
	err = validation.Validate(id,
		validation.Required.Error("id must be positive"),
		validation.Min(int64(1)).Error("id must be positive"),
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func badRequest(c *gin.Context, message string, details error) {
	body := pkg.NewError("bad_request", message)
	if details != nil {
		body.Error.Details = details.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	if errors.Is(err, service.ErrAuthorNotFound) {
		logger.Debug(ctx, "%s: %s", op, err.Error())
		c.JSON(http.StatusNotFound, pkg.NewError("not_found", err.Error()))
		return
	}
	logger.Error(ctx, "failed to %s: %s", op, err.Error())
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, pkg.NewError("internal_error", "internal server error"))
}

// List handles listing all authors.
func (h *AuthorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.svc.FindAll(ctx)
	if err != nil {
		writeError(c, "list authors", err)
		return
	}
	logger.WithField(ctx, "count", len(items)).Debug("authors listed")
	c.JSON(http.StatusOK, items)
}

// Get handles fetching an author by ID.
func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		badRequest(c, "invalid id", err)
		return
	}
	dto, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get author", err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Create handles the creation of a new author.
func (h *AuthorHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.AuthorRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		badRequest(c, "invalid request", err)
		return
	}
	dto, err := h.svc.Insert(ctx, req.ToDTO())
	if err != nil {
		writeError(c, "create author", err)
		return
	}
	c.Header("Location", pkg.AuthorsPath+"/"+strconv.FormatInt(dto.ID, 10))
	c.JSON(http.StatusCreated, dto)
}

// Update handles renaming an existing author.
func (h *AuthorHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c)
	if err != nil {
		badRequest(c, "invalid id", err)
		return
	}
	var req domain.AuthorRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		badRequest(c, "invalid request", err)
		return
	}
	dto, err := h.svc.Update(ctx, id, req.ToDTO())
	if err != nil {
		writeError(c, "update author", err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Delete handles removing an author.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		badRequest(c, "invalid id", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete author", err)
		return
	}
	c.Status(http.StatusNoContent)
}
