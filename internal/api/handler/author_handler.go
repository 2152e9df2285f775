package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstoreapp/bookstore-api/internal/api/metrics"
	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

// AuthorHandler handles HTTP requests for author catalog operations.
type AuthorHandler struct {
	service ports.AuthorService
}

func NewAuthorHandler(service ports.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// List returns all authors.
//
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   authorResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/authors [get]
func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]authorResponse, len(authors))
	for i, a := range authors {
		out[i] = toAuthorResponse(a)
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single author.
//
// @Summary      Get an author by id
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author id"
// @Success      200  {object}  authorResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/authors/{id} [get]
func (h *AuthorHandler) Get(c echo.Context) error {
	author, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthorResponse(author))
}

// Create adds a new author.
//
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authorRequest  true  "Author details"
// @Success      201   {object}  authorResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Router       /v1/authors [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	var req authorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author, err := h.service.Create(c.Request().Context(), ports.AuthorInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("author", "create").Inc()
	return c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// Update replaces an author's fields.
//
// @Summary      Update an author
// @Tags         authors
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Author id"
// @Param        body  body  authorRequest  true  "Author details"
// @Success      204
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /v1/authors/{id} [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	var req authorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.AuthorInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("author", "update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an author without books.
//
// @Summary      Delete an author
// @Tags         authors
// @Security     BearerAuth
// @Param        id  path  string  true  "Author id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("author", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func toAuthorResponse(a *domain.Author) authorResponse {
	return authorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
	}
}
