package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstoreapp/bookstore-api/internal/api/metrics"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

// BookHandler handles HTTP requests for book catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List returns all books with their resolved author names.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = bookResponse{
			ID:         b.Book.ID,
			Title:      b.Book.Title,
			Year:       b.Book.Year,
			Image:      b.Book.Image,
			Price:      b.Book.Price,
			AuthorID:   b.Book.AuthorID,
			AuthorName: b.AuthorName,
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single book with full details.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookDetailResponse{
		ID:         detail.Book.ID,
		Title:      detail.Book.Title,
		Year:       detail.Book.Year,
		ISBN:       detail.Book.ISBN,
		Summary:    detail.Book.Summary,
		Image:      detail.Book.Image,
		Price:      detail.Book.Price,
		AuthorID:   detail.Book.AuthorID,
		AuthorName: detail.AuthorName,
	})
}

// Create adds a new book. The author must exist and the ISBN must be unique.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  bookDetailResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), toBookInput(req))
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("book", "create").Inc()
	return c.JSON(http.StatusCreated, bookDetailResponse{
		ID:       book.ID,
		Title:    book.Title,
		Year:     book.Year,
		ISBN:     book.ISBN,
		Summary:  book.Summary,
		Image:    book.Image,
		Price:    book.Price,
		AuthorID: book.AuthorID,
	})
}

// Update replaces a book's fields.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Book id"
// @Param        body  body  bookRequest  true  "Book details"
// @Success      204
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.service.Update(c.Request().Context(), c.Param("id"), toBookInput(req)); err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("book", "update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a book.
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("book", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func toBookInput(req bookRequest) ports.BookInput {
	return ports.BookInput{
		Title:    req.Title,
		Year:     req.Year,
		ISBN:     req.ISBN,
		Summary:  req.Summary,
		Image:    req.Image,
		Price:    req.Price,
		AuthorID: req.AuthorID,
	}
}
