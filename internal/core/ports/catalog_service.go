package ports

import (
	"context"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

// AuthorInput carries the writable fields of an author.
type AuthorInput struct {
	FirstName string
	LastName  string
	Bio       string
}

// AuthorService defines use-case operations for authors.
type AuthorService interface {
	Create(ctx context.Context, input AuthorInput) (*domain.Author, error)
	Get(ctx context.Context, id string) (*domain.Author, error)
	List(ctx context.Context) ([]*domain.Author, error)
	Update(ctx context.Context, id string, input AuthorInput) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title    string
	Year     int
	ISBN     string
	Summary  string
	Image    string
	Price    float64
	AuthorID string
}

// BookDetail is the full book view including the resolved author name.
type BookDetail struct {
	Book       domain.Book
	AuthorName string
}

// BookService defines use-case operations for books. Writes enforce that
// AuthorID references an existing author and that ISBN stays unique.
type BookService interface {
	Create(ctx context.Context, input BookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*BookDetail, error)
	List(ctx context.Context) ([]*BookDetail, error)
	Update(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
