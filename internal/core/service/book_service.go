package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

const (
	maxTitleLen   = 50
	maxISBNLen    = 50
	maxSummaryLen = 250
	minBookYear   = 1000
)

type bookService struct {
	repo    ports.BookRepository
	authors ports.AuthorRepository
	cache   CatalogCache
	log     zerolog.Logger
}

// NewBookService returns a BookService implementation.
func NewBookService(repo ports.BookRepository, authors ports.AuthorRepository, cache CatalogCache, log zerolog.Logger) ports.BookService {
	return &bookService{repo: repo, authors: authors, cache: cache, log: log}
}

func (s *bookService) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	if ve := validateBookInput(input); len(ve) > 0 {
		return nil, ve
	}

	// Referential integrity: the author must exist before the book is written.
	// The unique ISBN index resolves concurrent-create races at the store.
	if _, err := s.authors.FindByID(ctx, input.AuthorID); err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			return nil, domain.NewValidationError("author_id", "author does not exist")
		}
		return nil, fmt.Errorf("check author: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Book{
		Title:    input.Title,
		Year:     input.Year,
		ISBN:     input.ISBN,
		Summary:  input.Summary,
		Image:    input.Image,
		Price:    input.Price,
		AuthorID: input.AuthorID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateISBN) {
			return nil, err
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.invalidate(ctx, cacheKeyBooks)
	s.log.Info().Str("book_id", created.ID).Str("isbn", created.ISBN).Msg("book created")
	return created, nil
}

func (s *bookService) Get(ctx context.Context, id string) (*ports.BookDetail, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.authors.FindByID(ctx, book.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolve book author: %w", err)
	}

	return &ports.BookDetail{
		Book:       *book,
		AuthorName: author.FirstName + " " + author.LastName,
	}, nil
}

func (s *bookService) List(ctx context.Context) ([]*ports.BookDetail, error) {
	var cached []*ports.BookDetail
	if hit, err := s.cache.Get(ctx, cacheKeyBooks, &cached); err != nil {
		s.log.Warn().Err(err).Msg("book cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.FirstName + " " + a.LastName
	}

	details := make([]*ports.BookDetail, len(books))
	for i, b := range books {
		details[i] = &ports.BookDetail{Book: *b, AuthorName: names[b.AuthorID]}
	}

	if err := s.cache.Set(ctx, cacheKeyBooks, details); err != nil {
		s.log.Warn().Err(err).Msg("book cache write failed")
	}
	return details, nil
}

func (s *bookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	if ve := validateBookInput(input); len(ve) > 0 {
		return nil, ve
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AuthorID != book.AuthorID {
		if _, err := s.authors.FindByID(ctx, input.AuthorID); err != nil {
			if errors.Is(err, domain.ErrAuthorNotFound) {
				return nil, domain.NewValidationError("author_id", "author does not exist")
			}
			return nil, fmt.Errorf("check author: %w", err)
		}
	}

	book.Title = input.Title
	book.Year = input.Year
	book.ISBN = input.ISBN
	book.Summary = input.Summary
	book.Image = input.Image
	book.Price = input.Price
	book.AuthorID = input.AuthorID
	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, domain.ErrDuplicateISBN) {
			return nil, err
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.invalidate(ctx, cacheKeyBooks)
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.invalidate(ctx, cacheKeyBooks)
	s.log.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func (s *bookService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func validateBookInput(input ports.BookInput) domain.ValidationErrors {
	var ve domain.ValidationErrors
	if input.Title == "" {
		ve = append(ve, domain.FieldError{Field: "title", Reason: "title is required"})
	} else if len(input.Title) > maxTitleLen {
		ve = append(ve, domain.FieldError{Field: "title", Reason: fmt.Sprintf("title must be at most %d characters", maxTitleLen)})
	}
	if input.Year < minBookYear {
		ve = append(ve, domain.FieldError{Field: "year", Reason: fmt.Sprintf("year must be %d or later", minBookYear)})
	}
	if input.ISBN == "" {
		ve = append(ve, domain.FieldError{Field: "isbn", Reason: "isbn is required"})
	} else if len(input.ISBN) > maxISBNLen {
		ve = append(ve, domain.FieldError{Field: "isbn", Reason: fmt.Sprintf("isbn must be at most %d characters", maxISBNLen)})
	}
	if len(input.Summary) > maxSummaryLen {
		ve = append(ve, domain.FieldError{Field: "summary", Reason: fmt.Sprintf("summary must be at most %d characters", maxSummaryLen)})
	}
	if input.Price < 0 {
		ve = append(ve, domain.FieldError{Field: "price", Reason: "price must not be negative"})
	}
	if input.AuthorID == "" {
		ve = append(ve, domain.FieldError{Field: "author_id", Reason: "author_id is required"})
	}
	return ve
}
