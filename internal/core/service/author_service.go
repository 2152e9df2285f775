package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

const maxBioLen = 250

// CatalogCache abstracts the list-response cache (Redis). Lookups and
// invalidation are best-effort: a cache failure degrades to a store read,
// never to a request failure.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache keys for catalog list responses.
const (
	cacheKeyAuthors = "catalog:authors"
	cacheKeyBooks   = "catalog:books"
)

type authorService struct {
	repo  ports.AuthorRepository
	books ports.BookRepository
	cache CatalogCache
	log   zerolog.Logger
}

// NewAuthorService returns an AuthorService implementation.
func NewAuthorService(repo ports.AuthorRepository, books ports.BookRepository, cache CatalogCache, log zerolog.Logger) ports.AuthorService {
	return &authorService{repo: repo, books: books, cache: cache, log: log}
}

func (s *authorService) Create(ctx context.Context, input ports.AuthorInput) (*domain.Author, error) {
	if ve := validateAuthorInput(input); len(ve) > 0 {
		return nil, ve
	}

	created, err := s.repo.Create(ctx, &domain.Author{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	s.invalidate(ctx, cacheKeyAuthors)
	s.log.Info().Str("author_id", created.ID).Msg("author created")
	return created, nil
}

func (s *authorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]*domain.Author, error) {
	var cached []*domain.Author
	if hit, err := s.cache.Get(ctx, cacheKeyAuthors, &cached); err != nil {
		s.log.Warn().Err(err).Msg("author cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKeyAuthors, authors); err != nil {
		s.log.Warn().Err(err).Msg("author cache write failed")
	}
	return authors, nil
}

func (s *authorService) Update(ctx context.Context, id string, input ports.AuthorInput) (*domain.Author, error) {
	if ve := validateAuthorInput(input); len(ve) > 0 {
		return nil, ve
	}

	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.FirstName = input.FirstName
	author.LastName = input.LastName
	author.Bio = input.Bio
	if err := s.repo.Update(ctx, author); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	// Book listings embed the author name, so both caches go stale.
	s.invalidate(ctx, cacheKeyAuthors, cacheKeyBooks)
	return author, nil
}

// Delete removes an author. Authors with dependent books cannot be removed;
// referential integrity is enforced at write time.
func (s *authorService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.books.CountByAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("count author books: %w", err)
	}
	if n > 0 {
		return domain.ErrAuthorHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}

	s.invalidate(ctx, cacheKeyAuthors)
	s.log.Info().Str("author_id", id).Msg("author deleted")
	return nil
}

func (s *authorService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func validateAuthorInput(input ports.AuthorInput) domain.ValidationErrors {
	var ve domain.ValidationErrors
	if input.FirstName == "" {
		ve = append(ve, domain.FieldError{Field: "first_name", Reason: "first name is required"})
	} else if len(input.FirstName) > maxNameLen {
		ve = append(ve, domain.FieldError{Field: "first_name", Reason: fmt.Sprintf("first name must be at most %d characters", maxNameLen)})
	}
	if input.LastName == "" {
		ve = append(ve, domain.FieldError{Field: "last_name", Reason: "last name is required"})
	} else if len(input.LastName) > maxNameLen {
		ve = append(ve, domain.FieldError{Field: "last_name", Reason: fmt.Sprintf("last name must be at most %d characters", maxNameLen)})
	}
	if len(input.Bio) > maxBioLen {
		ve = append(ve, domain.FieldError{Field: "bio", Reason: fmt.Sprintf("bio must be at most %d characters", maxBioLen)})
	}
	return ve
}
