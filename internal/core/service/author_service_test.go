package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

func authorInput() ports.AuthorInput {
	return ports.AuthorInput{
		FirstName: "Terry",
		LastName:  "Pratchett",
		Bio:       "Fantasy novelist.",
	}
}

func TestAuthorService_CreateAndGet(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthorService(repo, newStubBookRepo(), newStubCache(), zerolog.Nop())

	created, err := svc.Create(context.Background(), authorInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "Terry" || got.LastName != "Pratchett" {
		t.Fatalf("unexpected author: %+v", got)
	}
}

func TestAuthorService_Create_Validation(t *testing.T) {
	svc := NewAuthorService(newStubAuthorRepo(), newStubBookRepo(), newStubCache(), zerolog.Nop())

	cases := []struct {
		name   string
		mutate func(*ports.AuthorInput)
		field  string
	}{
		{"missing first name", func(in *ports.AuthorInput) { in.FirstName = "" }, "first_name"},
		{"first name too long", func(in *ports.AuthorInput) { in.FirstName = strings.Repeat("a", 51) }, "first_name"},
		{"missing last name", func(in *ports.AuthorInput) { in.LastName = "" }, "last_name"},
		{"bio too long", func(in *ports.AuthorInput) { in.Bio = strings.Repeat("b", 251) }, "bio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := authorInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			var ve domain.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if ve[0].Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, ve[0].Field)
			}
		})
	}
}

func TestAuthorService_Get_NotFound(t *testing.T) {
	svc := NewAuthorService(newStubAuthorRepo(), newStubBookRepo(), newStubCache(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestAuthorService_List_UsesCache(t *testing.T) {
	repo := newStubAuthorRepo()
	cache := newStubCache()
	svc := NewAuthorService(repo, newStubBookRepo(), cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), authorInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one author, got %d", len(first))
	}
	if cache.sets != 1 {
		t.Fatalf("expected list to populate the cache")
	}

	// Bypass the service to change the store; the cached listing must win.
	repo.authors["author-1"].FirstName = "Changed"

	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if second[0].FirstName != "Terry" {
		t.Fatalf("expected cached result, got %+v", second[0])
	}
}

func TestAuthorService_List_CacheFailureFallsBack(t *testing.T) {
	repo := newStubAuthorRepo()
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	svc := NewAuthorService(repo, newStubBookRepo(), cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), authorInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	authors, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the listing: %v", err)
	}
	if len(authors) != 1 {
		t.Fatalf("expected store fallback, got %d authors", len(authors))
	}
}

func TestAuthorService_Update_InvalidatesBothCaches(t *testing.T) {
	repo := newStubAuthorRepo()
	cache := newStubCache()
	svc := NewAuthorService(repo, newStubBookRepo(), cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), authorInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	input := authorInput()
	input.LastName = "Pratchett-Updated"
	if _, err := svc.Update(context.Background(), created.ID, input); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Book listings embed the author name, so the book cache must drop too.
	foundBooks := false
	for _, key := range cache.invalidated {
		if key == cacheKeyBooks {
			foundBooks = true
		}
	}
	if !foundBooks {
		t.Fatalf("book cache not invalidated on author update: %v", cache.invalidated)
	}
}

func TestAuthorService_Delete_BlockedByBooks(t *testing.T) {
	authorRepo := newStubAuthorRepo()
	bookRepo := newStubBookRepo()
	svc := NewAuthorService(authorRepo, bookRepo, newStubCache(), zerolog.Nop())

	created, err := svc.Create(context.Background(), authorInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := bookRepo.Create(context.Background(), &domain.Book{
		Title:    "Small Gods",
		Year:     1992,
		ISBN:     "978-0552152976",
		AuthorID: created.ID,
	}); err != nil {
		t.Fatalf("seed book: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrAuthorHasBooks) {
		t.Fatalf("expected ErrAuthorHasBooks, got %v", err)
	}
	if _, err := authorRepo.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("author must survive a blocked delete: %v", err)
	}
}

func TestAuthorService_Delete_Success(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthorService(repo, newStubBookRepo(), newStubCache(), zerolog.Nop())

	created, err := svc.Create(context.Background(), authorInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrAuthorNotFound) {
		t.Fatalf("author should be gone, got %v", err)
	}
}
