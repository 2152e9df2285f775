package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

type stubAuthorRepo struct {
	authors map[string]*domain.Author
	nextID  int
	listErr error
}

func newStubAuthorRepo() *stubAuthorRepo {
	return &stubAuthorRepo{authors: make(map[string]*domain.Author)}
}

func (r *stubAuthorRepo) Create(_ context.Context, author *domain.Author) (*domain.Author, error) {
	r.nextID++
	created := *author
	created.ID = fmt.Sprintf("author-%d", r.nextID)
	r.authors[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubAuthorRepo) FindByID(_ context.Context, id string) (*domain.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, domain.ErrAuthorNotFound
	}
	out := *a
	return &out, nil
}

func (r *stubAuthorRepo) List(_ context.Context) ([]*domain.Author, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Author, 0, len(r.authors))
	for i := 1; i <= r.nextID; i++ {
		if a, ok := r.authors[fmt.Sprintf("author-%d", i)]; ok {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubAuthorRepo) Update(_ context.Context, author *domain.Author) error {
	if _, ok := r.authors[author.ID]; !ok {
		return domain.ErrAuthorNotFound
	}
	copy := *author
	r.authors[author.ID] = &copy
	return nil
}

func (r *stubAuthorRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.authors[id]; !ok {
		return domain.ErrAuthorNotFound
	}
	delete(r.authors, id)
	return nil
}

type stubBookRepo struct {
	books  map[string]*domain.Book
	nextID int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) isbnTaken(isbn, excludeID string) bool {
	for _, b := range r.books {
		if b.ISBN == isbn && b.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if r.isbnTaken(book.ISBN, "") {
		return nil, domain.ErrDuplicateISBN
	}
	r.nextID++
	created := *book
	created.ID = fmt.Sprintf("book-%d", r.nextID)
	r.books[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	out := *b
	return &out, nil
}

func (r *stubBookRepo) List(_ context.Context) ([]*domain.Book, error) {
	out := make([]*domain.Book, 0, len(r.books))
	for i := 1; i <= r.nextID; i++ {
		if b, ok := r.books[fmt.Sprintf("book-%d", i)]; ok {
			copy := *b
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return domain.ErrBookNotFound
	}
	if r.isbnTaken(book.ISBN, book.ID) {
		return domain.ErrDuplicateISBN
	}
	copy := *book
	r.books[book.ID] = &copy
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubBookRepo) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	var n int64
	for _, b := range r.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// stubCache stores JSON-encoded entries in memory, mirroring the round-trip
// behavior of the Redis-backed cache.
type stubCache struct {
	entries     map[string][]byte
	getErr      error
	sets        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.invalidated = append(c.invalidated, key)
	}
	return nil
}
