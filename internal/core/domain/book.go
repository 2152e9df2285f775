package domain

import "errors"

var ErrBookNotFound = errors.New("book not found")
var ErrDuplicateISBN = errors.New("isbn already exists")

// Book is a catalog entity. AuthorID must reference an existing author and
// ISBN is unique across all books; both are enforced at write time.
type Book struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Year     int     `json:"year"`
	ISBN     string  `json:"isbn"`
	Summary  string  `json:"summary"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	AuthorID string  `json:"author_id"`
}
