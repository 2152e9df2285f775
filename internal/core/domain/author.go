package domain

import "errors"

var ErrAuthorNotFound = errors.New("author not found")
var ErrAuthorHasBooks = errors.New("author has books")

// Author is a catalog entity referenced by books.
type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}
