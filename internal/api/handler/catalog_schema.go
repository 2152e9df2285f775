package handler

// Request and response types owned by the transport layer. These are
// intentionally separate from ports/domain types so the JSON contract is not
// coupled to internal service changes.

type authorRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name"  validate:"required,max=50"`
	Bio       string `json:"bio"        validate:"max=250"`
}

type authorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

type bookRequest struct {
	Title    string  `json:"title"     validate:"required,max=50"`
	Year     int     `json:"year"      validate:"required,gte=1000"`
	ISBN     string  `json:"isbn"      validate:"required,max=50"`
	Summary  string  `json:"summary"   validate:"max=250"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"     validate:"gte=0"`
	AuthorID string  `json:"author_id" validate:"required"`
}

// bookResponse is the lightweight item used in list responses.
// It intentionally omits isbn and summary to keep payloads small.
type bookResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	AuthorID   string  `json:"author_id"`
	AuthorName string  `json:"author_name"`
}

type bookDetailResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	ISBN       string  `json:"isbn"`
	Summary    string  `json:"summary"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	AuthorID   string  `json:"author_id"`
	AuthorName string  `json:"author_name"`
}
