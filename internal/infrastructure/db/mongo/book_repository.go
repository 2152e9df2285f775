package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

const booksCollection = "books"

// BookRepository implements ports.BookRepository on MongoDB. The unique index
// on isbn is the authority for ISBN uniqueness under concurrent writes.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type bookDoc struct {
	ID       string  `bson:"_id"`
	Title    string  `bson:"title"`
	Year     int     `bson:"year"`
	ISBN     string  `bson:"isbn"`
	Summary  string  `bson:"summary,omitempty"`
	Image    string  `bson:"image,omitempty"`
	Price    float64 `bson:"price"`
	AuthorID string  `bson:"author_id"`
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := toBookDoc(book)
	doc.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	created.ID = doc.ID
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return toBook(doc), nil
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	for cursor.Next(ctx) {
		var doc bookDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, toBook(doc))
	}
	return books, cursor.Err()
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	doc := toBookDoc(book)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": book.ID},
		bson.M{"$set": bson.M{
			"title":     doc.Title,
			"year":      doc.Year,
			"isbn":      doc.ISBN,
			"summary":   doc.Summary,
			"image":     doc.Image,
			"price":     doc.Price,
			"author_id": doc.AuthorID,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateISBN
		}
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return 0, fmt.Errorf("count books by author: %w", err)
	}
	return n, nil
}

func toBookDoc(book *domain.Book) bookDoc {
	return bookDoc{
		ID:       book.ID,
		Title:    book.Title,
		Year:     book.Year,
		ISBN:     book.ISBN,
		Summary:  book.Summary,
		Image:    book.Image,
		Price:    book.Price,
		AuthorID: book.AuthorID,
	}
}

func toBook(doc bookDoc) *domain.Book {
	return &domain.Book{
		ID:       doc.ID,
		Title:    doc.Title,
		Year:     doc.Year,
		ISBN:     doc.ISBN,
		Summary:  doc.Summary,
		Image:    doc.Image,
		Price:    doc.Price,
		AuthorID: doc.AuthorID,
	}
}
