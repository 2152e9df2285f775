package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

const authorsCollection = "authors"

// AuthorRepository implements ports.AuthorRepository on MongoDB.
type AuthorRepository struct {
	coll *mongo.Collection
}

func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{coll: db.Collection(authorsCollection)}
}

type authorDoc struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Bio       string `bson:"bio,omitempty"`
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	doc := authorDoc{
		ID:        uuid.NewString(),
		FirstName: author.FirstName,
		LastName:  author.LastName,
		Bio:       author.Bio,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert author: %w", err)
	}

	created := *author
	created.ID = doc.ID
	return &created, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	var doc authorDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return toAuthor(doc), nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]*domain.Author, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer cursor.Close(ctx)

	var authors []*domain.Author
	for cursor.Next(ctx) {
		var doc authorDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode author: %w", err)
		}
		authors = append(authors, toAuthor(doc))
	}
	return authors, cursor.Err()
}

func (r *AuthorRepository) Update(ctx context.Context, author *domain.Author) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": author.ID},
		bson.M{"$set": bson.M{
			"first_name": author.FirstName,
			"last_name":  author.LastName,
			"bio":        author.Bio,
		}},
	)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAuthorNotFound
	}
	return nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAuthorNotFound
	}
	return nil
}

func toAuthor(doc authorDoc) *domain.Author {
	return &domain.Author{
		ID:        doc.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Bio:       doc.Bio,
	}
}
