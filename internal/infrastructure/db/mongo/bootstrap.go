package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

// EnsureIndexes creates the unique indexes the application relies on for
// concurrent-write safety: one registration per email, one book per ISBN,
// one role per normalized name. Idempotent across restarts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll string
		keys bson.D
	}{
		{usersCollection, bson.D{{Key: "normalized_email", Value: 1}}},
		{booksCollection, bson.D{{Key: "isbn", Value: 1}}},
		{rolesCollection, bson.D{{Key: "normalized_name", Value: 1}}},
	}
	for _, idx := range indexes {
		_, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("create %s index: %w", idx.coll, err)
		}
	}
	return nil
}

// Seed installs the fixed role set and the two bootstrap accounts
// (admin@gmail.com / user@gmail.com, password P@ssword1). Existing documents
// are left untouched, so restarts never rehash or reset credentials.
func Seed(ctx context.Context, db *mongo.Database, hasher ports.PasswordHasher) error {
	roles := db.Collection(rolesCollection)
	for _, role := range domain.SeededRoles() {
		filter := bson.M{"normalized_name": role.NormalizedName}
		update := bson.M{"$setOnInsert": roleDoc{Name: role.Name, NormalizedName: role.NormalizedName}}
		if _, err := roles.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}

	seeds := []struct {
		email     string
		firstName string
		lastName  string
		role      string
	}{
		{"admin@gmail.com", "system", "Admin", domain.RoleAdmin},
		{"user@gmail.com", "system", "User", domain.RoleUser},
	}

	users := NewUserRepository(db)
	for _, seed := range seeds {
		_, err := users.FindByEmail(ctx, seed.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed lookup %s: %w", seed.email, err)
		}

		hash, err := hasher.Hash("P@ssword1")
		if err != nil {
			return fmt.Errorf("seed hash: %w", err)
		}

		now := time.Now().UTC()
		doc := userDoc{
			ID:              uuid.NewString(),
			Email:           seed.email,
			NormalizedEmail: domain.NormalizeEmail(seed.email),
			FirstName:       seed.firstName,
			LastName:        seed.lastName,
			PasswordHash:    hash,
			Roles:           []string{seed.role},
			CreatedAt:       now.Unix(),
			UpdatedAt:       now.Unix(),
		}
		if _, err := db.Collection(usersCollection).InsertOne(ctx, doc); err != nil {
			// A concurrent boot may have inserted the same seed.
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return fmt.Errorf("seed user %s: %w", seed.email, err)
		}
	}
	return nil
}
