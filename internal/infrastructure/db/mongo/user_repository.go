package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstoreapp/bookstore-api/internal/core/domain"
)

const (
	usersCollection = "users"
	rolesCollection = "roles"
)

// UserRepository implements ports.CredentialStore on MongoDB. The unique
// index on normalized_email is the authority for duplicate emails under
// concurrent registration.
type UserRepository struct {
	users *mongo.Collection
	roles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(usersCollection),
		roles: db.Collection(rolesCollection),
	}
}

type claimDoc struct {
	Name  string `bson:"name"`
	Value string `bson:"value"`
}

type userDoc struct {
	ID              string     `bson:"_id"`
	Email           string     `bson:"email"`
	NormalizedEmail string     `bson:"normalized_email"`
	FirstName       string     `bson:"first_name"`
	LastName        string     `bson:"last_name"`
	PasswordHash    string     `bson:"password_hash"`
	Roles           []string   `bson:"roles"`
	CustomClaims    []claimDoc `bson:"custom_claims,omitempty"`
	CreatedAt       int64      `bson:"created_at"`
	UpdatedAt       int64      `bson:"updated_at"`
}

type roleDoc struct {
	Name           string `bson:"name"`
	NormalizedName string `bson:"normalized_name"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		ID:              uuid.NewString(),
		Email:           user.Email,
		NormalizedEmail: domain.NormalizeEmail(user.Email),
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		PasswordHash:    user.PasswordHash,
		Roles:           []string{},
		CreatedAt:       user.CreatedAt.Unix(),
		UpdatedAt:       user.UpdatedAt.Unix(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = doc.ID
	created.Roles = nil
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	filter := bson.M{"normalized_email": domain.NormalizeEmail(email)}
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toUser(doc), nil
}

func (r *UserRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get roles: %w", err)
	}
	return doc.Roles, nil
}

func (r *UserRepository) GetCustomClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get custom claims: %w", err)
	}
	claims := make([]domain.Claim, len(doc.CustomClaims))
	for i, c := range doc.CustomClaims {
		claims[i] = domain.Claim{Name: c.Name, Value: c.Value}
	}
	return claims, nil
}

// AddRole binds userID to roleName. The role must exist in the seeded roles
// collection; bindings never reference unknown roles.
func (r *UserRepository) AddRole(ctx context.Context, userID, roleName string) error {
	normalized := domain.NormalizeRoleName(roleName)
	var role roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"normalized_name": normalized}).Decode(&role); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrRoleNotFound
		}
		return fmt.Errorf("find role: %w", err)
	}

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"roles": role.Name},
			"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
		},
	)
	if err != nil {
		return fmt.Errorf("add role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toUser(doc userDoc) *domain.User {
	claims := make([]domain.Claim, len(doc.CustomClaims))
	for i, c := range doc.CustomClaims {
		claims[i] = domain.Claim{Name: c.Name, Value: c.Value}
	}
	return &domain.User{
		ID:           doc.ID,
		Email:        doc.Email,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		PasswordHash: doc.PasswordHash,
		Roles:        doc.Roles,
		CustomClaims: claims,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
