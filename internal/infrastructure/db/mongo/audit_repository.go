package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstoreapp/bookstore-api/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository implements ports.AuditRecorder on MongoDB. Events are an
// append-only trail; nothing reads them on the request path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Type      string `bson:"type"`
	Email     string `bson:"email"`
	UserID    string `bson:"user_id,omitempty"`
	Success   bool   `bson:"success"`
	Reason    string `bson:"reason,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Record(ctx context.Context, event ports.AuditEvent) error {
	doc := auditDoc{
		Type:      event.Type,
		Email:     event.Email,
		UserID:    event.UserID,
		Success:   event.Success,
		Reason:    event.Reason,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
