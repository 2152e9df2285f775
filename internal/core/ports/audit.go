package ports

import (
	"context"
	"time"
)

// Audit event types.
const (
	AuditRegister = "register"
	AuditLogin    = "login"
)

// AuditEvent records the outcome of an authentication attempt. Events are
// processed asynchronously; they never block or fail the request that
// produced them.
type AuditEvent struct {
	Type      string
	Email     string
	UserID    string
	Success   bool
	Reason    string
	Timestamp time.Time
}

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}

// AuditSink accepts audit events for asynchronous processing.
type AuditSink interface {
	Enqueue(event AuditEvent)
}
