package ports

import (
	"context"
	"time"
)

// SessionInput records one successful login.
type SessionInput struct {
	Email   string
	LoginAt time.Time
}

// SessionSink accepts login records for asynchronous persistence. Enqueue is
// fire-and-forget: the login response never waits on the session write.
type SessionSink interface {
	Enqueue(session SessionInput)
}

// SessionRecorder persists a login record.
type SessionRecorder interface {
	Record(ctx context.Context, session SessionInput) error
}
