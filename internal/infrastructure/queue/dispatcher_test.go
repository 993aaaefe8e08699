package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tanit/user-management/internal/core/ports"
)

type capturingRecorder struct {
	mu       sync.Mutex
	sessions []ports.SessionInput
}

func (r *capturingRecorder) Record(_ context.Context, session ports.SessionInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *capturingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func TestDispatcher_DeliversToRecorder(t *testing.T) {
	recorder := &capturingRecorder{}
	d := NewDispatcher(2, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	now := time.Now().UTC()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		d.Enqueue(ports.SessionInput{Email: email, LoginAt: now})
	}

	deadline := time.After(2 * time.Second)
	for recorder.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected 3 recorded sessions, got %d", recorder.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStablePerEmail(t *testing.T) {
	d := NewDispatcher(4, &capturingRecorder{}, zerolog.Nop())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatalf("shard index must be deterministic per email")
		}
	}
}
