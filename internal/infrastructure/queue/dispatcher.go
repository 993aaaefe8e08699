package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tanit/user-management/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes login-session records to a fixed set of workers using
// consistent hashing on the email, so writes for the same account stay
// ordered. Session persistence is a side effect of login with no observable
// contract: a failed write is logged and dropped, never surfaced to the
// client.
type Dispatcher struct {
	workers  []chan ports.SessionInput
	recorder ports.SessionRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.SessionRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.SessionInput, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SessionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a session record to the worker responsible for its email.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(session ports.SessionInput) {
	d.workers[d.shardIndex(session.Email)] <- session
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SessionInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case session, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Record(ctx, session); err != nil {
				d.log.Warn().Err(err).
					Str("email", session.Email).
					Int("worker_id", id).
					Msg("session record failed")
			}
		}
	}
}
