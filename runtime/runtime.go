// Package runtime provides the process-wide execution context shared by all
// workflow executors. It owns the conversation session store and tracks
// in-flight agent invocations so shutdown can drain them.
//
// Lifecycle: a Runtime is constructed cheaply at startup but stays inert
// until the first dispatch calls Start. Start is guarded so concurrent first
// requests initialize it exactly once; Close is idempotent and waits for
// outstanding invocations before releasing resources.
package runtime

import (
	"context"
	"errors"
	"sync"

	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/session"
)

// ErrClosed is returned when an invocation is attempted after shutdown.
var ErrClosed = errors.New("runtime is closed")

// ErrNotStarted is returned when runtime services are used before Start.
var ErrNotStarted = errors.New("runtime has not been started")

// Options configures a Runtime instance.
type Options struct {
	// MaxHistoryMessages bounds per-agent conversation history retained by
	// the session store. Zero means unbounded.
	MaxHistoryMessages int

	// Logger used for lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Runtime is the only mutable resource shared across requests. All methods
// are safe for concurrent use.
type Runtime struct {
	startOnce sync.Once
	closeOnce sync.Once

	mu      sync.Mutex
	started bool
	closed  bool

	sessions *session.InMemoryStore
	inflight sync.WaitGroup
	logger   logging.Logger

	maxHistoryMessages int
}

// New constructs an unstarted Runtime.
func New(optFns ...func(o *Options)) *Runtime {
	opts := Options{
		MaxHistoryMessages: 40,
		Logger:             logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runtime{
		logger:             opts.Logger,
		maxHistoryMessages: opts.MaxHistoryMessages,
	}
}

// Start initializes the runtime. The first caller wins; subsequent and
// concurrent calls are no-ops. Starting a closed runtime fails.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.mu.Unlock()

	r.startOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.sessions = session.NewInMemoryStore(r.maxHistoryMessages)
		r.started = true
		r.logger.Info("runtime started")
	})
	return nil
}

// Started reports whether Start has completed.
func (r *Runtime) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Sessions returns the shared conversation store. It is only valid after
// Start.
func (r *Runtime) Sessions() (*session.InMemoryStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil, ErrNotStarted
	}
	if r.closed {
		return nil, ErrClosed
	}
	return r.sessions, nil
}

// Track registers an in-flight agent invocation. The returned done function
// must be called when the invocation completes; Close blocks until every
// tracked invocation is done.
func (r *Runtime) Track() (done func(), err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if !r.started {
		return nil, ErrNotStarted
	}
	r.inflight.Add(1)
	var once sync.Once
	return func() { once.Do(r.inflight.Done) }, nil
}

// Close tears the runtime down, draining outstanding invocations. It is
// idempotent; only the first call performs the shutdown.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		started := r.started
		r.mu.Unlock()

		if started {
			r.inflight.Wait()
		}
		r.logger.Info("runtime closed")
	})
	return nil
}
