package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Status is the lifecycle position of a Query
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of a Query
type State[P any, T any] struct {
	Status    Status
	Params    P
	Data      T
	Err       error
	RequestID uint64
}

// Fetcher loads T for params
type Fetcher[P any, T any] func(ctx context.Context, params P) (T, error)

// Query tracks one logical request slot: Idle -> Loading -> Success|Failed,
// re-entering Loading whenever its parameters change. Every run gets a new
// request id; a result is applied only if its id is still the latest, and
// the context of a superseded run is cancelled.
type Query[P comparable, T any] struct {
	fetch Fetcher[P, T]
	log   zerolog.Logger

	mu       sync.Mutex
	state    State[P, T]
	seq      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	onChange func(State[P, T])

	// held across callbacks so listeners observe transitions in order
	emitMu sync.Mutex
}

// NewQuery creates an idle query backed by fetch
func NewQuery[P comparable, T any](fetch Fetcher[P, T], log zerolog.Logger) *Query[P, T] {
	return &Query[P, T]{
		fetch: fetch,
		log:   log.With().Str("component", "query").Logger(),
	}
}

// OnChange registers fn to receive every state transition. fn must not
// call Set, Refetch or Reset synchronously.
func (q *Query[P, T]) OnChange(fn func(State[P, T])) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// State returns the current snapshot
func (q *Query[P, T]) State() State[P, T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Set runs the query for params unless it already ran (or is running) with
// exactly these params.
func (q *Query[P, T]) Set(ctx context.Context, params P) {
	q.mu.Lock()
	if q.state.Status != StatusIdle && q.state.Params == params {
		q.mu.Unlock()
		return
	}
	q.startLocked(ctx, params)
}

// Refetch re-runs the query with its current params. It does nothing on an
// idle query.
func (q *Query[P, T]) Refetch(ctx context.Context) {
	q.mu.Lock()
	if q.state.Status == StatusIdle {
		q.mu.Unlock()
		return
	}
	q.startLocked(ctx, q.state.Params)
}

// Reset cancels any in-flight run and returns the query to Idle
func (q *Query[P, T]) Reset() {
	q.mu.Lock()
	q.seq++
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.state = State[P, T]{Status: StatusIdle, RequestID: q.seq}
	q.emitLocked()
}

// Wait blocks until the latest run has finished, listener included, or
// ctx is done. It returns at once on a query that never ran.
func (q *Query[P, T]) Wait(ctx context.Context) (State[P, T], error) {
	for {
		q.mu.Lock()
		done := q.done
		q.mu.Unlock()
		if done == nil {
			return q.State(), nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return q.State(), ctx.Err()
		}

		q.mu.Lock()
		if q.done == done {
			st := q.state
			q.mu.Unlock()
			return st, nil
		}
		q.mu.Unlock()
	}
}

// Close cancels any in-flight run, which then resolves as Failed with
// context.Canceled. A settled state stays readable.
func (q *Query[P, T]) Close() {
	q.mu.Lock()
	q.seq++
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	if q.state.Status != StatusLoading {
		q.mu.Unlock()
		return
	}
	q.state.Status = StatusFailed
	q.state.Err = context.Canceled
	q.emitLocked()
}

// startLocked must be called with q.mu held; it releases it.
func (q *Query[P, T]) startLocked(parent context.Context, params P) {
	if q.cancel != nil {
		q.cancel()
	}
	q.seq++
	id := q.seq

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	q.cancel = cancel
	q.done = done
	q.state = State[P, T]{Status: StatusLoading, Params: params, RequestID: id}
	q.emitLocked()

	go q.run(ctx, cancel, done, id, params)
}

func (q *Query[P, T]) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, id uint64, params P) {
	defer close(done)
	defer cancel()

	data, err := q.fetch(ctx, params)

	q.mu.Lock()
	if id != q.seq {
		q.mu.Unlock()
		q.log.Debug().Uint64("request_id", id).Msg("Discarding stale result")
		return
	}
	q.cancel = nil
	if err != nil {
		q.state = State[P, T]{Status: StatusFailed, Params: params, Err: err, RequestID: id}
	} else {
		q.state = State[P, T]{Status: StatusSuccess, Params: params, Data: data, RequestID: id}
	}
	q.emitLocked()
}

// emitLocked must be called with q.mu held; it releases it and then runs
// the listener with the snapshot taken under the lock.
func (q *Query[P, T]) emitLocked() {
	st := q.state
	fn := q.onChange
	q.emitMu.Lock()
	q.mu.Unlock()
	defer q.emitMu.Unlock()
	if fn != nil {
		fn(st)
	}
}
