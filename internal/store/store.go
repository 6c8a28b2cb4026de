// Package store is a small state-container runtime: a Store owns one value of
// state, reduces actions against it one at a time and runs the effects the
// reducer returns.
//
// Actions sent from effects go through the same path as actions sent by the
// view, so a child feature never touches its owner's state directly; it can
// only send actions the owner's reducer interprets.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store runs a reducer over state of type S.
type Store[S, A any] struct {
	reducer Reducer[S, A]
	equal   func(a, b S) bool
	clone   func(S) S
	logger  *slog.Logger
	name    string

	mu       sync.Mutex
	state    S
	revision uint64

	changes  chan struct{}
	inflight tracker

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// Option configures a Store.
type Option[S, A any] func(*Store[S, A])

// WithEquality sets the equality used to decide whether a reduce changed the
// state. Without it every reduce counts as a change. States holding slices or
// pointers also need WithClone, or the pre-reduce copy aliases the live state.
func WithEquality[S, A any](equal func(a, b S) bool) Option[S, A] {
	return func(s *Store[S, A]) { s.equal = equal }
}

// WithClone sets the deep copy used for snapshots handed out by State.
func WithClone[S, A any](clone func(S) S) Option[S, A] {
	return func(s *Store[S, A]) { s.clone = clone }
}

// WithLogger routes store logging to logger.
func WithLogger[S, A any](logger *slog.Logger) Option[S, A] {
	return func(s *Store[S, A]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithName labels log lines from this store.
func WithName[S, A any](name string) Option[S, A] {
	return func(s *Store[S, A]) { s.name = name }
}

// New creates a store with initial state.
func New[S, A any](initial S, reducer Reducer[S, A], opts ...Option[S, A]) *Store[S, A] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store[S, A]{
		reducer: reducer,
		state:   initial,
		logger:  slog.Default(),
		changes: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send reduces action and launches the resulting effect. It returns once the
// reduce is done; the effect keeps running in the background. Actions sent
// after Close are dropped.
func (s *Store[S, A]) Send(ctx context.Context, action A) {
	if s.ctx.Err() != nil {
		s.logger.DebugContext(ctx, "store closed, dropping action", "store", s.name, "action", actionName(action))
		return
	}

	s.mu.Lock()
	var prev S
	if s.equal != nil {
		prev = s.snapshot()
	}
	effect := s.reducer.Reduce(&s.state, action)
	changed := s.equal == nil || !s.equal(prev, s.state)
	if changed {
		s.revision++
	}
	rev := s.revision
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "action reduced",
		"store", s.name,
		"action", actionName(action),
		"changed", changed,
		"revision", rev,
		"effect", !effect.IsNone(),
	)
	if changed {
		select {
		case s.changes <- struct{}{}:
		default:
		}
	}
	s.launch(effect)
}

func (s *Store[S, A]) launch(effect Effect[A]) {
	if effect.IsNone() {
		return
	}
	if !s.inflight.add() {
		s.logger.Debug("store closed, dropping effect", "store", s.name)
		return
	}
	ctx := withLogger(s.ctx, s.logger)
	go func() {
		defer s.inflight.done()
		effect.run(ctx, s.Send)
	}()
}

type loggerKey struct{}

func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger of the store running the effect that owns ctx,
// or the default logger outside an effect.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// State returns a snapshot of the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store[S, A]) snapshot() S {
	if s.clone != nil {
		return s.clone(s.state)
	}
	return s.state
}

// Revision counts reduces that changed the state.
func (s *Store[S, A]) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Changes signals after a reduce changed the state. Signals coalesce: a reader
// that falls behind sees one pending signal, not one per change.
func (s *Store[S, A]) Changes() <-chan struct{} { return s.changes }

// Settle blocks until no effect is running or ctx is done.
func (s *Store[S, A]) Settle(ctx context.Context) error {
	return s.inflight.wait(ctx)
}

// Close cancels the effect context and waits for running effects to return.
// Effects of actions still being reduced when Close starts are not launched.
func (s *Store[S, A]) Close() {
	s.once.Do(func() {
		s.inflight.close()
		s.cancel()
		_ = s.inflight.wait(context.Background())
	})
}

func actionName(action any) string {
	return fmt.Sprintf("%T", action)
}

// tracker counts running effects and lets callers wait for zero.
type tracker struct {
	mu     sync.Mutex
	n      int
	idle   chan struct{}
	closed bool
}

// add registers one more running effect. It fails once the tracker is closed.
func (t *tracker) add() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	if t.n == 0 {
		t.idle = make(chan struct{})
	}
	t.n++
	return true
}

func (t *tracker) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

func (t *tracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n--
	if t.n == 0 {
		close(t.idle)
	}
}

func (t *tracker) wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		if t.n == 0 {
			t.mu.Unlock()
			return nil
		}
		idle := t.idle
		t.mu.Unlock()
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
