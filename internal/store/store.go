package store

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Config configures a Store. Zero values fall back to defaults.
type Config[S any] struct {
	Reducer Reducer[S]
	Initial S
	// Publisher receives one event per committed dispatch. Defaults to a noop.
	Publisher EventPublisher
	// Equal reports whether two states are the same. It only feeds the
	// Changed flag of events and metrics; nil means every dispatch counts
	// as a change.
	Equal func(a, b S) bool
}

type listener struct {
	fn     func()
	active bool
}

// Store holds the current state and serializes updates to it.
type Store[S any] struct {
	reducer     Reducer[S]
	state       S
	equal       func(a, b S) bool
	pub         EventPublisher
	listeners   []*listener
	dispatching bool
}

// New creates a Store with the given root reducer and initial state.
func New[S any](reducer Reducer[S], initial S) *Store[S] {
	return NewWithConfig(Config[S]{Reducer: reducer, Initial: initial})
}

// NewWithConfig creates a Store from cfg. It panics when cfg.Reducer is nil.
func NewWithConfig[S any](cfg Config[S]) *Store[S] {
	if cfg.Reducer == nil {
		panic("store: nil reducer")
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = noopPublisher{}
	}
	return &Store[S]{
		reducer: cfg.Reducer,
		state:   cfg.Initial,
		equal:   cfg.Equal,
		pub:     pub,
	}
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store[S]) State() S { return s.state }

// SetEventPublisher replaces the event publisher; nil installs a noop.
func (s *Store[S]) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	s.pub = p
}

// Dispatch runs the reducer with the current state and a, commits the
// result, then calls every listener in registration order. Calling Dispatch
// from a reducer or listener fails with ErrReentrantDispatch and leaves the
// state as the outer dispatch committed it.
func (s *Store[S]) Dispatch(a Action) error {
	if err := validateAction(a); err != nil {
		dispatchErrors.WithLabelValues("invalid").Inc()
		return err
	}
	if s.dispatching {
		dispatchErrors.WithLabelValues("reentrant").Inc()
		return fmt.Errorf("%w: %s", ErrReentrantDispatch, a.Type())
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	start := time.Now()
	prev := s.state
	s.state = s.reducer(prev, a)
	changed := s.equal == nil || !s.equal(prev, s.state)

	// Listeners added during this cycle run from the next one; listeners
	// removed during it are skipped via their active flag.
	snapshot := make([]*listener, len(s.listeners))
	copy(snapshot, s.listeners)
	notified := 0
	for _, l := range snapshot {
		if l.active {
			l.fn()
			notified++
		}
	}

	dispatchTotal.WithLabelValues(a.Type(), boolLabel(changed)).Inc()
	s.pub.Publish(Event{
		Name:     "dispatch",
		Action:   a.Type(),
		Changed:  changed,
		Duration: time.Since(start),
		State:    s.state,
		Fields:   map[string]any{"listeners": notified},
	})
	return nil
}

// DispatchContext dispatches a unless ctx is already done, in which case it
// returns ctx.Err() and the state is left untouched.
func (s *Store[S]) DispatchContext(ctx context.Context, a Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Dispatch(a)
}

// Subscribe registers fn to be called after every committed dispatch. The
// returned function removes exactly this registration; it is idempotent and
// may be called from inside a listener.
func (s *Store[S]) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		panic("store: nil listener")
	}
	l := &listener{fn: fn, active: true}
	s.listeners = append(s.listeners, l)
	listenersGauge.Inc()
	return func() {
		if !l.active {
			return
		}
		l.active = false
		s.remove(l)
		listenersGauge.Dec()
	}
}

// Listeners returns the number of registered listeners.
func (s *Store[S]) Listeners() int { return len(s.listeners) }

func (s *Store[S]) remove(target *listener) {
	s.listeners = slices.DeleteFunc(s.listeners, func(l *listener) bool { return l == target })
}
