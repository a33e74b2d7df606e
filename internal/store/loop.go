package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

var errLoopRunning = errors.New("store: loop already running")

type job struct {
	run  func()
	done chan struct{}
}

// Loop owns a Store and runs every operation on it from a single goroutine,
// so dispatches coming from different goroutines are never interleaved.
// Functions passed to Do run on that goroutine and receive the Store; they
// must dispatch through it rather than through the Loop, which would block
// forever waiting on its own goroutine.
type Loop[S any] struct {
	store   *Store[S]
	jobs    chan job
	stopped chan struct{}
	running atomic.Bool
}

// NewLoop wraps s. The caller must not use s directly once Run has started.
func NewLoop[S any](s *Store[S]) *Loop[S] {
	return &Loop[S]{
		store:   s,
		jobs:    make(chan job),
		stopped: make(chan struct{}),
	}
}

// Run processes work until ctx is done. It may be called once.
func (l *Loop[S]) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errLoopRunning
	}
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-l.jobs:
			j.run()
			close(j.done)
		}
	}
}

// Running reports whether Run has started and not yet returned.
func (l *Loop[S]) Running() bool {
	if !l.running.Load() {
		return false
	}
	select {
	case <-l.stopped:
		return false
	default:
		return true
	}
}

// Do runs fn on the loop goroutine and waits for it to finish. If ctx is done
// by the time the loop picks the job up, fn is skipped and ctx.Err() is
// returned; this is what keeps abandoned requests from mutating state.
func (l *Loop[S]) Do(ctx context.Context, fn func(s *Store[S])) error {
	var result error
	j := job{
		done: make(chan struct{}),
		run: func() {
			if err := ctx.Err(); err != nil {
				result = err
				return
			}
			defer func() {
				if r := recover(); r != nil {
					result = fmt.Errorf("store: panic in loop job: %v", r)
				}
			}()
			fn(l.store)
		},
	}
	select {
	case l.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopClosed
	}
	<-j.done
	return result
}

// DispatchContext dispatches a on the loop goroutine.
func (l *Loop[S]) DispatchContext(ctx context.Context, a Action) error {
	var err error
	if doErr := l.Do(ctx, func(s *Store[S]) { err = s.Dispatch(a) }); doErr != nil {
		return doErr
	}
	return err
}

// Dispatch dispatches a with a background context.
func (l *Loop[S]) Dispatch(a Action) error {
	return l.DispatchContext(context.Background(), a)
}

// Snapshot returns the current state as seen from the loop goroutine.
func (l *Loop[S]) Snapshot(ctx context.Context) (S, error) {
	var out S
	err := l.Do(ctx, func(s *Store[S]) { out = s.State() })
	return out, err
}

// Subscribe registers fn on the loop goroutine. fn runs there too and is
// handed the Store, so a dispatch from inside a listener goes through
// Store.Dispatch and fails with ErrReentrantDispatch. Like any job, fn must
// not call methods of the Loop: the loop goroutine would wait on itself.
func (l *Loop[S]) Subscribe(ctx context.Context, fn func(s *Store[S])) (unsubscribe func() error, err error) {
	if fn == nil {
		panic("store: nil listener")
	}
	var unsub func()
	if err := l.Do(ctx, func(s *Store[S]) { unsub = s.Subscribe(func() { fn(s) }) }); err != nil {
		return nil, err
	}
	return func() error {
		return l.Do(context.Background(), func(*Store[S]) { unsub() })
	}, nil
}
