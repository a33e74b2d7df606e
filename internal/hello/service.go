// Package hello wires the store loop and the users adapter into the service
// consumed by the HTTP layer.
package hello

import (
	"context"
	"errors"
	"time"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/pkg/types"
)

// UserLoader loads a user into the store.
type UserLoader interface {
	FetchUser(ctx context.Context, id int) (types.User, error)
}

// ErrNoUserLoader is returned by LoadUser when no remote API is configured.
var ErrNoUserLoader = errors.New("no users api configured")

// Service exposes the application store to request handlers.
type Service struct {
	loop    *store.Loop[*app.State]
	users   UserLoader
	started time.Time
}

// New returns a Service over loop. users may be nil.
func New(loop *store.Loop[*app.State], users UserLoader) *Service {
	return &Service{loop: loop, users: users, started: time.Now()}
}

// State returns the current application state.
func (s *Service) State(ctx context.Context) (*app.State, error) {
	return s.loop.Snapshot(ctx)
}

// Dispatch applies a and returns the state it produced.
func (s *Service) Dispatch(ctx context.Context, a store.Action) (*app.State, error) {
	var (
		out *app.State
		err error
	)
	if doErr := s.loop.Do(ctx, func(st *store.Store[*app.State]) {
		err = st.Dispatch(a)
		out = st.State()
	}); doErr != nil {
		return nil, doErr
	}
	return out, err
}

// LoadUser fetches user id from the remote API into the store.
func (s *Service) LoadUser(ctx context.Context, id int) (types.User, error) {
	if s.users == nil {
		return types.User{}, ErrNoUserLoader
	}
	return s.users.FetchUser(ctx, id)
}

// Ready reports whether the store loop is accepting work.
func (s *Service) Ready() bool { return s.loop.Running() }

// Uptime reports how long the service has existed.
func (s *Service) Uptime() time.Duration { return time.Since(s.started) }
