// Package app defines the application state tree, its action families and
// the slice reducers that own each part of it.
package app

import (
	"hellod/internal/store"
	"hellod/pkg/types"
)

// Slice keys, fixed at composition time.
const (
	KeyUser            = "user"
	KeyEnthusiasmLevel = "enthusiasmLevel"
)

// State is the whole application state. It is only ever produced by Reduce.
type State struct {
	User            *types.User
	EnthusiasmLevel int
}

var sliceDefs = []store.Slice[State]{
	store.Field(KeyUser, func(s *State) **types.User { return &s.User }, ReduceUser),
	store.Field(KeyEnthusiasmLevel, func(s *State) *int { return &s.EnthusiasmLevel }, ReduceEnthusiasm),
}

// Reduce is the root reducer.
var Reduce = store.Combine(sliceDefs...)

// Keys lists the slice keys of State.
func Keys() []string { return store.Keys(sliceDefs...) }

// InitialState returns the state before any action: no user, level 1.
func InitialState() *State {
	return &State{EnthusiasmLevel: MinEnthusiasm}
}

// NewStore builds a store over the root reducer. pub may be nil.
func NewStore(pub store.EventPublisher) *store.Store[*State] {
	return store.NewWithConfig(store.Config[*State]{
		Reducer:   Reduce,
		Initial:   InitialState(),
		Publisher: pub,
		Equal:     store.SameRef[State],
	})
}

// Response converts s to its wire shape.
func Response(s *State) types.StateResponse {
	if s == nil {
		return types.StateResponse{}
	}
	var u *types.User
	if s.User != nil {
		cp := *s.User
		u = &cp
	}
	return types.StateResponse{User: u, EnthusiasmLevel: s.EnthusiasmLevel}
}
