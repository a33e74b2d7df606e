package app

import (
	"hellod/internal/store"
	"hellod/pkg/types"
)

// ReduceUser owns the user slice: nil until SetUser, replaced wholesale by
// every SetUser, nil again after ClearUser. Other actions return state as-is.
func ReduceUser(state *types.User, action store.Action) *types.User {
	a, ok := action.(UserAction)
	if !ok {
		return state
	}
	switch a := a.(type) {
	case SetUser:
		u := a.User
		return &u
	case ClearUser:
		return nil
	default:
		return state
	}
}
