package store

import (
	"context"
	"fmt"
)

// Action describes an intended state change. Type returns a tag that is
// unique per mutation intent; the payload lives in the concrete type.
type Action interface {
	Type() string
}

// Reducer computes the next state from the previous state and an action.
// Reducers must be pure and must return their input unchanged for actions
// they do not handle.
type Reducer[S any] func(state S, action Action) S

// Dispatcher accepts actions on behalf of a store. Implementations must not
// dispatch once ctx is done.
type Dispatcher interface {
	DispatchContext(ctx context.Context, action Action) error
}

// validateAction rejects actions that cannot be routed to any reducer.
func validateAction(a Action) error {
	if a == nil {
		return fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	if a.Type() == "" {
		return fmt.Errorf("%w: missing type tag (%T)", ErrInvalidAction, a)
	}
	return nil
}
