package store

import "errors"

var (
	// ErrReentrantDispatch is returned when Dispatch is called while another
	// dispatch cycle (reducer or listener) is still running.
	ErrReentrantDispatch = errors.New("store: reentrant dispatch")

	// ErrInvalidAction is returned for nil actions and actions without a tag.
	ErrInvalidAction = errors.New("store: invalid action")

	// ErrLoopClosed is returned by Loop methods once the loop has stopped.
	ErrLoopClosed = errors.New("store: loop closed")
)

// IsReentrant reports whether err was caused by a nested dispatch.
func IsReentrant(err error) bool { return errors.Is(err, ErrReentrantDispatch) }

// IsInvalidAction reports whether err was caused by a malformed action.
func IsInvalidAction(err error) bool { return errors.Is(err, ErrInvalidAction) }
