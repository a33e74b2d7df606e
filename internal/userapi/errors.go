package userapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
)

// invalidUserIDError is returned before any request is made.
type invalidUserIDError struct{ id int }

func (e invalidUserIDError) Error() string {
	return "invalid user id: " + strconv.Itoa(e.id) + " (must be a positive integer)"
}

// StatusCode maps to 400 for the HTTP layer.
func (e invalidUserIDError) StatusCode() int { return http.StatusBadRequest }

// ErrInvalidUserID constructs the error returned for non-positive ids.
func ErrInvalidUserID(id int) error { return invalidUserIDError{id: id} }

// IsInvalidUserID reports whether err indicates a rejected user id.
func IsInvalidUserID(err error) bool {
	var e invalidUserIDError
	return errors.As(err, &e)
}

// StatusError is returned when the remote API answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return "users api: " + e.URL + ": unexpected status " + strconv.Itoa(e.Code)
}

// StatusCode reports the HTTP status exposed to our own callers: the remote's
// 404 stays a 404, every other remote failure is a bad gateway.
func (e *StatusError) StatusCode() int {
	if e.Code == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// IsStatus reports whether err carries a remote status and returns it.
func IsStatus(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
