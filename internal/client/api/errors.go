package api

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrServer        = errors.New("server error")
)

// Error is a non-2xx API response. It unwraps to one of the sentinels above,
// so callers can use errors.Is and still show the server's detail text.
type Error struct {
	Status int
	Detail string
	kind   error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}

func newError(status int, detail string) *Error {
	var kind error
	switch status {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusBadRequest, http.StatusConflict:
		kind = ErrAlreadyExists
	case http.StatusUnprocessableEntity:
		kind = ErrValidation
	default:
		kind = ErrServer
	}
	return &Error{Status: status, Detail: detail, kind: kind}
}
