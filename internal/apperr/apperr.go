// Package apperr carries the structured error taxonomy used across the
// service: every failure is classified by kind and, for pipeline
// failures, tagged with the name of the failing stage.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota
	Authentication
	Authorization
	NotFound
	Configuration
	Upstream
)

type Error struct {
	Kind   Kind
	Stage  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Detail
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Detail: fmt.Sprintf(format, args...)}
}

func Authenticationf(format string, args ...any) *Error {
	return &Error{Kind: Authentication, Detail: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: Authorization, Detail: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Detail: fmt.Sprintf(format, args...)}
}

// Configf marks a missing or invalid server configuration. These are
// fatal to the request and need operator action, never a retry.
func Configf(stage, format string, args ...any) *Error {
	return &Error{Kind: Configuration, Stage: stage, Detail: fmt.Sprintf(format, args...)}
}

// Upstreamf wraps a failed external call with the name of the stage it
// happened in. The cause is preserved for errors.Is/As.
func Upstreamf(stage string, err error, format string, args ...any) *Error {
	return &Error{Kind: Upstream, Stage: stage, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from any error in the chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// HTTPStatus maps an error to the status code rendered at the request
// boundary. Authentication failures deliberately map to 400 so the
// response does not reveal which credential check failed.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case Validation, Authentication:
		return http.StatusBadRequest
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
