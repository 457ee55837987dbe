package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrUnauthorized will throw if the session is missing or expired
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden will throw if the session may not perform the action
	ErrForbidden = errors.New("forbidden")
	// ErrBusy will throw if the same mutation is already in flight
	ErrBusy = errors.New("operation already in progress")
	// ErrCacheMiss will throw if a persisted key does not exist
	ErrCacheMiss = errors.New("cache miss")
)

// GatewayError is a failed remote call. Code is the envelope code when the server
// answered with one, Status the HTTP status.
type GatewayError struct {
	Status  int
	Code    int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets errors.Is match a GatewayError against the sentinel errors above.
func (e *GatewayError) Is(target error) bool {
	code := e.Code
	if code == 0 {
		code = e.Status
	}
	switch target {
	case ErrBadParamInput:
		return code == http.StatusBadRequest
	case ErrUnauthorized:
		return code == http.StatusUnauthorized
	case ErrForbidden:
		return code == http.StatusForbidden
	case ErrNotFound:
		return code == http.StatusNotFound
	case ErrConflict:
		return code == http.StatusConflict
	case ErrInternalServerError:
		return code >= http.StatusInternalServerError
	}
	return false
}

// Message returns the text a user notice should carry for err: the server-provided
// message when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if err != nil && fallback == "" {
		return err.Error()
	}
	return fallback
}
