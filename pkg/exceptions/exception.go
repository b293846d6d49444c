package exceptions

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindInternal    Kind = "internal"
	KindRateLimited Kind = "rate_limited"
)

// Exception is the error type that crosses the API boundary. The server
// renders it into the error envelope and the client decodes it back.
type Exception struct {
	Kind       Kind   `json:"kind,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches exceptions by kind and message so sentinel values survive a
// round trip through the wire format.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *Exception
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// StatusForKind is used when an exception is rebuilt from a response body
// that carries no status of its own.
func StatusForKind(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// KindForStatus classifies a bare HTTP status, e.g. one produced by the router.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindInternal
	}
}
