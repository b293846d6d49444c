package exceptions

import "net/http"

var ErrDatabaseUnavailable = &Exception{
	Kind:       KindInternal,
	Message:    "database unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
