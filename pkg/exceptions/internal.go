package exceptions

import "net/http"

var ErrInternal = &Exception{
	Kind:       KindInternal,
	Message:    "Internal Server Error",
	StatusCode: http.StatusInternalServerError,
}
