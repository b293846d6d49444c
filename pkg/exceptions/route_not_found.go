package exceptions

import "net/http"

var ErrRouteNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "Not found",
	StatusCode: http.StatusNotFound,
}
