package exceptions

import "net/http"

var ErrTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "Task not found",
	StatusCode: http.StatusNotFound,
}
