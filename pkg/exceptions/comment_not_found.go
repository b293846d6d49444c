package exceptions

import "net/http"

var ErrCommentNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "Comment not found",
	StatusCode: http.StatusNotFound,
}
