package exceptions

import "net/http"

func NewValidation(message string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
