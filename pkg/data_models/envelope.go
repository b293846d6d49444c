package dto

import "task-tracker.com/task-tracker/pkg/exceptions"

// Envelope wraps every successful API payload.
type Envelope[T any] struct {
	Data T `json:"data"`
}

type ErrorEnvelope struct {
	Error *exceptions.Exception `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
