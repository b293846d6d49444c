package frontend

import (
	"errors"

	"task-tracker.com/task-tracker/pkg/client"
	"task-tracker.com/task-tracker/pkg/exceptions"
)

// ErrorMessage is the text shown next to a widget that failed. Server
// messages are passed through unchanged.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var exc *exceptions.Exception
	if errors.As(err, &exc) {
		return exc.Message
	}
	if client.IsRetryable(err) {
		return client.NetworkFallbackMessage
	}
	return err.Error()
}
