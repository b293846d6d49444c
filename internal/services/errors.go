package services

import (
	"errors"

	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/pkg/exceptions"
)

// translate maps repository sentinels onto API exceptions. Anything else is
// returned untouched and ends up as an internal error.
func translate(err error, notFound *exceptions.Exception) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTaskNotFound):
		return exceptions.ErrTaskNotFound
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	default:
		return err
	}
}
