package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"task-tracker.com/task-tracker/internal/frontend"
	"task-tracker.com/task-tracker/pkg/client"
	"task-tracker.com/task-tracker/pkg/exceptions"
)

func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIURL, cfg.ClientTimeout), nil
}

func newStore() (*frontend.Store, error) {
	api, err := newClient()
	if err != nil {
		return nil, err
	}
	return frontend.NewStore(api), nil
}

// selectTask loads the task list and points the store at taskID. A task the
// server does not list is reported the way the API would report it.
func selectTask(ctx context.Context, store *frontend.Store, taskID uint) error {
	if err := store.LoadTasks(ctx); err != nil {
		return err
	}
	if err := store.Select(taskID); err != nil {
		if errors.Is(err, frontend.ErrUnknownTask) {
			return exceptions.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return uint(id), nil
}
