package services

import (
	"context"

	repository "task-tracker.com/task-tracker/internal/repositories"
	dto "task-tracker.com/task-tracker/pkg/data_models"
	"task-tracker.com/task-tracker/pkg/exceptions"
	model "task-tracker.com/task-tracker/pkg/models"
)

type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	title, err := normalizeTitle(req.Title, exceptions.ErrTitleRequired)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateTask(ctx, title, req.Description)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, exceptions.ErrTaskNotFound)
	}
	return task, nil
}

// UpdateTask applies the fields present in req. A missing task is reported
// before the body is validated.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.repo.Update(ctx, id, func(task *model.Task) error {
		if req.Title.Set {
			title, err := normalizeTitle(req.Title.Value, exceptions.ErrTitleEmpty)
			if err != nil {
				return err
			}
			task.Title = title
		}
		if req.Description.Set {
			task.Description = req.Description.Value
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, exceptions.ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	return translate(s.repo.Delete(ctx, id), exceptions.ErrTaskNotFound)
}

func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
