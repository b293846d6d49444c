package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
	dto "task-tracker.com/task-tracker/pkg/data_models"
	"task-tracker.com/task-tracker/pkg/exceptions"
)

type Handler struct {
	taskService    *services.TaskService
	commentService *services.CommentService
	logger         *zap.Logger
}

func NewHandler(taskService *services.TaskService, commentService *services.CommentService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		taskService:    taskService,
		commentService: commentService,
		logger:         logger,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Envelope[any]{Data: tasks})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := validators.DecodeJSON(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.Envelope[any]{Data: task})
}

func (h *Handler) GetTask(c echo.Context) error {
	id, ok := validators.ParseID(c, "id")
	if !ok {
		return exceptions.ErrTaskNotFound
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Envelope[any]{Data: task})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, ok := validators.ParseID(c, "id")
	if !ok {
		return exceptions.ErrTaskNotFound
	}
	ctx := c.Request().Context()

	var req dto.UpdateTaskRequest
	if err := validators.DecodeJSON(c, &req); err != nil {
		if _, getErr := h.taskService.GetTask(ctx, id); getErr != nil {
			return getErr
		}
		return err
	}

	task, err := h.taskService.UpdateTask(ctx, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Envelope[any]{Data: task})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, ok := validators.ParseID(c, "id")
	if !ok {
		return exceptions.ErrTaskNotFound
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	h.logger.Info("task deleted", zap.Uint("task_id", id))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListComments(c echo.Context) error {
	taskID, ok := validators.ParseID(c, "taskId")
	if !ok {
		return exceptions.ErrTaskNotFound
	}

	comments, err := h.commentService.ListComments(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Envelope[any]{Data: comments})
}

func (h *Handler) CreateComment(c echo.Context) error {
	taskID, ok := validators.ParseID(c, "taskId")
	if !ok {
		return exceptions.ErrTaskNotFound
	}
	ctx := c.Request().Context()

	if err := h.commentService.RequireTask(ctx, taskID); err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := validators.DecodeJSON(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(ctx, taskID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.Envelope[any]{Data: comment})
}

func (h *Handler) UpdateComment(c echo.Context) error {
	taskID, commentID, err := h.commentPath(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCommentRequest
	if err := validators.DecodeJSON(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), taskID, commentID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Envelope[any]{Data: comment})
}

func (h *Handler) DeleteComment(c echo.Context) error {
	taskID, commentID, err := h.commentPath(c)
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), taskID, commentID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// commentPath resolves both ids of a comment route. The task is checked
// first so a missing task is reported even when the comment id is garbage.
func (h *Handler) commentPath(c echo.Context) (uint, uint, error) {
	taskID, ok := validators.ParseID(c, "taskId")
	if !ok {
		return 0, 0, exceptions.ErrTaskNotFound
	}
	if err := h.commentService.RequireTask(c.Request().Context(), taskID); err != nil {
		return 0, 0, err
	}

	commentID, ok := validators.ParseID(c, "commentId")
	if !ok {
		return 0, 0, exceptions.ErrCommentNotFound
	}
	return taskID, commentID, nil
}
