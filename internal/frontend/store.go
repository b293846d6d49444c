// Package frontend holds the client-side view state of the task tracker.
//
// The Store mirrors what the server returned last; the server stays the only
// source of truth. Every widget (task list, task form, comment list, comment
// form) has its own view state and allows one request in flight at a time.
// Task mutations patch the cached list from the server's response, comment
// mutations re-fetch the comment list of the selected task.
package frontend

import (
	"context"
	"errors"
	"sync"

	dto "task-tracker.com/task-tracker/pkg/data_models"
	model "task-tracker.com/task-tracker/pkg/models"
)

type ViewState string

const (
	Idle    ViewState = "idle"
	Loading ViewState = "loading"
	Error   ViewState = "error"
	Loaded  ViewState = "loaded"
)

type Widget int

const (
	TaskList Widget = iota
	TaskForm
	CommentList
	CommentForm
	widgetCount
)

var (
	ErrBusy        = errors.New("a request for this view is already in progress")
	ErrNoSelection = errors.New("no task selected")
	ErrUnknownTask = errors.New("task is not in the list")
)

// API is the subset of the HTTP client the store drives.
type API interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	ListComments(ctx context.Context, taskID uint) ([]model.Comment, error)
	CreateComment(ctx context.Context, taskID uint, req dto.CreateCommentRequest) (*model.Comment, error)
	UpdateComment(ctx context.Context, taskID, commentID uint, req dto.UpdateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID uint) error
}

type widgetState struct {
	state ViewState
	err   error
}

type Store struct {
	api API

	mu       sync.Mutex
	widgets  [widgetCount]widgetState
	tasks    []model.Task
	selected uint
	comments []model.Comment
}

func NewStore(api API) *Store {
	s := &Store{api: api}
	for i := range s.widgets {
		s.widgets[i].state = Idle
	}
	return s
}

// Snapshot is a copy of the store safe to render while requests continue.
type Snapshot struct {
	Tasks    []model.Task
	Selected *model.Task
	Comments []model.Comment
	States   map[Widget]ViewState
	Errors   map[Widget]error
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Tasks:    append([]model.Task(nil), s.tasks...),
		Comments: append([]model.Comment(nil), s.comments...),
		States:   make(map[Widget]ViewState, widgetCount),
		Errors:   make(map[Widget]error),
	}
	for w, ws := range s.widgets {
		snap.States[Widget(w)] = ws.state
		if ws.err != nil {
			snap.Errors[Widget(w)] = ws.err
		}
	}
	if i := s.indexOf(s.selected); i >= 0 {
		task := s.tasks[i]
		snap.Selected = &task
	}
	return snap
}

func (s *Store) State(w Widget) (ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widgets[w].state, s.widgets[w].err
}

func (s *Store) SelectedID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LoadTasks refreshes the task list. When nothing valid is selected, the
// first task becomes the selection.
func (s *Store) LoadTasks(ctx context.Context) error {
	if err := s.begin(TaskList); err != nil {
		return err
	}

	tasks, err := s.api.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(TaskList, err)
		return err
	}

	s.tasks = tasks
	if s.indexOf(s.selected) < 0 {
		s.selected = 0
		s.resetComments()
		if len(s.tasks) > 0 {
			s.selected = s.tasks[0].ID
		}
	}
	s.succeed(TaskList)
	return nil
}

// Select makes id the active task. The cached comments belong to the
// previous selection and are dropped.
func (s *Store) Select(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ErrUnknownTask
	}
	if s.selected != id {
		s.selected = id
		s.resetComments()
	}
	return nil
}

func (s *Store) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	if err := s.begin(TaskForm); err != nil {
		return nil, err
	}

	task, err := s.api.CreateTask(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(TaskForm, err)
		return nil, err
	}

	s.tasks = append(s.tasks, *task)
	if s.selected == 0 {
		s.selected = task.ID
	}
	s.succeed(TaskForm)
	return task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	if err := s.begin(TaskForm); err != nil {
		return nil, err
	}

	task, err := s.api.UpdateTask(ctx, id, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(TaskForm, err)
		return nil, err
	}

	if i := s.indexOf(task.ID); i >= 0 {
		s.tasks[i] = *task
	} else {
		s.tasks = append(s.tasks, *task)
	}
	s.succeed(TaskForm)
	return task, nil
}

// DeleteTask removes the task locally once the server confirmed it. Deleting
// the selected task clears the selection.
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	if err := s.begin(TaskForm); err != nil {
		return err
	}

	err := s.api.DeleteTask(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(TaskForm, err)
		return err
	}

	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	if s.selected == id {
		s.selected = 0
		s.resetComments()
	}
	s.succeed(TaskForm)
	return nil
}

func (s *Store) LoadComments(ctx context.Context) error {
	taskID, err := s.requireSelection()
	if err != nil {
		return err
	}
	if err := s.begin(CommentList); err != nil {
		return err
	}
	return s.fetchComments(ctx, taskID)
}

func (s *Store) CreateComment(ctx context.Context, req dto.CreateCommentRequest) (*model.Comment, error) {
	return s.mutateComment(ctx, func(taskID uint) (*model.Comment, error) {
		return s.api.CreateComment(ctx, taskID, req)
	})
}

func (s *Store) UpdateComment(ctx context.Context, commentID uint, req dto.UpdateCommentRequest) (*model.Comment, error) {
	return s.mutateComment(ctx, func(taskID uint) (*model.Comment, error) {
		return s.api.UpdateComment(ctx, taskID, commentID, req)
	})
}

func (s *Store) DeleteComment(ctx context.Context, commentID uint) error {
	_, err := s.mutateComment(ctx, func(taskID uint) (*model.Comment, error) {
		return nil, s.api.DeleteComment(ctx, taskID, commentID)
	})
	return err
}

// mutateComment runs one comment form submission against the selected task
// and then re-lists its comments. A failed re-fetch is recorded on the
// comment list, not on the form whose mutation succeeded.
func (s *Store) mutateComment(ctx context.Context, mutate func(taskID uint) (*model.Comment, error)) (*model.Comment, error) {
	taskID, err := s.requireSelection()
	if err != nil {
		return nil, err
	}
	if err := s.begin(CommentForm); err != nil {
		return nil, err
	}

	comment, err := mutate(taskID)

	s.mu.Lock()
	if err != nil {
		s.fail(CommentForm, err)
		s.mu.Unlock()
		return nil, err
	}
	s.succeed(CommentForm)
	s.mu.Unlock()

	if err := s.begin(CommentList); err == nil {
		_ = s.fetchComments(ctx, taskID)
	}
	return comment, nil
}

// fetchComments expects CommentList to be marked loading by the caller.
func (s *Store) fetchComments(ctx context.Context, taskID uint) error {
	comments, err := s.api.ListComments(ctx, taskID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The user moved on while the request was in flight.
	if s.selected != taskID {
		s.widgets[CommentList] = widgetState{state: Idle}
		return nil
	}
	if err != nil {
		s.fail(CommentList, err)
		return err
	}

	s.comments = comments
	s.succeed(CommentList)
	return nil
}

func (s *Store) requireSelection() (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == 0 {
		return 0, ErrNoSelection
	}
	return s.selected, nil
}

func (s *Store) begin(w Widget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.widgets[w].state == Loading {
		return ErrBusy
	}
	s.widgets[w] = widgetState{state: Loading}
	return nil
}

func (s *Store) succeed(w Widget) {
	s.widgets[w] = widgetState{state: Loaded}
}

func (s *Store) fail(w Widget, err error) {
	s.widgets[w] = widgetState{state: Error, err: err}
}

func (s *Store) resetComments() {
	s.comments = nil
	if s.widgets[CommentList].state != Loading {
		s.widgets[CommentList] = widgetState{state: Idle}
	}
}

func (s *Store) indexOf(id uint) int {
	if id == 0 {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
