package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
	model "task-tracker.com/task-tracker/pkg/models"
)

func setupServer(t *testing.T, opts ServerOptions) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}, &model.Comment{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewServer(
		services.NewTaskService(repository.NewTaskRepository(db)),
		services.NewCommentService(repository.NewCommentRepository(db)),
		opts,
	)
}

type response struct {
	Code int
	Body map[string]json.RawMessage
	Raw  string
}

func do(t *testing.T, e *echo.Echo, method, path, body string) response {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	res := response{Code: rec.Code, Raw: rec.Body.String()}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &res.Body); err != nil {
			t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
		}
	}
	return res
}

func (r response) data(t *testing.T, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Body["data"], dst); err != nil {
		t.Fatalf("failed to decode data from %s: %v", r.Raw, err)
	}
}

func (r response) errorKind(t *testing.T) (string, string) {
	t.Helper()
	var body struct {
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	if err := json.Unmarshal(r.Body["error"], &body); err != nil {
		t.Fatalf("failed to decode error from %s: %v", r.Raw, err)
	}
	return body.Kind, body.Message
}

type taskJSON struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type commentJSON struct {
	ID        uint    `json:"id"`
	TaskID    uint    `json:"task_id"`
	Content   string  `json:"content"`
	Author    *string `json:"author"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func createTask(t *testing.T, e *echo.Echo, title string) taskJSON {
	t.Helper()
	res := do(t, e, http.MethodPost, "/api/tasks", fmt.Sprintf(`{"title": %q}`, title))
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Raw)
	}
	var task taskJSON
	res.data(t, &task)
	return task
}

func TestHealth(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	res := do(t, e, http.MethodGet, "/health", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if strings.TrimSpace(res.Raw) != `{"status":"ok"}` {
		t.Errorf("unexpected body %s", res.Raw)
	}
}

func TestTaskCRUD(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	res := do(t, e, http.MethodGet, "/api/tasks", "")
	if res.Code != http.StatusOK || string(res.Body["data"]) != "[]" {
		t.Fatalf("expected empty list, got %d %s", res.Code, res.Raw)
	}

	task := createTask(t, e, "Buy milk")
	if task.ID != 1 || task.Title != "Buy milk" || task.Description != nil {
		t.Errorf("unexpected task %+v", task)
	}
	if task.CreatedAt != task.UpdatedAt {
		t.Errorf("expected equal timestamps, got %s and %s", task.CreatedAt, task.UpdatedAt)
	}
	if _, err := time.Parse(time.RFC3339Nano, task.CreatedAt); err != nil {
		t.Errorf("expected ISO-8601 timestamp, got %q", task.CreatedAt)
	}

	res = do(t, e, http.MethodGet, "/api/tasks/1", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	res = do(t, e, http.MethodPut, "/api/tasks/1", `{"title": "Buy oat milk", "description": "2 litres"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Raw)
	}
	var updated taskJSON
	res.data(t, &updated)
	if updated.Title != "Buy oat milk" || updated.Description == nil || *updated.Description != "2 litres" {
		t.Errorf("unexpected update result %+v", updated)
	}

	res = do(t, e, http.MethodDelete, "/api/tasks/1", "")
	if res.Code != http.StatusNoContent || res.Raw != "" {
		t.Fatalf("expected empty 204, got %d %q", res.Code, res.Raw)
	}

	res = do(t, e, http.MethodDelete, "/api/tasks/1", "")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.Code)
	}
}

func TestTaskValidationErrors(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	createTask(t, e, "existing")

	cases := []struct {
		name, method, path, body, message string
	}{
		{"missing title", http.MethodPost, "/api/tasks", `{}`, "'title' is required"},
		{"empty body", http.MethodPost, "/api/tasks", "", "'title' is required"},
		{"blank title", http.MethodPost, "/api/tasks", `{"title": "  "}`, "'title' is required"},
		{"malformed", http.MethodPost, "/api/tasks", `{"title"`, "invalid JSON payload"},
		{"unknown field", http.MethodPost, "/api/tasks", `{"title": "x", "done": true}`, `unknown field "done"`},
		{"blank update", http.MethodPut, "/api/tasks/1", `{"title": ""}`, "'title' cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := do(t, e, tc.method, tc.path, tc.body)
			if res.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", res.Code, res.Raw)
			}
			kind, message := res.errorKind(t)
			if kind != "validation" || message != tc.message {
				t.Errorf("expected validation %q, got %s %q", tc.message, kind, message)
			}
		})
	}

	res := do(t, e, http.MethodGet, "/api/tasks", "")
	var tasks []taskJSON
	res.data(t, &tasks)
	if len(tasks) != 1 {
		t.Errorf("expected failed creates to persist nothing, got %d tasks", len(tasks))
	}
}

func TestUpdateMissingTaskIsNotFoundRegardlessOfBody(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	for _, body := range []string{`{"title": ""}`, `{"title"`, `{"bogus": 1}`, `{"title": "fine"}`} {
		res := do(t, e, http.MethodPut, "/api/tasks/77", body)
		if res.Code != http.StatusNotFound {
			t.Errorf("body %s: expected 404, got %d", body, res.Code)
		}
	}
}

func TestNonNumericIDsAreNotFound(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	for _, path := range []string{"/api/tasks/abc", "/api/tasks/0", "/api/tasks/abc/comments"} {
		res := do(t, e, http.MethodGet, path, "")
		if res.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, res.Code)
		}
		if kind, _ := res.errorKind(t); kind != "not_found" {
			t.Errorf("%s: expected not_found kind, got %s", path, kind)
		}
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	res := do(t, e, http.MethodGet, "/api/nothing", "")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
	if kind, message := res.errorKind(t); kind != "not_found" || message != "Not found" {
		t.Errorf("unexpected error %s %q", kind, message)
	}
}

func TestCommentCRUD(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	task := createTask(t, e, "Test Task")
	base := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	res := do(t, e, http.MethodGet, base, "")
	if res.Code != http.StatusOK || string(res.Body["data"]) != "[]" {
		t.Fatalf("expected empty list, got %d %s", res.Code, res.Raw)
	}

	res = do(t, e, http.MethodPost, base, `{"content": "First comment", "author": "alice"}`)
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Raw)
	}
	var created commentJSON
	res.data(t, &created)
	if created.Content != "First comment" || created.Author == nil || *created.Author != "alice" || created.TaskID != task.ID {
		t.Errorf("unexpected comment %+v", created)
	}

	res = do(t, e, http.MethodPut, fmt.Sprintf("%s/%d", base, created.ID), `{"content": "c2", "author": "bob"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Raw)
	}
	var updated commentJSON
	res.data(t, &updated)
	if updated.Content != "c2" || *updated.Author != "bob" {
		t.Errorf("unexpected update %+v", updated)
	}
	if updated.UpdatedAt == created.UpdatedAt {
		t.Error("expected updated_at to change")
	}

	res = do(t, e, http.MethodPut, fmt.Sprintf("%s/%d", base, created.ID), `{"content": "   "}`)
	if res.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank content, got %d", res.Code)
	}

	res = do(t, e, http.MethodDelete, fmt.Sprintf("%s/%d", base, created.ID), "")
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	res = do(t, e, http.MethodDelete, fmt.Sprintf("%s/%d", base, created.ID), "")
	if res.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", res.Code)
	}
	if _, message := res.errorKind(t); message != "Comment not found" {
		t.Errorf("expected comment not found message, got %q", message)
	}
}

func TestCommentValidation(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	task := createTask(t, e, "Test Task")
	base := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	for _, body := range []string{`{}`, `{"content": "   "}`, fmt.Sprintf(`{"content": %q}`, strings.Repeat("x", 1001))} {
		res := do(t, e, http.MethodPost, base, body)
		if res.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", res.Code)
		}
	}

	res := do(t, e, http.MethodPost, base, fmt.Sprintf(`{"content": %q}`, strings.Repeat("x", 1000)))
	if res.Code != http.StatusCreated {
		t.Errorf("expected exactly 1000 characters to be accepted, got %d", res.Code)
	}
}

func TestCommentRoutesRequireExistingTask(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/api/tasks/9999/comments", ""},
		{http.MethodPost, "/api/tasks/9999/comments", `{"content": "x"}`},
		{http.MethodPost, "/api/tasks/9999/comments", `{}`},
		{http.MethodPost, "/api/tasks/9999/comments", `not json`},
		{http.MethodPut, "/api/tasks/9999/comments/1", `{"content": "x"}`},
		{http.MethodPut, "/api/tasks/9999/comments/abc", `{"content": ""}`},
		{http.MethodDelete, "/api/tasks/9999/comments/1", ""},
	}

	for _, tc := range cases {
		res := do(t, e, tc.method, tc.path, tc.body)
		if res.Code != http.StatusNotFound {
			t.Errorf("%s %s %s: expected 404, got %d", tc.method, tc.path, tc.body, res.Code)
			continue
		}
		if _, message := res.errorKind(t); message != "Task not found" {
			t.Errorf("%s %s: expected task not found, got %q", tc.method, tc.path, message)
		}
	}
}

func TestCommentOwnedByAnotherTask(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	owner := createTask(t, e, "owner")
	other := createTask(t, e, "other")

	res := do(t, e, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", owner.ID), `{"content": "mine"}`)
	var comment commentJSON
	res.data(t, &comment)

	res = do(t, e, http.MethodPut, fmt.Sprintf("/api/tasks/%d/comments/%d", other.ID, comment.ID), `{"content": "hijack"}`)
	if res.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", res.Code)
	}
	res = do(t, e, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/comments/%d", other.ID, comment.ID), "")
	if res.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", res.Code)
	}
}

func TestEndToEndCascade(t *testing.T) {
	e := setupServer(t, ServerOptions{})

	task := createTask(t, e, "Buy milk")
	if task.ID != 1 {
		t.Fatalf("expected id 1, got %d", task.ID)
	}

	do(t, e, http.MethodPost, "/api/tasks/1/comments", `{"content": "urgent"}`)

	res := do(t, e, http.MethodGet, "/api/tasks/1/comments", "")
	var comments []map[string]interface{}
	res.data(t, &comments)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0]["content"] != "urgent" || comments[0]["task_id"] != float64(1) {
		t.Errorf("unexpected comment %v", comments[0])
	}
	if author, ok := comments[0]["author"]; !ok || author != nil {
		t.Errorf("expected explicit null author, got %v (present=%v)", author, ok)
	}

	do(t, e, http.MethodDelete, "/api/tasks/1", "")

	res = do(t, e, http.MethodGet, "/api/tasks/1/comments", "")
	if res.Code != http.StatusNotFound {
		t.Errorf("expected 404 after cascade, got %d", res.Code)
	}
}

func TestRateLimitedAPIKeepsHealthOpen(t *testing.T) {
	e := setupServer(t, ServerOptions{Limiter: middleware.NewMemoryLimiter(1, time.Minute)})

	if res := do(t, e, http.MethodGet, "/api/tasks", ""); res.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", res.Code)
	}

	res := do(t, e, http.MethodGet, "/api/tasks", "")
	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.Code)
	}
	if kind, _ := res.errorKind(t); kind != "rate_limited" {
		t.Errorf("expected rate_limited kind, got %s", kind)
	}

	if res := do(t, e, http.MethodGet, "/health", ""); res.Code != http.StatusOK {
		t.Errorf("expected health to bypass the limiter, got %d", res.Code)
	}
}

func TestToExceptionHidesInternalErrors(t *testing.T) {
	exc := ToException(errors.New("sql: connection refused"))
	if exc.StatusCode != http.StatusInternalServerError || exc.Message != "Internal Server Error" {
		t.Errorf("expected generic internal error, got %+v", exc)
	}
}

func TestPanicsRenderInternalError(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	res := do(t, e, http.MethodGet, "/boom", "")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	if kind, message := res.errorKind(t); kind != "internal" || message != "Internal Server Error" {
		t.Errorf("unexpected error %s %q", kind, message)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := setupServer(t, ServerOptions{})
	do(t, e, http.MethodGet, "/api/tasks", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("expected prometheus exposition, got %d", rec.Code)
	}
}
