package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/services"
)

const defaultBodyLimit = "64K"

type ServerOptions struct {
	Logger *zap.Logger
	// Limiter guards the /api routes. Nil disables rate limiting.
	Limiter        middleware.Limiter
	RequestTimeout time.Duration
}

// NewServer wires the middleware chain, the error envelope and every route.
func NewServer(
	taskService *services.TaskService,
	commentService *services.CommentService,
	opts ServerOptions,
) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(log)

	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		echomw.Recover(),
		echomw.BodyLimit(defaultBodyLimit),
	)
	if opts.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(opts.RequestTimeout))
	}

	var apiMiddleware []echo.MiddlewareFunc
	if opts.Limiter != nil {
		apiMiddleware = append(apiMiddleware, middleware.RateLimiter(opts.Limiter, log))
	}

	Register(
		e,
		NewHandler(taskService, commentService, log),
		NewHealthHandler(taskService, log),
		apiMiddleware...,
	)

	return e
}
