package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"task-tracker.com/task-tracker/internal/logger"
)

// RequestID tags each request with an X-Request-ID (generated when the client
// sent none) and stores it in the request context for logging.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := logger.ContextWithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			logger.WithRequestID(req.Context(), log).Info(
				"request",
				zap.String("method", req.Method),
				zap.String("route", routeLabel(c)),
				zap.String("path", req.URL.Path),
				zap.Int("status", responseStatus(c, err)),
				zap.Duration("latency", time.Since(start)),
			)

			return err
		}
	}
}
