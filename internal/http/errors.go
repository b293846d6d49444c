package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-tracker.com/task-tracker/internal/logger"
	dto "task-tracker.com/task-tracker/pkg/data_models"
	"task-tracker.com/task-tracker/pkg/exceptions"
)

// NewErrorHandler renders every error as {"error": {"message", "kind"}}.
// Unexpected errors are logged and replaced with a generic message.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		exc := ToException(err)
		if exc.StatusCode >= http.StatusInternalServerError {
			logger.WithRequestID(c.Request().Context(), log).Error(
				"request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(exc.StatusCode)
		} else {
			err = c.JSON(exc.StatusCode, dto.ErrorEnvelope{Error: exc})
		}
		if err != nil {
			log.Error("failed to write error response", zap.Error(err))
		}
	}
}

// ToException classifies any error returned by a handler or middleware.
func ToException(err error) *exceptions.Exception {
	var exc *exceptions.Exception
	if errors.As(err, &exc) {
		return exc
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			return exceptions.ErrRouteNotFound
		case http.StatusInternalServerError:
			return exceptions.ErrInternal
		}
		return &exceptions.Exception{
			Kind:       exceptions.KindForStatus(httpErr.Code),
			Message:    fmt.Sprint(httpErr.Message),
			StatusCode: httpErr.Code,
		}
	}

	return exceptions.ErrInternal
}
