package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Register(e *echo.Echo, h *Handler, health *HealthHandler, apiMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", apiMiddleware...)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.GET("/tasks/:taskId/comments", h.ListComments)
	api.POST("/tasks/:taskId/comments", h.CreateComment)
	api.PUT("/tasks/:taskId/comments/:commentId", h.UpdateComment)
	api.DELETE("/tasks/:taskId/comments/:commentId", h.DeleteComment)
}
