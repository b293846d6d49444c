package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

// server bundles the echo instance with the resources it has to release on
// shutdown.
type server struct {
	echo    *echo.Echo
	closers []func() error
}

func (s *server) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func newServer(cfg config.Config, log *zap.Logger) (*server, error) {
	srv := &server{}

	database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	srv.closers = append(srv.closers, sqlDB.Close)

	limiter, err := newLimiter(cfg, log)
	if err != nil {
		_ = srv.Close()
		return nil, err
	}
	if closer, ok := limiter.(interface{ Close() }); ok {
		srv.closers = append(srv.closers, func() error {
			closer.Close()
			return nil
		})
	}

	taskService := services.NewTaskService(repository.NewTaskRepository(database))
	commentService := services.NewCommentService(repository.NewCommentRepository(database))

	srv.echo = httpapi.NewServer(taskService, commentService, httpapi.ServerOptions{
		Logger:         log,
		Limiter:        limiter,
		RequestTimeout: cfg.RequestTimeout,
	})

	return srv, nil
}

// newLimiter prefers Redis so that several API instances share one budget.
// Without REDIS_HOST the limit is kept per process.
func newLimiter(cfg config.Config, log *zap.Logger) (middleware.Limiter, error) {
	if cfg.RateLimit <= 0 {
		return nil, nil
	}
	if cfg.RedisAddr == "" {
		log.Info("rate limiting in memory", zap.Int("limit_per_minute", cfg.RateLimit))
		return middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute), nil
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	log.Info("rate limiting through redis",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("limit_per_minute", cfg.RateLimit),
	)
	return &redisLimiter{
		RedisLimiter: middleware.NewRedisLimiter(redisClient, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute),
		close:        redisClient.Close,
	}, nil
}

type redisLimiter struct {
	*middleware.RedisLimiter
	close func()
}

func (r *redisLimiter) Close() {
	r.close()
}
