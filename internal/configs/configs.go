package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL          string
	DatabaseDSN     string
	RateLimit       int
	RedisAddr       string
	RedisKeyPrefix  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogEncoding     string
	APIURL          string
	ClientTimeout   time.Duration
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded any .env file beforehand.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:         fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:    getEnv("DATABASE_DSN", "tasks.db"),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "task_tracker:rl"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogEncoding:    getEnv("LOG_ENCODING", "json"),
		APIURL:         getEnv("TASK_TRACKER_API_URL", fmt.Sprintf("http://%s:%s", appHost, appPort)),
	}

	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	var err error
	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getEnvAsSeconds("REQUEST_TIMEOUT_SECONDS", 10); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsSeconds("SHUTDOWN_TIMEOUT_SECONDS", 20); err != nil {
		return Config{}, err
	}
	if cfg.ClientTimeout, err = getEnvAsSeconds("CLIENT_TIMEOUT_SECONDS", 10); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.ClientTimeout <= 0 {
		return errors.New("CLIENT_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsSeconds(key string, defaultVal int) (time.Duration, error) {
	seconds, err := getEnvAsInt(key, defaultVal)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
