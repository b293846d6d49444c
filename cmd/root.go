package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/frontend"
)

var (
	apiURL        string
	clientTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "task-tracker",
	Short:         "Task tracker service and command-line client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", frontend.ErrorMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "base URL of the task tracker API (overrides TASK_TRACKER_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 0, "per-request timeout (overrides CLIENT_TIMEOUT_SECONDS)")
}

// loadConfig reads an optional .env file and then the environment.
func loadConfig() (config.Config, error) {
	// A missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if clientTimeout > 0 {
		cfg.ClientTimeout = clientTimeout
	}
	return cfg, nil
}
