package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client agent configuration loaded from a .env file, environment and flags.
type Config struct {
	ListenAddress        string
	DatabaseURI          string
	APIBaseURL           string
	TokenSecret          string
	APITimeout           time.Duration
	ReminderPollInterval time.Duration
	ReminderBatch        int
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
	AnalyticsLogPath     string
	ImageMaxDimension    int
	ImageDir             string
	ServicePrices        string
	LogLevel             string
}

const (
	defaultListenAddress        = "127.0.0.1:8081"
	defaultTokenSecret          = "change-me-in-production"
	defaultAPITimeout           = 10 * time.Second
	defaultReminderPollInterval = 5 * time.Second
	defaultReminderBatch        = 32
	defaultWorkerPoolSize       = 2
	defaultShutdownTimeout      = 10 * time.Second
	defaultAnalyticsLogPath     = "analytics.log"
	defaultImageMaxDimension    = 1600
	defaultServicePrices        = "1=500,2=400,3=300"
	defaultLogLevel             = "info"
	defaultEnvFile              = ".env"
)

// Load parses configuration from flags, environment variables and the optional .env file.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withDotEnv layers values from ENV_FILE under the given lookup.
// Variables already present in the environment win.
func withDotEnv(lookup envLookup) (envLookup, error) {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		ListenAddress:        getString(lookup, "RUN_ADDRESS", defaultListenAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		APIBaseURL:           getString(lookup, "API_BASE_URL", ""),
		TokenSecret:          getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		APITimeout:           getDuration(lookup, "API_TIMEOUT", defaultAPITimeout),
		ReminderPollInterval: getDuration(lookup, "REMINDER_POLL_INTERVAL", defaultReminderPollInterval),
		ReminderBatch:        getInt(lookup, "REMINDER_BATCH_SIZE", defaultReminderBatch),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AnalyticsLogPath:     getString(lookup, "ANALYTICS_LOG_PATH", defaultAnalyticsLogPath),
		ImageMaxDimension:    getInt(lookup, "IMAGE_MAX_DIMENSION", defaultImageMaxDimension),
		ImageDir:             getString(lookup, "IMAGE_DIR", ""),
		ServicePrices:        getString(lookup, "SERVICE_PRICES", defaultServicePrices),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("cleanorder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		apiTimeoutStr      = cfg.APITimeout.String()
		pollIntervalStr    = cfg.ReminderPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.ListenAddress, "a", cfg.ListenAddress, "Control API listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.APIBaseURL, "r", cfg.APIBaseURL, "Remote service base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for sealing the stored auth token")
	fs.StringVar(&apiTimeoutStr, "api-timeout", apiTimeoutStr, "Remote request timeout")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between reminder polls")
	fs.IntVar(&cfg.ReminderBatch, "poll-batch", cfg.ReminderBatch, "Maximum reminders per polling batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reminder workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.AnalyticsLogPath, "analytics-log", cfg.AnalyticsLogPath, "Local analytics log file")
	fs.IntVar(&cfg.ImageMaxDimension, "image-max-dim", cfg.ImageMaxDimension, "Longest image side before upload, 0 disables resizing")
	fs.StringVar(&cfg.ImageDir, "image-dir", cfg.ImageDir, "Directory attached images must live in, defaults to the home directory")
	fs.StringVar(&cfg.ServicePrices, "service-prices", cfg.ServicePrices, "Service catalog prices as id=price pairs")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.APITimeout, err = time.ParseDuration(apiTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}

	if cfg.ReminderPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReminderBatch <= 0 {
		cfg.ReminderBatch = defaultReminderBatch
	}

	if cfg.ReminderPollInterval <= 0 {
		cfg.ReminderPollInterval = defaultReminderPollInterval
	}

	if cfg.APITimeout <= 0 {
		cfg.APITimeout = defaultAPITimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ImageMaxDimension < 0 {
		cfg.ImageMaxDimension = 0
	}

	if cfg.ImageDir == "" {
		if cfg.ImageDir, err = os.UserHomeDir(); err != nil {
			return nil, fmt.Errorf("resolve image directory: %w", err)
		}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
