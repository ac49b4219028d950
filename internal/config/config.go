package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/soccerlens/scout/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	devBaseURL  = "http://localhost:8000/api"
	prodBaseURL = "https://api.soccerlens.io/api"
)

// Config stores runtime configuration for the client. The build-mode switch
// (APP_ENV) is the single knob the core depends on: it selects the backend
// base address. Everything else is ambient tuning with safe defaults.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	BaseURL      string
	Timeout      time.Duration
	ProbeTimeout time.Duration

	PageSize int

	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int

	CacheEnabled bool
	CacheTTL     time.Duration

	LeaderboardWorkers int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	baseURL := strings.TrimSpace(getEnv("SOCCERLENS_BASE_URL", ""))
	if baseURL == "" {
		baseURL = devBaseURL
		if appEnv == EnvProd {
			baseURL = prodBaseURL
		}
	}

	timeout, err := time.ParseDuration(getEnv("SOCCERLENS_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("SOCCERLENS_TIMEOUT must be > 0")
	}

	probeTimeout, err := time.ParseDuration(getEnv("SOCCERLENS_PROBE_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_PROBE_TIMEOUT: %w", err)
	}
	if probeTimeout <= 0 {
		return Config{}, fmt.Errorf("SOCCERLENS_PROBE_TIMEOUT must be > 0")
	}

	pageSize, err := getEnvAsInt("SOCCERLENS_PAGE_SIZE", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_PAGE_SIZE: %w", err)
	}
	if pageSize < 1 || pageSize > 100 {
		return Config{}, fmt.Errorf("SOCCERLENS_PAGE_SIZE must be in [1,100]")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("SOCCERLENS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("SOCCERLENS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SOCCERLENS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("SOCCERLENS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SOCCERLENS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("SOCCERLENS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SOCCERLENS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	leaderboardWorkers, err := getEnvAsInt("SOCCERLENS_LEADERBOARD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCERLENS_LEADERBOARD_WORKERS: %w", err)
	}
	if leaderboardWorkers < 1 {
		return Config{}, fmt.Errorf("SOCCERLENS_LEADERBOARD_WORKERS must be >= 1")
	}

	return Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "soccerlens-scout"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		BaseURL:               baseURL,
		Timeout:               timeout,
		ProbeTimeout:          probeTimeout,
		PageSize:              pageSize,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		CacheEnabled:          cacheEnabled,
		CacheTTL:              cacheTTL,
		LeaderboardWorkers:    leaderboardWorkers,
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
