package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultModel      = "llama-3.1-70b-versatile"
	defaultTimeout    = 30 * time.Second
	defaultMaxHistory = 10
	defaultPort       = "8080"
)

type Config struct {
	// Completion upstream
	APIKey            string
	ParamPrefix       string
	Model             string
	BaseURL           string
	CompletionTimeout time.Duration

	// Conversation
	MaxHistory int

	// Dev server
	Port string
}

// Load reads configuration from the process environment. Either GROQ_API_KEY
// or PARAM_PREFIX must be set. Unparseable numeric settings fall back to
// their defaults with a warning on logger.
func Load(logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := Config{
		APIKey:            strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		ParamPrefix:       strings.TrimSpace(os.Getenv("PARAM_PREFIX")),
		Model:             getEnvOrDefault("COACH_MODEL", defaultModel),
		BaseURL:           getEnvOrDefault("COMPLETION_BASE_URL", ""),
		CompletionTimeout: getEnvAsDurationOrDefault(logger, "COMPLETION_TIMEOUT", defaultTimeout),
		MaxHistory:        getEnvAsIntOrDefault(logger, "MAX_HISTORY_ENTRIES", defaultMaxHistory),
		Port:              getEnvOrDefault("PORT", defaultPort),
	}
	if cfg.APIKey == "" && cfg.ParamPrefix == "" {
		return Config{}, errors.New("config: GROQ_API_KEY or PARAM_PREFIX must be set")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(logger *slog.Logger, key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		logger.Warn("invalid positive integer setting, using default", "key", key, "value", val, "default", defaultVal)
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(logger *slog.Logger, key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		logger.Warn("invalid duration setting, using default", "key", key, "value", val, "default", defaultVal.String())
		return defaultVal
	}
	return d
}
