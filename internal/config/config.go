package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application settings read from the environment
type Config struct {
	ServerPort         string
	GinMode            string
	JWTSecret          string
	JWTExpirationHours int64
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	DB                 *DBConfig
}

// Load reads the application configuration. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours, err := getenvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getenvDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         getenv("SERVER_PORT", "3000"),
		GinMode:            os.Getenv("GIN_MODE"),
		JWTSecret:          jwtSecret,
		JWTExpirationHours: jwtExpHours,
		LogLevel:           level,
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		ShutdownTimeout:    shutdownTimeout,
		DB:                 dbCfg,
	}, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return parsed, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return parsed, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
