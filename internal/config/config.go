// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/plycut/internal/model"
)

// Config holds the complete service configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Run    model.RunConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables, with the engine
// defaults for anything unset.
func Load() Config {
	run := model.DefaultRunConfig()
	run.Sheet.Length = getEnvFloat("SHEET_LENGTH", run.Sheet.Length)
	run.Sheet.Width = getEnvFloat("SHEET_WIDTH", run.Sheet.Width)
	run.Kerf = getEnvFloat("KERF", run.Kerf)
	run.MaxSheets = getEnvInt("MAX_SHEETS", run.MaxSheets)

	return Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: parseOrigins(os.Getenv("CORS_ORIGINS")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Run: run,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// parseOrigins splits a comma-separated origin list. An empty value allows
// all origins.
func parseOrigins(s string) []string {
	if s == "" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
