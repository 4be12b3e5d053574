package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 96.0, cfg.Run.Sheet.Length)
	assert.Equal(t, 48.0, cfg.Run.Sheet.Width)
	assert.Equal(t, 0.125, cfg.Run.Kerf)
	assert.Equal(t, 100, cfg.Run.MaxSheets)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SHEET_LENGTH", "60")
	t.Setenv("KERF", "0.25")
	t.Setenv("MAX_SHEETS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 60.0, cfg.Run.Sheet.Length)
	assert.Equal(t, 0.25, cfg.Run.Kerf)
	assert.Equal(t, 5, cfg.Run.MaxSheets)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_SHEETS", "lots")
	t.Setenv("KERF", "thin")

	cfg := Load()
	assert.Equal(t, 100, cfg.Run.MaxSheets)
	assert.Equal(t, 0.125, cfg.Run.Kerf)
}
