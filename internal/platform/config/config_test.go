package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "memory")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "notes-app", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiryDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, 8, cfg.BcryptCost)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, "notes_app", cfg.MongoDatabase)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction)
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("ACCESS_TOKEN_EXPIRY_DURATION", "15m")
	t.Setenv("FRONTEND_URL", "https://notes.example.com/")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := LoadConfig([]string{"--port", "5000", "--log-level", "DEBUG"})
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiryDuration)
	assert.Equal(t, "https://notes.example.com", cfg.FrontendURL)
	assert.True(t, cfg.IsProduction)
}

func TestLoadConfig_FatalConditions(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "bad duration", env: map[string]string{"ACCESS_TOKEN_EXPIRY_DURATION": "soon"}},
		{name: "negative duration", env: map[string]string{"REFRESH_TOKEN_EXPIRY_DURATION": "-1h"}},
		{name: "refresh not longer than access", env: map[string]string{
			"ACCESS_TOKEN_EXPIRY_DURATION":  "2h",
			"REFRESH_TOKEN_EXPIRY_DURATION": "1h",
		}},
		{name: "mongo without uri", env: map[string]string{"STORAGE_DRIVER": "mongo", "MONGODB_URI": ""}},
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres", "PGSQL_URL": ""}},
		{name: "unknown driver", args: []string{"--storage", "sqlite"}},
		{name: "unknown flag", args: []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
