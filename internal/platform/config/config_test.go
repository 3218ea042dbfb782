package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SERVICE_USER_ID", "302050872383242240")
	t.Setenv("WATCHED_CHANNEL_ID", "1392893710848622734")
}

func TestLoad_AllRequiredVarsSet(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, "302050872383242240", cfg.ServiceUserID)
	assert.Equal(t, "1392893710848622734", cfg.WatchedChannelID)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bump", cfg.TrackedCommand)
	assert.Equal(t, "/bump", cfg.ManualTrigger)
	assert.Equal(t, 2*time.Hour, cfg.ReminderCountdown)
	assert.Equal(t, 10*time.Second, cfg.WarningTTL)
	assert.Equal(t, []string{"bump done", "¡hecho!"}, cfg.SuccessPhraseList())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		skipEnv string
		wantErr string
	}{
		{"missing DISCORD_TOKEN", "DISCORD_TOKEN", "DISCORD_TOKEN is required"},
		{"missing DATABASE_URL", "DATABASE_URL", "DATABASE_URL is required"},
		{"missing REDIS_URL", "REDIS_URL", "REDIS_URL is required"},
		{"missing SERVICE_USER_ID", "SERVICE_USER_ID", "SERVICE_USER_ID is required"},
		{"missing WATCHED_CHANNEL_ID", "WATCHED_CHANNEL_ID", "WATCHED_CHANNEL_ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.skipEnv, "")

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_InvalidCountdown(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REMINDER_COUNTDOWN", "-5m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMINDER_COUNTDOWN must be positive")
}

func TestSuccessPhraseList_TrimsAndDropsEmpty(t *testing.T) {
	cfg := &Config{SuccessPhrases: " bump done , ¡hecho! ,,  "}
	assert.Equal(t, []string{"bump done", "¡hecho!"}, cfg.SuccessPhraseList())
}
