package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" default:"development"`
	OpsPort string `env:"OPS_PORT" default:"8080"`

	DiscordToken string `env:"DISCORD_TOKEN"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL"`

	// Identity of the listing service whose messages carry bump
	// invocations and confirmations (DISBOARD's bot account).
	ServiceUserID    string `env:"SERVICE_USER_ID"`
	WatchedChannelID string `env:"WATCHED_CHANNEL_ID"`
	ReminderRoleID   string `env:"REMINDER_ROLE_ID"`

	TrackedCommand string `env:"TRACKED_COMMAND" default:"bump"`
	ManualTrigger  string `env:"MANUAL_TRIGGER" default:"/bump"`
	SuccessPhrases string `env:"SUCCESS_PHRASES" default:"bump done,¡hecho!"`

	ReminderCountdown time.Duration `env:"REMINDER_COUNTDOWN" default:"2h"`
	WarningTTL        time.Duration `env:"WARNING_TTL" default:"10s"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SuccessPhraseList splits the configured comma-separated phrase set,
// trimming whitespace and dropping empty entries.
func (c *Config) SuccessPhraseList() []string {
	parts := strings.Split(c.SuccessPhrases, ",")
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DISCORD_TOKEN":      cfg.DiscordToken,
		"DATABASE_URL":       cfg.DatabaseURL,
		"REDIS_URL":          cfg.RedisURL,
		"SERVICE_USER_ID":    cfg.ServiceUserID,
		"WATCHED_CHANNEL_ID": cfg.WatchedChannelID,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.ReminderCountdown <= 0 {
		return fmt.Errorf("REMINDER_COUNTDOWN must be positive, got %s", cfg.ReminderCountdown)
	}
	if len(cfg.SuccessPhraseList()) == 0 {
		return fmt.Errorf("SUCCESS_PHRASES must contain at least one phrase")
	}

	return nil
}
