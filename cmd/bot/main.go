package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/LucasLR2/1ebot/internal/adapter/discord"
	"github.com/LucasLR2/1ebot/internal/adapter/postgres"
	"github.com/LucasLR2/1ebot/internal/adapter/redis"
	"github.com/LucasLR2/1ebot/internal/bump"
	"github.com/LucasLR2/1ebot/internal/guard"
	"github.com/LucasLR2/1ebot/internal/platform/config"
	"github.com/LucasLR2/1ebot/internal/platform/logging"
	"github.com/LucasLR2/1ebot/internal/rank"
	"github.com/LucasLR2/1ebot/internal/server"
	"github.com/LucasLR2/1ebot/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, gateway *discord.Gateway, reminders *bump.Scheduler) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		if err := gateway.Close(); err != nil {
			slog.Error("Gateway shutdown error", "error", err)
		}
		reminders.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Ops server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "version", version.Get().Version, "ops_port", cfg.OpsPort)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	ledger := postgres.NewBumpRepo(pool)
	leaderboard := redis.NewLeaderboard(redisClient)

	gateway, err := discord.NewGateway(cfg.DiscordToken, cfg.ServiceUserID)
	if err != nil {
		slog.Error("Failed to create gateway session", "error", err)
		os.Exit(1)
	}
	messenger := discord.NewMessenger(gateway.Session())

	classifier := bump.NewClassifier(cfg.WatchedChannelID, cfg.TrackedCommand, cfg.ManualTrigger, cfg.SuccessPhraseList())
	pending := bump.NewPendingRegistry()
	reminders := bump.NewScheduler(clock)
	tracker := bump.NewTracker(classifier, pending, reminders, ledger, leaderboard, messenger, cfg.ReminderCountdown, cfg.ReminderRoleID)

	allowed := []string{cfg.ManualTrigger, rank.CommandMyBumps, rank.CommandRanking}
	channelGuard := guard.NewChannelGuard(cfg.WatchedChannelID, allowed, messenger, clock, cfg.WarningTTL)

	reporter := rank.NewReporter(cfg.WatchedChannelID, ledger, leaderboard, messenger)

	gateway.AddHandlers(channelGuard, tracker, reporter)

	if err := gateway.Open(); err != nil {
		slog.Error("Failed to open gateway connection", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.OpsPort, redisClient, pool, gateway)
	done := runGracefulShutdown(srv, gateway, reminders)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Ops server error", "error", err)
		os.Exit(1)
	}

	<-done
}
