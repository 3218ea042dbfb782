// Package server hosts the operational HTTP surface: health probes,
// Prometheus metrics and a version endpoint. The bot itself has no
// public HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

// redisHealthChecker is a minimal interface for Redis health checks
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// gatewayHealthChecker reports whether the chat gateway session is identified
type gatewayHealthChecker interface {
	Ready() bool
}

type Server struct {
	echo      *echo.Echo
	port      string
	redis     redisHealthChecker
	postgres  postgresHealthChecker
	gateway   gatewayHealthChecker
	startTime time.Time
}

func NewServer(port string, redis redisHealthChecker, postgres postgresHealthChecker, gateway gatewayHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		port:      port,
		redis:     redis,
		postgres:  postgres,
		gateway:   gateway,
		startTime: time.Now(),
	}
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting ops server", "port", s.port)
	return s.echo.Start(fmt.Sprintf(":%s", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
