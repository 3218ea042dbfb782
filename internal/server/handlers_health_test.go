package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRedisClient provides a minimal mock for Redis health checks
type mockRedisClient struct {
	pingErr error
}

func (m *mockRedisClient) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	if m.pingErr != nil {
		cmd.SetErr(m.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

// mockPgxPool provides a minimal mock for PostgreSQL health checks
type mockPgxPool struct {
	pingErr error
}

func (m *mockPgxPool) Ping(ctx context.Context) error {
	return m.pingErr
}

type mockGateway struct {
	ready bool
}

func (m *mockGateway) Ready() bool {
	return m.ready
}

func newTestServer(redis *mockRedisClient, postgres *mockPgxPool, gateway *mockGateway) *Server {
	return NewServer("0", redis, postgres, gateway)
}

func healthRequest(path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleLiveness(t *testing.T) {
	c, rec := healthRequest("/health/live")
	srv := newTestServer(&mockRedisClient{}, &mockPgxPool{}, &mockGateway{ready: true})

	err := srv.handleLiveness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"uptime"`)
}

func TestHandleReadiness_AllHealthy(t *testing.T) {
	c, rec := healthRequest("/health/ready")
	srv := newTestServer(&mockRedisClient{}, &mockPgxPool{}, &mockGateway{ready: true})

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_PostgresDown(t *testing.T) {
	c, rec := healthRequest("/health/ready")
	srv := newTestServer(
		&mockRedisClient{},
		&mockPgxPool{pingErr: errors.New("database unreachable")},
		&mockGateway{ready: true},
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), `"failed_check":"postgres"`)
	assert.Contains(t, rec.Body.String(), `"error":"database unreachable"`)
}

func TestHandleReadiness_RedisDown(t *testing.T) {
	c, rec := healthRequest("/health/ready")
	srv := newTestServer(
		&mockRedisClient{pingErr: errors.New("connection refused")},
		&mockPgxPool{},
		&mockGateway{ready: true},
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"redis"`)
	assert.Contains(t, rec.Body.String(), `"error":"connection refused"`)
}

func TestHandleReadiness_GatewayNotIdentified(t *testing.T) {
	c, rec := healthRequest("/health/ready")
	srv := newTestServer(&mockRedisClient{}, &mockPgxPool{}, &mockGateway{ready: false})

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"gateway"`)
	assert.Contains(t, rec.Body.String(), `"error":"gateway session not identified"`)
}

func TestHandleVersion(t *testing.T) {
	c, rec := healthRequest("/version")
	srv := newTestServer(&mockRedisClient{}, &mockPgxPool{}, &mockGateway{ready: true})

	err := srv.handleVersion(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}
