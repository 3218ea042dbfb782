package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/LucasLR2/1ebot/internal/domain"
)

var (
	testRedisURL   string
	redisContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}
	redisContainer = container

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	code := m.Run()
	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, testRedisURL)
	require.NoError(t, err)
	require.NoError(t, client.FlushAll(ctx).Err())

	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLeaderboard_RecordAndTop(t *testing.T) {
	board := NewLeaderboard(setupTestClient(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, board.Record(ctx, "guild-7", "alice"))
	}
	require.NoError(t, board.Record(ctx, "guild-7", "bob"))

	top, err := board.Top(ctx, "guild-7", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.BumpCount{
		{UserID: "alice", Count: 3},
		{UserID: "bob", Count: 1},
	}, top)
}

func TestLeaderboard_TopLimitsResults(t *testing.T) {
	board := NewLeaderboard(setupTestClient(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		user := fmt.Sprintf("user-%d", i)
		for j := 0; j <= i; j++ {
			require.NoError(t, board.Record(ctx, "guild-7", user))
		}
	}

	top, err := board.Top(ctx, "guild-7", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "user-4", top[0].UserID)
	assert.Equal(t, "user-3", top[1].UserID)
}

func TestLeaderboard_GuildsAreIsolated(t *testing.T) {
	board := NewLeaderboard(setupTestClient(t))
	ctx := context.Background()

	require.NoError(t, board.Record(ctx, "guild-7", "alice"))

	top, err := board.Top(ctx, "guild-8", 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestLeaderboard_BackfillReplacesMirror(t *testing.T) {
	board := NewLeaderboard(setupTestClient(t))
	ctx := context.Background()

	require.NoError(t, board.Record(ctx, "guild-7", "stale"))

	err := board.Backfill(ctx, "guild-7", []domain.BumpCount{
		{UserID: "alice", Count: 12},
		{UserID: "bob", Count: 4},
	})
	require.NoError(t, err)

	top, err := board.Top(ctx, "guild-7", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.BumpCount{
		{UserID: "alice", Count: 12},
		{UserID: "bob", Count: 4},
	}, top)
}

func TestLeaderboard_CountMissingIsZero(t *testing.T) {
	board := NewLeaderboard(setupTestClient(t))

	count, err := board.Count(context.Background(), "guild-7", "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
