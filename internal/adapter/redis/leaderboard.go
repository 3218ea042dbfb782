package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/LucasLR2/1ebot/internal/domain"
)

const leaderboardKeyPrefix = "bumps:leaderboard:"

// Leaderboard mirrors the bump ledger in a per-guild sorted set so the
// ranking command reads top-N without scanning Postgres. The mirror is
// best-effort: Postgres stays the source of truth and Backfill repopulates
// the set after a miss or flush.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

var (
	_ domain.Leaderboard           = (*Leaderboard)(nil)
	_ domain.LeaderboardBackfiller = (*Leaderboard)(nil)
)

func leaderboardKey(guildID string) string {
	return leaderboardKeyPrefix + guildID
}

// Record adds one confirmed bump for the user to the guild's mirror.
func (l *Leaderboard) Record(ctx context.Context, guildID, userID string) error {
	if err := l.rdb.ZIncrBy(ctx, leaderboardKey(guildID), 1, userID).Err(); err != nil {
		return fmt.Errorf("leaderboard record: %w", err)
	}
	return nil
}

// Top returns the guild's n highest counters, descending.
func (l *Leaderboard) Top(ctx context.Context, guildID string, n int) ([]domain.BumpCount, error) {
	entries, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey(guildID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard top: %w", err)
	}

	counts := make([]domain.BumpCount, 0, len(entries))
	for _, entry := range entries {
		userID, ok := entry.Member.(string)
		if !ok {
			userID = fmt.Sprint(entry.Member)
		}
		counts = append(counts, domain.BumpCount{
			UserID: userID,
			Count:  int(entry.Score),
		})
	}
	return counts, nil
}

// Backfill replaces the guild's mirror with the durable ledger counters.
func (l *Leaderboard) Backfill(ctx context.Context, guildID string, counts []domain.BumpCount) error {
	key := leaderboardKey(guildID)

	members := make([]redis.Z, len(counts))
	for i, c := range counts {
		members[i] = redis.Z{Score: float64(c.Count), Member: c.UserID}
	}

	pipe := l.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, key, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard backfill: %w", err)
	}
	return nil
}

// Count reads one user's mirrored counter; missing members read as zero.
func (l *Leaderboard) Count(ctx context.Context, guildID, userID string) (int, error) {
	score, err := l.rdb.ZScore(ctx, leaderboardKey(guildID), userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard count: %w", err)
	}
	return int(score), nil
}
