package domain

import "context"

// BumpCount is one user's confirmed bump total within a guild.
type BumpCount struct {
	UserID string
	Count  int
}

// LedgerStore is the durable per-(user, guild) bump counter.
type LedgerStore interface {
	// IncrementBump adds one confirmed bump and returns the new total.
	// The increment must be durably acknowledged before it returns.
	IncrementBump(ctx context.Context, userID, guildID string) (int, error)
	GetBumpCount(ctx context.Context, userID, guildID string) (int, error)
	// ListBumpCounts returns the guild's counters ordered by count descending.
	ListBumpCounts(ctx context.Context, guildID string) ([]BumpCount, error)
}

// Leaderboard is a fast read mirror of the ledger used by the ranking
// command. Postgres stays the source of truth; mirror misses fall back.
type Leaderboard interface {
	Record(ctx context.Context, guildID, userID string) error
	Top(ctx context.Context, guildID string, n int) ([]BumpCount, error)
}

// LeaderboardBackfiller is implemented by mirrors that can be repopulated
// from the durable ledger after a miss or a Redis flush.
type LeaderboardBackfiller interface {
	Backfill(ctx context.Context, guildID string, counts []BumpCount) error
}
