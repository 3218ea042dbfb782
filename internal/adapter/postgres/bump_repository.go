package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LucasLR2/1ebot/internal/domain"
)

// BumpRepo is the durable ledger of confirmed bumps per (user, guild).
type BumpRepo struct {
	pool *pgxpool.Pool
}

func NewBumpRepo(pool *pgxpool.Pool) *BumpRepo {
	return &BumpRepo{pool: pool}
}

var _ domain.LedgerStore = (*BumpRepo)(nil)

// IncrementBump upserts the counter and returns the new total. The RETURNING
// clause means the caller only sees a total the database has acknowledged.
func (r *BumpRepo) IncrementBump(ctx context.Context, userID, guildID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO bumps (user_id, guild_id, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, guild_id)
		DO UPDATE SET count = bumps.count + 1
		RETURNING count`,
		userID, guildID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment bump: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}
	return count, nil
}

func (r *BumpRepo) GetBumpCount(ctx context.Context, userID, guildID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(
			(SELECT count FROM bumps WHERE user_id = $1 AND guild_id = $2), 0)`,
		userID, guildID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("get bump count: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}
	return count, nil
}

func (r *BumpRepo) ListBumpCounts(ctx context.Context, guildID string) ([]domain.BumpCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, count
		FROM bumps
		WHERE guild_id = $1
		ORDER BY count DESC, user_id`,
		guildID)
	if err != nil {
		return nil, fmt.Errorf("list bump counts: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}
	defer rows.Close()

	var counts []domain.BumpCount
	for rows.Next() {
		var c domain.BumpCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan bump count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bump counts: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}
	return counts, nil
}
