// Package rank answers the ledger read commands: a user's own bump total
// and the guild top-10 ranking.
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LucasLR2/1ebot/internal/domain"
	"github.com/LucasLR2/1ebot/internal/metrics"
)

const (
	embedColor  = 0x00ffff
	rankingSize = 10

	CommandMyBumps = "!misbumps"
	CommandRanking = "!clasificacion"
)

// Reporter serves the ranking commands in the watched channel. Reads go to
// the Redis leaderboard mirror first; a miss or mirror failure falls back
// to the ledger store and backfills the mirror from it.
type Reporter struct {
	watchedChannelID string
	ledger           domain.LedgerStore
	board            domain.Leaderboard
	messenger        domain.Messenger
}

func NewReporter(watchedChannelID string, ledger domain.LedgerStore, board domain.Leaderboard, messenger domain.Messenger) *Reporter {
	return &Reporter{
		watchedChannelID: watchedChannelID,
		ledger:           ledger,
		board:            board,
		messenger:        messenger,
	}
}

// HandleEvent implements domain.EventHandler.
func (r *Reporter) HandleEvent(ctx context.Context, ev domain.ChannelEvent) {
	if ev.ChannelID != r.watchedChannelID || ev.AuthorBot {
		return
	}

	switch strings.ToLower(strings.TrimSpace(ev.Content)) {
	case CommandMyBumps:
		r.replyMyBumps(ctx, ev)
	case CommandRanking:
		r.replyRanking(ctx, ev)
	}
}

func (r *Reporter) replyMyBumps(ctx context.Context, ev domain.ChannelEvent) {
	count, err := r.ledger.GetBumpCount(ctx, ev.AuthorID, ev.GuildID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read bump count",
			"guild", ev.GuildID, "user", ev.AuthorID, "error", err)
		metrics.LedgerErrors.WithLabelValues("get").Inc()
		r.send(ctx, ev.ChannelID, "❌ No pude consultar tus bumps ahora mismo. Inténtalo más tarde.", nil)
		return
	}

	embed := &domain.Embed{
		Description: fmt.Sprintf("📊 <@%s>, has realizado **%d** bumps en total.", ev.AuthorID, count),
		Color:       embedColor,
	}
	r.send(ctx, ev.ChannelID, "", embed)
}

func (r *Reporter) replyRanking(ctx context.Context, ev domain.ChannelEvent) {
	top, err := r.board.Top(ctx, ev.GuildID, rankingSize)
	if err != nil || len(top) == 0 {
		if err != nil {
			slog.WarnContext(ctx, "leaderboard mirror read failed, falling back to ledger",
				"guild", ev.GuildID, "error", err)
		}
		top = r.rankingFromLedger(ctx, ev.GuildID)
	}

	if len(top) == 0 {
		r.send(ctx, ev.ChannelID, "❌ No hay bumps registrados aún.", nil)
		return
	}

	var b strings.Builder
	for i, entry := range top {
		fmt.Fprintf(&b, "**%d.** <@%s> — **%d** bumps\n", i+1, entry.UserID, entry.Count)
	}
	embed := &domain.Embed{
		Title:       "🏆 Clasificación de Bumps",
		Description: b.String(),
		Color:       embedColor,
	}
	r.send(ctx, ev.ChannelID, "", embed)
}

// rankingFromLedger reads the durable counters and repopulates the mirror
// so the next ranking request is served from Redis again.
func (r *Reporter) rankingFromLedger(ctx context.Context, guildID string) []domain.BumpCount {
	counts, err := r.ledger.ListBumpCounts(ctx, guildID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list bump counts", "guild", guildID, "error", err)
		metrics.LedgerErrors.WithLabelValues("list").Inc()
		return nil
	}

	if backfiller, ok := r.board.(domain.LeaderboardBackfiller); ok && len(counts) > 0 {
		if err := backfiller.Backfill(ctx, guildID, counts); err != nil {
			slog.WarnContext(ctx, "leaderboard backfill failed", "guild", guildID, "error", err)
		}
	}

	if len(counts) > rankingSize {
		counts = counts[:rankingSize]
	}
	return counts
}

func (r *Reporter) send(ctx context.Context, channelID, content string, embed *domain.Embed) {
	if _, err := r.messenger.SendMessage(ctx, channelID, content, embed); err != nil {
		slog.WarnContext(ctx, "failed to send ranking reply", "channel", channelID, "error", err)
	}
}
