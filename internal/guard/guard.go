// Package guard gates the watched channel: regular-user messages outside
// the small allowed phrase set are removed and answered with a short-lived
// warning.
package guard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/LucasLR2/1ebot/internal/domain"
	"github.com/LucasLR2/1ebot/internal/metrics"
	"github.com/LucasLR2/1ebot/internal/platform/correlation"
)

// ChannelGuard deletes disallowed user messages in the watched channel and
// posts a soft warning that is itself deleted after warnTTL. Warnings are
// rate limited so a burst of chatter produces one notice, not one per
// message. Admins using a "!"-prefixed command are exempt.
type ChannelGuard struct {
	watchedChannelID string
	allowed          map[string]struct{}
	messenger        domain.Messenger
	clock            clockwork.Clock
	warnTTL          time.Duration
	warnLimiter      *rate.Limiter
}

func NewChannelGuard(watchedChannelID string, allowedPhrases []string, messenger domain.Messenger, clock clockwork.Clock, warnTTL time.Duration) *ChannelGuard {
	allowed := make(map[string]struct{}, len(allowedPhrases))
	for _, p := range allowedPhrases {
		allowed[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	return &ChannelGuard{
		watchedChannelID: watchedChannelID,
		allowed:          allowed,
		messenger:        messenger,
		clock:            clock,
		warnTTL:          warnTTL,
		warnLimiter:      rate.NewLimiter(rate.Every(30*time.Second), 1),
	}
}

// HandleEvent implements domain.EventHandler.
func (g *ChannelGuard) HandleEvent(ctx context.Context, ev domain.ChannelEvent) {
	if ev.ChannelID != g.watchedChannelID || ev.AuthorBot {
		return
	}

	content := strings.ToLower(strings.TrimSpace(ev.Content))
	if ev.AuthorAdmin && strings.HasPrefix(content, "!") {
		return
	}
	if _, ok := g.allowed[content]; ok {
		return
	}

	if err := g.messenger.DeleteMessage(ctx, ev.ChannelID, ev.MessageID); err != nil {
		metrics.DeleteFailures.Inc()
		if errors.Is(err, domain.ErrPermissionDenied) {
			slog.WarnContext(ctx, "missing permission to remove disallowed message",
				"channel", ev.ChannelID, "message", ev.MessageID)
		} else {
			slog.ErrorContext(ctx, "failed to remove disallowed message",
				"channel", ev.ChannelID, "message", ev.MessageID, "error", err)
		}
		return
	}
	metrics.MessagesDeleted.WithLabelValues("channel_guard").Inc()

	if !g.warnLimiter.Allow() {
		return
	}
	g.postWarning(ctx, ev.ChannelID)
}

func (g *ChannelGuard) postWarning(ctx context.Context, channelID string) {
	phrases := make([]string, 0, len(g.allowed))
	for p := range g.allowed {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	warning := "⚠️ Sólo se permiten los comandos: " + strings.Join(phrases, ", ") + " en este canal."

	warningID, err := g.messenger.SendMessage(ctx, channelID, warning, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to post channel warning", "channel", channelID, "error", err)
		return
	}
	metrics.WarningsSent.Inc()

	g.clock.AfterFunc(g.warnTTL, func() {
		cleanupCtx := correlation.WithID(context.Background(), correlation.NewID())
		if err := g.messenger.DeleteMessage(cleanupCtx, channelID, warningID); err != nil {
			slog.DebugContext(cleanupCtx, "failed to clean up warning message",
				"channel", channelID, "message", warningID, "error", err)
		}
	})
}
