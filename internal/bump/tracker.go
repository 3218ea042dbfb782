package bump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LucasLR2/1ebot/internal/domain"
	"github.com/LucasLR2/1ebot/internal/metrics"
	"github.com/LucasLR2/1ebot/internal/platform/correlation"
)

const embedColor = 0x00ffff

// Tracker is the bump orchestrator. It feeds every classified event through
// the transition table: invocations register a pending slot, a matching
// success confirmation claims it, credits the ledger, thanks the user and
// arms the reminder. All failures are absorbed here; nothing propagates to
// the event loop.
type Tracker struct {
	classifier  *Classifier
	pending     *PendingRegistry
	reminders   *Scheduler
	ledger      domain.LedgerStore
	leaderboard domain.Leaderboard
	messenger   domain.Messenger

	countdown      time.Duration
	reminderRoleID string
}

func NewTracker(
	classifier *Classifier,
	pending *PendingRegistry,
	reminders *Scheduler,
	ledger domain.LedgerStore,
	leaderboard domain.Leaderboard,
	messenger domain.Messenger,
	countdown time.Duration,
	reminderRoleID string,
) *Tracker {
	return &Tracker{
		classifier:     classifier,
		pending:        pending,
		reminders:      reminders,
		ledger:         ledger,
		leaderboard:    leaderboard,
		messenger:      messenger,
		countdown:      countdown,
		reminderRoleID: reminderRoleID,
	}
}

// HandleEvent implements domain.EventHandler.
func (t *Tracker) HandleEvent(ctx context.Context, ev domain.ChannelEvent) {
	c := t.classifier.Classify(ev)
	metrics.EventsClassified.WithLabelValues(c.Kind.String()).Inc()

	switch c.Kind {
	case domain.KindRejection:
		// The watched channel is reserved for the tracked command.
		t.deleteMessage(ctx, ev, "rejection")

	case domain.KindInvocation, domain.KindManualTrigger:
		t.pending.Register(ev.GuildID, c.InitiatorID)
		slog.DebugContext(ctx, "pending bump registered",
			"guild", ev.GuildID, "user", c.InitiatorID, "kind", c.Kind.String())
		if c.AlsoConfirmation != nil {
			t.handleConfirmation(ctx, ev, *c.AlsoConfirmation)
		}

	case domain.KindConfirmation:
		t.handleConfirmation(ctx, ev, c)
	}
}

func (t *Tracker) handleConfirmation(ctx context.Context, ev domain.ChannelEvent, c domain.Classification) {
	if !c.Success {
		// A failed attempt keeps the slot: the user may retry and the
		// later success still belongs to them. Outside the awaiting
		// state a failure is unrelated chatter and left alone.
		if t.pending.Pending(ev.GuildID) {
			t.deleteMessage(ctx, ev, "failed_confirmation")
		}
		return
	}

	userID, ok := t.pending.Claim(ev.GuildID)
	if !ok {
		// Race with unrelated chatter, not an error.
		slog.DebugContext(ctx, "success confirmation without pending bump", "guild", ev.GuildID)
		metrics.UnmatchedConfirmations.Inc()
		return
	}

	total, err := t.ledger.IncrementBump(ctx, userID, ev.GuildID)
	if err != nil {
		// Do not thank the user for a credit that was never stored, and
		// do not arm the reminder: the attempt is lost.
		slog.ErrorContext(ctx, "ledger increment failed",
			"guild", ev.GuildID, "user", userID, "error", err)
		metrics.LedgerErrors.WithLabelValues("increment").Inc()
		return
	}
	metrics.BumpsConfirmed.Inc()

	if err := t.leaderboard.Record(ctx, ev.GuildID, userID); err != nil {
		slog.WarnContext(ctx, "leaderboard mirror update failed",
			"guild", ev.GuildID, "user", userID, "error", err)
	}

	t.sendThanks(ctx, ev.ChannelID, userID, total)

	channelID := ev.ChannelID
	t.reminders.Arm(ev.GuildID, t.countdown, func() {
		t.postReminder(ev.GuildID, channelID)
	})

	slog.InfoContext(ctx, "bump confirmed",
		"guild", ev.GuildID, "user", userID, "total", total)
}

func (t *Tracker) sendThanks(ctx context.Context, channelID, userID string, total int) {
	thanks := &domain.Embed{
		Description: fmt.Sprintf(
			"🙌 **¡Mil gracias!**\n"+
				"💖 Agradecemos que hayas bumpeado nuestro servidor, <@%s>.\n"+
				"🏆 Has realizado **%d** bumps en total. ¡Fantástico!",
			userID, total),
		Color: embedColor,
	}
	if _, err := t.messenger.SendMessage(ctx, channelID, "", thanks); err != nil {
		slog.WarnContext(ctx, "failed to send thank-you message",
			"channel", channelID, "user", userID, "error", err)
	}
}

// postReminder runs on the scheduler's timeline, outside any event context.
func (t *Tracker) postReminder(guildID, channelID string) {
	ctx := correlation.WithID(context.Background(), correlation.NewID())

	mention := "@here"
	if t.reminderRoleID != "" {
		mention = fmt.Sprintf("<@&%s>", t.reminderRoleID)
	}

	embed := &domain.Embed{
		Description: "🕒 **¡Es momento de hacer un bump!**\n" +
			"Utiliza **/bump** para apoyar al servidor.",
		Color: embedColor,
	}
	if _, err := t.messenger.SendMessage(ctx, channelID, mention, embed); err != nil {
		slog.WarnContext(ctx, "failed to send bump reminder",
			"guild", guildID, "channel", channelID, "error", err)
	}
}

func (t *Tracker) deleteMessage(ctx context.Context, ev domain.ChannelEvent, reason string) {
	err := t.messenger.DeleteMessage(ctx, ev.ChannelID, ev.MessageID)
	if err == nil {
		metrics.MessagesDeleted.WithLabelValues(reason).Inc()
		return
	}

	metrics.DeleteFailures.Inc()
	if errors.Is(err, domain.ErrPermissionDenied) {
		slog.WarnContext(ctx, "missing permission to delete message",
			"channel", ev.ChannelID, "message", ev.MessageID)
		return
	}
	slog.ErrorContext(ctx, "failed to delete message",
		"channel", ev.ChannelID, "message", ev.MessageID, "error", err)
}
