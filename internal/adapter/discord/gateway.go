package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/LucasLR2/1ebot/internal/domain"
	"github.com/LucasLR2/1ebot/internal/platform/correlation"
)

// Gateway wraps the discordgo session and fans every inbound message out
// to the registered handlers in order. discordgo dispatches events for one
// session sequentially, which gives the per-guild in-order processing the
// core relies on.
type Gateway struct {
	session       *discordgo.Session
	serviceUserID string
	handlers      []domain.EventHandler
}

func NewGateway(token, serviceUserID string, handlers ...domain.EventHandler) (*Gateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	g := &Gateway{
		session:       session,
		serviceUserID: serviceUserID,
		handlers:      handlers,
	}
	session.AddHandler(g.onReady)
	session.AddHandler(g.onMessageCreate)
	return g, nil
}

// AddHandlers appends event handlers. Call before Open; the slice is not
// guarded against concurrent mutation.
func (g *Gateway) AddHandlers(handlers ...domain.EventHandler) {
	g.handlers = append(g.handlers, handlers...)
}

// Open connects to the gateway and starts receiving events.
func (g *Gateway) Open() error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (g *Gateway) Close() error {
	return g.session.Close()
}

// Session exposes the underlying session for the Messenger.
func (g *Gateway) Session() *discordgo.Session {
	return g.session
}

// Ready reports whether the gateway holds an identified session, for the
// ops readiness probe.
func (g *Gateway) Ready() bool {
	return g.session.State != nil && g.session.State.User != nil
}

func (g *Gateway) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Gateway connected",
		"username", r.User.Username, "user_id", r.User.ID, "guilds", len(r.Guilds))
}

func (g *Gateway) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.GuildID == "" {
		return
	}

	ctx := correlation.WithID(context.Background(), correlation.NewID())
	ev := g.toChannelEvent(s, m)

	for _, h := range g.handlers {
		h.HandleEvent(ctx, ev)
	}
}

func (g *Gateway) toChannelEvent(s *discordgo.Session, m *discordgo.MessageCreate) domain.ChannelEvent {
	ev := domain.ChannelEvent{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		AuthorID:    m.Author.ID,
		AuthorBot:   m.Author.Bot,
		AuthorAdmin: g.isAdmin(s, m),
		FromService: m.Author.ID == g.serviceUserID,
		Content:     m.Content,
	}

	if m.Interaction != nil {
		ev.InvocationName = m.Interaction.Name
		if m.Interaction.User != nil {
			ev.InvocationUserID = m.Interaction.User.ID
		}
	}

	for _, embed := range m.Embeds {
		if embed == nil {
			continue
		}
		ev.RichBlocks = append(ev.RichBlocks, domain.RichBlock{
			Title:       embed.Title,
			Description: embed.Description,
		})
	}

	return ev
}

func (g *Gateway) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.Author.Bot {
		return false
	}
	perms, err := s.State.MessagePermissions(m.Message)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}
