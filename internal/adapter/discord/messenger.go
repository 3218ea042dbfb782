package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/LucasLR2/1ebot/internal/domain"
)

// Messenger implements domain.Messenger over the Discord REST API.
type Messenger struct {
	session *discordgo.Session
}

func NewMessenger(session *discordgo.Session) *Messenger {
	return &Messenger{session: session}
}

func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, mapRESTError(err))
	}
	return nil
}

func (m *Messenger) SendMessage(ctx context.Context, channelID, content string, embed *domain.Embed) (string, error) {
	send := &discordgo.MessageSend{Content: content}
	if embed != nil {
		send.Embed = &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			Color:       embed.Color,
		}
	}

	msg, err := m.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send message to channel %s: %w", channelID, mapRESTError(err))
	}
	return msg.ID, nil
}

// mapRESTError folds Discord REST failures into the domain sentinels the
// core branches on; everything else passes through untouched.
func mapRESTError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return errors.Join(domain.ErrPermissionDenied, err)
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return errors.Join(domain.ErrNotFound, err)
		}
	}

	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return errors.Join(domain.ErrPermissionDenied, err)
		case http.StatusNotFound:
			return errors.Join(domain.ErrNotFound, err)
		}
	}

	return err
}
