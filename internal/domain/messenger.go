package domain

import "context"

// Embed is an outbound rich-content block.
type Embed struct {
	Title       string
	Description string
	Color       int
}

// Messenger is the outbound messaging surface the core writes through.
// Implementations must translate permission failures into
// ErrPermissionDenied so callers can apply the log-and-continue policy.
type Messenger interface {
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	// SendMessage posts plain content, an embed, or both. Returns the ID
	// of the created message.
	SendMessage(ctx context.Context, channelID, content string, embed *Embed) (string, error)
}
