package domain

import "context"

// EventHandler consumes inbound channel events. The gateway adapter fans
// each event out to every registered handler in order, one event at a time.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev ChannelEvent)
}
