// Package discord owns the gateway session. It translates discordgo
// message events into the transport-neutral domain.ChannelEvent and
// implements the outbound domain.Messenger; no gateway type leaks past
// this package.
package discord
