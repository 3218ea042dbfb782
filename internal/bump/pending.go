package bump

import "sync"

// PendingRegistry holds the per-guild pending-bump slot: the user whose
// invocation is awaiting the service's public confirmation. One slot per
// guild; a newer registration silently overwrites the previous one
// (last-writer-wins). Slots are never persisted.
type PendingRegistry struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewPendingRegistry() *PendingRegistry {
	return &PendingRegistry{slots: make(map[string]string)}
}

// Register sets or overwrites the pending slot for the guild.
func (r *PendingRegistry) Register(guildID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[guildID] = userID
}

// Claim atomically reads and clears the guild's slot. The second return is
// false when no pending bump exists, which is the normal no-op path for
// unrelated confirmations.
func (r *PendingRegistry) Claim(guildID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.slots[guildID]
	if ok {
		delete(r.slots, guildID)
	}
	return userID, ok
}

// Pending reports whether a slot is set for the guild without consuming it.
func (r *PendingRegistry) Pending(guildID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slots[guildID]
	return ok
}
