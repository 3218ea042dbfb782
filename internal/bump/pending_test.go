package bump

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingRegistry_ClaimEmpty(t *testing.T) {
	r := NewPendingRegistry()

	_, ok := r.Claim("guild-7")
	assert.False(t, ok)
}

func TestPendingRegistry_RegisterThenClaim(t *testing.T) {
	r := NewPendingRegistry()

	r.Register("guild-7", "user-a")

	userID, ok := r.Claim("guild-7")
	assert.True(t, ok)
	assert.Equal(t, "user-a", userID)

	// Idempotence: a slot is consumed exactly once.
	_, ok = r.Claim("guild-7")
	assert.False(t, ok)
}

func TestPendingRegistry_LastWriterWins(t *testing.T) {
	r := NewPendingRegistry()

	r.Register("guild-7", "user-a")
	r.Register("guild-7", "user-b")

	userID, ok := r.Claim("guild-7")
	assert.True(t, ok)
	assert.Equal(t, "user-b", userID)
}

func TestPendingRegistry_GuildsAreIndependent(t *testing.T) {
	r := NewPendingRegistry()

	r.Register("guild-1", "user-a")
	r.Register("guild-2", "user-b")

	userID, ok := r.Claim("guild-1")
	assert.True(t, ok)
	assert.Equal(t, "user-a", userID)

	assert.True(t, r.Pending("guild-2"))
}

func TestPendingRegistry_Pending(t *testing.T) {
	r := NewPendingRegistry()

	assert.False(t, r.Pending("guild-7"))
	r.Register("guild-7", "user-a")
	assert.True(t, r.Pending("guild-7"))

	r.Claim("guild-7")
	assert.False(t, r.Pending("guild-7"))
}

func TestPendingRegistry_ConcurrentClaimsSingleWinner(t *testing.T) {
	r := NewPendingRegistry()
	r.Register("guild-7", "user-a")

	const claimers = 32
	var wg sync.WaitGroup
	wins := make(chan string, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if userID, ok := r.Claim("guild-7"); ok {
				wins <- userID
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	assert.Equal(t, []string{"user-a"}, winners, "no two claims may succeed from one registration")
}

func TestPendingRegistry_ConcurrentRegisterClaimInvariant(t *testing.T) {
	r := NewPendingRegistry()

	// Randomized interleaving: at most one slot per guild at any time, and
	// every successful claim returns a user that was actually registered.
	const workers = 16
	var wg sync.WaitGroup
	registered := make(map[string]struct{})
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		userID := fmt.Sprintf("user-%d", i)
		mu.Lock()
		registered[userID] = struct{}{}
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register("guild-7", userID)
			if got, ok := r.Claim("guild-7"); ok {
				mu.Lock()
				_, known := registered[got]
				mu.Unlock()
				assert.True(t, known, "claimed a user that was never registered: %s", got)
			}
		}()
	}
	wg.Wait()
}
