package bump

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/LucasLR2/1ebot/internal/metrics"
)

// Scheduler owns the per-guild single-shot reminder timer. Arming a guild
// always supersedes the previous timer before the new one becomes active,
// so a superseded callback can never fire. The timer runs on its own
// timeline and synchronizes with event processing only through Arm/Cancel.
type Scheduler struct {
	clock clockwork.Clock

	mu    sync.Mutex
	tasks map[string]*reminderTask
}

type reminderTask struct {
	timer clockwork.Timer
	// live is guarded by Scheduler.mu. A fired callback that lost the race
	// with a concurrent Arm/Cancel finds live false and returns silently.
	live bool
}

func NewScheduler(clock clockwork.Clock) *Scheduler {
	return &Scheduler{clock: clock, tasks: make(map[string]*reminderTask)}
}

// Arm cancels any existing reminder for the guild and starts a new one that
// invokes callback after delay, unless cancelled or superseded first.
func (s *Scheduler) Arm(guildID string, delay time.Duration, callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[guildID]; ok {
		prev.live = false
		prev.timer.Stop()
		metrics.RemindersCancelled.Inc()
	}

	task := &reminderTask{live: true}
	task.timer = s.clock.AfterFunc(delay, func() {
		s.fire(guildID, task, callback)
	})
	s.tasks[guildID] = task
	metrics.RemindersArmed.Inc()
}

// Cancel stops the active reminder for the guild if present; no-op otherwise.
func (s *Scheduler) Cancel(guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[guildID]
	if !ok {
		return
	}
	task.live = false
	task.timer.Stop()
	delete(s.tasks, guildID)
	metrics.RemindersCancelled.Inc()
}

// Stop cancels every armed reminder. Used on shutdown; countdowns are
// rebuilt from fresh confirmations after a restart.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for guildID, task := range s.tasks {
		task.live = false
		task.timer.Stop()
		delete(s.tasks, guildID)
	}
}

// Active reports whether a reminder is currently armed for the guild.
func (s *Scheduler) Active(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[guildID]
	return ok
}

func (s *Scheduler) fire(guildID string, task *reminderTask, callback func()) {
	s.mu.Lock()
	if !task.live {
		s.mu.Unlock()
		return
	}
	task.live = false
	delete(s.tasks, guildID)
	s.mu.Unlock()

	metrics.RemindersFired.Inc()
	// The callback runs outside the lock; failures are the callback's to
	// log and swallow, they never affect scheduler state.
	callback()
}
