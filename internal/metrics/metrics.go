package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event pipeline metrics
var (
	// EventsClassified tracks classified channel events by kind
	EventsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bump_events_classified_total",
			Help: "Channel events classified, by classification kind",
		},
		[]string{"kind"},
	)

	// BumpsConfirmed tracks confirmed bumps credited to the ledger
	BumpsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_confirmed_total",
			Help: "Confirmed bumps credited to the ledger",
		},
	)

	// UnmatchedConfirmations tracks success confirmations with no pending slot
	UnmatchedConfirmations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_unmatched_confirmations_total",
			Help: "Success confirmations that arrived with no pending invocation",
		},
	)

	// LedgerErrors tracks failed ledger operations by operation name
	LedgerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bump_ledger_errors_total",
			Help: "Failed ledger store operations, by operation",
		},
		[]string{"operation"},
	)
)

// Reminder metrics
var (
	// RemindersArmed tracks reminder timers armed
	RemindersArmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_reminders_armed_total",
			Help: "Reminder timers armed",
		},
	)

	// RemindersFired tracks reminder callbacks that actually ran
	RemindersFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_reminders_fired_total",
			Help: "Reminder timers that fired and invoked their callback",
		},
	)

	// RemindersCancelled tracks reminders cancelled or superseded before firing
	RemindersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_reminders_cancelled_total",
			Help: "Reminder timers cancelled or superseded before firing",
		},
	)
)

// Moderation metrics
var (
	// MessagesDeleted tracks channel-gating deletions by reason
	MessagesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bump_messages_deleted_total",
			Help: "Messages deleted in the watched channel, by reason",
		},
		[]string{"reason"},
	)

	// DeleteFailures tracks message deletions that failed (usually permissions)
	DeleteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_message_delete_failures_total",
			Help: "Message deletions that failed",
		},
	)

	// WarningsSent tracks soft warnings posted by the channel guard
	WarningsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_guard_warnings_total",
			Help: "Soft warnings posted by the channel guard",
		},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks Redis operations by command and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bump_redis_operations_total",
			Help: "Redis operations, by command and status",
		},
		[]string{"operation", "status"},
	)

	// RedisConnectionErrors tracks failed Redis connection attempts
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bump_redis_connection_errors_total",
			Help: "Failed Redis connection attempts",
		},
	)

	// RedisCircuitBreakerState tracks the redis circuit breaker state (0=closed, 1=half-open, 2=open)
	RedisCircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bump_redis_circuit_breaker_state",
			Help: "Redis circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bump_redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)
