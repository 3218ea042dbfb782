// Package domain defines the core domain types and interfaces.
//
// This package contains the transport-neutral channel event model, the
// classification result produced by the bump classifier, and the contracts
// the orchestrator depends on (ledger store, leaderboard, messenger).
// No implementation code lives here; interfaces stay on the consumer side
// to prevent circular imports.
package domain
