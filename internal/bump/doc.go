// Package bump implements the bump-detection state machine.
//
// A Classifier tags every event in the watched channel, a PendingRegistry
// correlates a slash-command invocation with the service's asynchronous
// public confirmation, and a Scheduler owns the single-shot reminder timer
// per guild. The Tracker wires the three together and applies all side
// effects (ledger credit, thank-you message, reminder arming).
package bump
