package domain

import "errors"

var (
	// ErrPermissionDenied maps gateway permission failures (message delete,
	// role mention). Callers log and continue.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrStoreUnavailable indicates the ledger store could not acknowledge
	// a read or write. The success path must abort on it.
	ErrStoreUnavailable = errors.New("ledger store unavailable")
	// ErrNotFound indicates a referenced role or channel no longer exists.
	ErrNotFound = errors.New("not found")
)
