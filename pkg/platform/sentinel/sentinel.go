package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Ledger backends return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: no value stored at a key
//   - ErrConflict: a key read during an invocation changed before commit
//   - ErrCorrupt: stored bytes do not decode to the expected record shape
//   - ErrUnavailable: backend temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrCorrupt     = errors.New("corrupt record")
	ErrUnavailable = errors.New("unavailable")
)
