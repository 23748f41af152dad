package domain

import "errors"

// Error taxonomy of the scheduling engine.
// Layer-specific sentinel errors wrap one of these classes, so callers can
// classify any error with errors.Is regardless of the layer it came from.
var (
	// ErrInvalidTemplate is returned when an availability template violates its invariants
	ErrInvalidTemplate = errors.New("invalid availability template")

	// ErrInvalidInput is returned for a malformed date, time or identifier
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotUnavailable is returned when the slot is occupied at commit time
	ErrSlotUnavailable = errors.New("slot is unavailable")

	// ErrInvalidTransition is returned for an illegal state change or an unauthorized requester
	ErrInvalidTransition = errors.New("invalid appointment transition")

	// ErrStorageUnavailable is returned for transient backend failures
	ErrStorageUnavailable = errors.New("storage unavailable")
)
