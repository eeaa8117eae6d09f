package errors

import "errors"

var (
	// ErrConservationViolated means a final balance would be negative even
	// after the clamp fallback; the engine refuses to emit such output.
	ErrConservationViolated = errors.New("redistribution cannot conserve the target cap")
)
