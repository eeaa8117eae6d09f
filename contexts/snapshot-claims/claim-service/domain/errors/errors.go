package errors

import "errors"

// Validation rejections. Client-correctable; each maps to a stable
// machine-readable code at the HTTP boundary and is never retried
// server-side.
var (
	ErrSignatureRequired = errors.New("signature required")
	ErrWrongBlockHeight  = errors.New("wrong block height")
	ErrClaimPeriodEnded  = errors.New("claim period ended")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrDuplicateAddress  = errors.New("duplicate address")
	ErrBalanceMismatch   = errors.New("balance mismatch")
	ErrSignatureInvalid  = errors.New("signature verification failed")
	ErrInvalidInput      = errors.New("invalid claim input")
	ErrAddressRequired   = errors.New("address is required")
)

// Operational faults. Reported generically to clients, logged with detail.
var ErrChainUnavailable = errors.New("chain node unavailable")

// IsRejection reports whether err is a validation rejection rather than an
// operational fault. The HTTP layer uses this to pick 400 vs 500.
func IsRejection(err error) bool {
	for _, rejection := range []error{
		ErrSignatureRequired,
		ErrWrongBlockHeight,
		ErrClaimPeriodEnded,
		ErrInvalidAddress,
		ErrDuplicateAddress,
		ErrBalanceMismatch,
		ErrSignatureInvalid,
		ErrInvalidInput,
		ErrAddressRequired,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
