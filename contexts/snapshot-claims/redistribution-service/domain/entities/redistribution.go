package entities

import "math/big"

// DestinationPayout is one grouped row of the redistribution result.
type DestinationPayout struct {
	DestinationAddress string
	OriginalBalance    *big.Int
	FinalBalance       *big.Int
}

// Result is the full derived redistribution view. It is recomputed on
// demand from the claim set and never persisted.
type Result struct {
	// Payouts is sorted ascending by destination address; when Scaled is
	// true the last entry absorbed the rounding remainder.
	Payouts            []DestinationPayout
	TotalOriginalUnits *big.Int
	TargetCapUnits     *big.Int
	// Multiplier is a fixed-point ratio at the unit scale: Scale means 1.0.
	Multiplier *big.Int
	Scale      *big.Int
	Scaled     bool
	// ConsistencyWarning is set when the remainder-absorption step had to
	// clamp a would-be-negative final balance.
	ConsistencyWarning string
}

// DetailedRow is one per-source-claim audit row of the detailed export.
// Claims that consolidate into one destination share that destination's
// final balance while keeping their own claimed balance and signature.
type DetailedRow struct {
	SourceAddress      string
	DestinationAddress string
	ClaimedBalance     *big.Int
	FinalBalance       *big.Int
	DeductedAmount     *big.Int
	// DeductionPercent is rendered with two decimal places, e.g. "50.00".
	DeductionPercent string
	Signature        string
	RawPayload       string
}
