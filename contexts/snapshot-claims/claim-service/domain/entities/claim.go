package entities

import (
	"math/big"
	"time"
)

// Claim is one verified snapshot record. Created exactly once by the
// verification pipeline, immutable afterwards.
type Claim struct {
	ID                 string
	SourceAddress      string
	DestinationAddress string
	// ClaimedBalance is in the smallest indivisible unit. Sums over many
	// claims can exceed 64 bits, so the balance is carried as a big.Int
	// end to end.
	ClaimedBalance *big.Int
	Signature      string
	RawPayload     string
	CreatedAt      time.Time
}
