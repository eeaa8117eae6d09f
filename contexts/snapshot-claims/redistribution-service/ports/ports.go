package ports

import (
	"context"
	"math/big"
)

// ClaimRecord is the read-model slice of a verified claim that the
// redistribution computation needs.
type ClaimRecord struct {
	SourceAddress      string
	DestinationAddress string
	ClaimedBalance     *big.Int
	Signature          string
	RawPayload         string
}

// ClaimSource supplies the full verified claim set in one call, so the
// computation always sees a single consistent snapshot of the store.
type ClaimSource interface {
	ListClaims(ctx context.Context) ([]ClaimRecord, error)
}
