package claimstore

import (
	"context"

	claimports "claimerapi/contexts/snapshot-claims/claim-service/ports"
	"claimerapi/contexts/snapshot-claims/redistribution-service/ports"
)

// Source adapts the claim-service repository into the redistribution
// read model. ListClaims issues a single repository call so the engine
// sees one consistent snapshot of the claim set.
type Source struct {
	Claims claimports.ClaimRepository
}

func (s Source) ListClaims(ctx context.Context) ([]ports.ClaimRecord, error) {
	claims, err := s.Claims.ListAll(ctx, claimports.ListOptions{Order: claimports.OrderOldestFirst})
	if err != nil {
		return nil, err
	}

	records := make([]ports.ClaimRecord, 0, len(claims))
	for _, claim := range claims {
		records = append(records, ports.ClaimRecord{
			SourceAddress:      claim.SourceAddress,
			DestinationAddress: claim.DestinationAddress,
			ClaimedBalance:     claim.ClaimedBalance,
			Signature:          claim.Signature,
			RawPayload:         claim.RawPayload,
		})
	}
	return records, nil
}
