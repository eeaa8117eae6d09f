package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VerifySnapshotRequest struct {
	SourceAddress      string `json:"sourceAddress"`
	DestinationAddress string `json:"destinationAddress"`
	// Numbers and quoted strings are both accepted so clients with
	// 64-bit-unsafe JSON encoders can quote large balances.
	ClaimedBalance json.Number `json:"claimedBalance"`
}

type VerifySnapshotResponse struct {
	Status             string `json:"status"`
	SourceAddress      string `json:"sourceAddress"`
	DestinationAddress string `json:"destinationAddress"`
	ClaimedBalance     string `json:"claimedBalance"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type AddressResponse struct {
	Address   string `json:"address"`
	IsValid   bool   `json:"isValid"`
	IsWitness bool   `json:"isWitness"`
}

type BlockHeightResponse struct {
	TipHash   string `json:"tipHash"`
	TipHeight int64  `json:"tipHeight"`
}

type TotalClaimedResponse struct {
	TotalClaimed string `json:"totalClaimed"`
	TotalClaims  int64  `json:"totalClaims"`
}

type ClaimListItem struct {
	RawPayload string `json:"rawPayload"`
	Signature  string `json:"signature"`
}

type ClaimsPageResponse struct {
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Items    []ClaimListItem `json:"items"`
}
