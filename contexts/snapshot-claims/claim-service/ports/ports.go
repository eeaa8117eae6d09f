package ports

import (
	"context"
	"math/big"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	"claimerapi/internal/shared/events"
)

type ListOrder string

const (
	OrderNewestFirst ListOrder = "newest_first"
	OrderOldestFirst ListOrder = "oldest_first"
)

type ListOptions struct {
	Order  ListOrder
	Offset int
	// Limit <= 0 means no limit.
	Limit int
}

// ClaimRepository is the durable claim table. Insert must enforce
// source-address uniqueness atomically at the storage layer; the duplicate
// pre-check in the verifier is a fast path only.
type ClaimRepository interface {
	FindBySourceAddress(ctx context.Context, sourceAddress string) (entities.Claim, bool, error)
	Insert(ctx context.Context, claim entities.Claim) error
	ListAll(ctx context.Context, opts ListOptions) ([]entities.Claim, error)
	SumBalances(ctx context.Context) (*big.Int, error)
	Count(ctx context.Context) (int64, error)
}

type TipStatus struct {
	Hash   string
	Height int64
}

type AddressStatus struct {
	IsValid   bool
	IsWitness bool
}

// ChainClient queries the external chain-indexing node. Every method
// returns an error wrapping domainerrors.ErrChainUnavailable on timeout,
// malformed response or non-success status; a well-formed negative answer
// (unknown address, failed verification) is a plain return value.
type ChainClient interface {
	GetTipHeight(ctx context.Context) (TipStatus, error)
	GetBalance(ctx context.Context, address string, minConfirmations int) (*big.Int, error)
	VerifySignature(ctx context.Context, address, message, signature string) (bool, error)
	ValidateAddress(ctx context.Context, address string) (AddressStatus, error)
}

type Clock interface {
	Now() time.Time
}

// EventPublisher decouples post-commit notification from the response path.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

// Notifier is the external notification sink consumed by the worker.
type Notifier interface {
	NotifyClaimVerified(ctx context.Context, notification ClaimVerifiedNotification) error
}

type ClaimVerifiedNotification struct {
	SourceAddress      string `json:"source_address"`
	DestinationAddress string `json:"destination_address"`
	// ClaimedBalanceUnits is the decimal string of the smallest-unit value.
	ClaimedBalanceUnits string `json:"claimed_balance_units"`
	ClaimedBalanceCoins string `json:"claimed_balance_coins"`
}
