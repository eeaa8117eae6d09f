package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
	"claimerapi/internal/shared/events"
	"claimerapi/internal/shared/units"

	"github.com/google/uuid"
)

const (
	TopicClaimVerified     = "claims.verified"
	EventTypeClaimVerified = "claims.claim.verified"
)

type VerifyClaimCommand struct {
	SourceAddress      string
	DestinationAddress string
	ClaimedBalance     *big.Int
	Signature          string
	// RawPayload is the verbatim request body; it is both the audit record
	// and the exact message bytes the claimant signed.
	RawPayload string
}

// VerifyClaimUseCase runs the claim verification state machine. Checks run
// in a fixed order and the first failure terminates the submission; the
// storage unique index, not the duplicate fast path, is the final arbiter.
type VerifyClaimUseCase struct {
	Claims         ports.ClaimRepository
	Chain          ports.ChainClient
	Clock          ports.Clock
	Publisher      ports.EventPublisher
	SnapshotHeight int64
	Deadline       time.Time
	ScaleDigits    int
	ServiceName    string
	Logger         *slog.Logger
}

func (uc VerifyClaimUseCase) Execute(ctx context.Context, cmd VerifyClaimCommand) (entities.Claim, error) {
	logger := resolveLogger(uc.Logger)

	// Signature presence is checked before anything else, including input
	// shape; a submission with no signature is rejected as unsigned even
	// when other fields are missing too.
	if strings.TrimSpace(cmd.Signature) == "" {
		return entities.Claim{}, domainerrors.ErrSignatureRequired
	}

	source := strings.TrimSpace(cmd.SourceAddress)
	destination := strings.TrimSpace(cmd.DestinationAddress)
	if source == "" || destination == "" || cmd.ClaimedBalance == nil || cmd.ClaimedBalance.Sign() < 0 {
		return entities.Claim{}, domainerrors.ErrInvalidInput
	}

	tip, err := uc.Chain.GetTipHeight(ctx)
	if err != nil {
		return entities.Claim{}, fmt.Errorf("query tip height: %w", err)
	}
	if tip.Height != uc.SnapshotHeight {
		logger.Warn("claim rejected at height gate",
			"event", "claim_wrong_block_height",
			"module", "snapshot-claims/claim-service",
			"layer", "application",
			"source_address", source,
			"tip_height", tip.Height,
			"snapshot_height", uc.SnapshotHeight,
		)
		return entities.Claim{}, domainerrors.ErrWrongBlockHeight
	}

	if !uc.Deadline.IsZero() && uc.Clock.Now().After(uc.Deadline) {
		return entities.Claim{}, domainerrors.ErrClaimPeriodEnded
	}

	status, err := uc.Chain.ValidateAddress(ctx, source)
	if err != nil {
		return entities.Claim{}, fmt.Errorf("validate address: %w", err)
	}
	if !status.IsValid {
		return entities.Claim{}, domainerrors.ErrInvalidAddress
	}

	// Fast-path rejection only; a concurrent insert between this check and
	// the commit below still fails on the unique index.
	if _, found, err := uc.Claims.FindBySourceAddress(ctx, source); err != nil {
		return entities.Claim{}, fmt.Errorf("find existing claim: %w", err)
	} else if found {
		return entities.Claim{}, domainerrors.ErrDuplicateAddress
	}

	onChain, err := uc.Chain.GetBalance(ctx, source, 1)
	if err != nil {
		return entities.Claim{}, fmt.Errorf("query balance: %w", err)
	}
	if onChain.Cmp(cmd.ClaimedBalance) != 0 {
		logger.Warn("claim rejected on balance mismatch",
			"event", "claim_balance_mismatch",
			"module", "snapshot-claims/claim-service",
			"layer", "application",
			"source_address", source,
			"claimed_units", cmd.ClaimedBalance.String(),
			"indexed_units", onChain.String(),
		)
		return entities.Claim{}, domainerrors.ErrBalanceMismatch
	}

	verified, err := uc.Chain.VerifySignature(ctx, source, cmd.RawPayload, cmd.Signature)
	if err != nil {
		return entities.Claim{}, fmt.Errorf("verify signature: %w", err)
	}
	if !verified {
		return entities.Claim{}, domainerrors.ErrSignatureInvalid
	}

	claim := entities.Claim{
		ID:                 uuid.NewString(),
		SourceAddress:      source,
		DestinationAddress: destination,
		ClaimedBalance:     new(big.Int).Set(cmd.ClaimedBalance),
		Signature:          strings.TrimSpace(cmd.Signature),
		RawPayload:         cmd.RawPayload,
		CreatedAt:          uc.Clock.Now(),
	}
	if err := uc.Claims.Insert(ctx, claim); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateAddress) {
			return entities.Claim{}, domainerrors.ErrDuplicateAddress
		}
		return entities.Claim{}, fmt.Errorf("insert claim: %w", err)
	}

	logger.Info("claim verified",
		"event", "claim_verified",
		"module", "snapshot-claims/claim-service",
		"layer", "application",
		"claim_id", claim.ID,
		"source_address", claim.SourceAddress,
		"destination_address", claim.DestinationAddress,
		"claimed_units", claim.ClaimedBalance.String(),
	)

	uc.publishVerified(claim, logger)
	return claim, nil
}

// publishVerified dispatches the post-commit notification event. It runs
// against a fresh context so the already-answered request cannot cancel it,
// and a publish failure is logged only.
func (uc VerifyClaimUseCase) publishVerified(claim entities.Claim, logger *slog.Logger) {
	if uc.Publisher == nil {
		return
	}
	envelope := events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      EventTypeClaimVerified,
		SourceService:  uc.ServiceName,
		OccurredAtUTC:  uc.Clock.Now(),
		EntityType:     "claim",
		EntityID:       claim.ID,
		PayloadVersion: 1,
		Payload: ports.ClaimVerifiedNotification{
			SourceAddress:       claim.SourceAddress,
			DestinationAddress:  claim.DestinationAddress,
			ClaimedBalanceUnits: claim.ClaimedBalance.String(),
			ClaimedBalanceCoins: units.FormatCoins(claim.ClaimedBalance, uc.ScaleDigits),
		},
	}
	if err := uc.Publisher.Publish(context.Background(), TopicClaimVerified, envelope); err != nil {
		logger.Error("claim verified event publish failed",
			"event", "claim_verified_publish_failed",
			"module", "snapshot-claims/claim-service",
			"layer", "application",
			"claim_id", claim.ID,
			"error", err.Error(),
		)
	}
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
