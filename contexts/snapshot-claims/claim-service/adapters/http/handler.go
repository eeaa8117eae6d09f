package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"claimerapi/contexts/snapshot-claims/claim-service/application/commands"
	"claimerapi/contexts/snapshot-claims/claim-service/application/queries"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	httptransport "claimerapi/contexts/snapshot-claims/claim-service/transport/http"
	"claimerapi/internal/shared/units"
)

type Handler struct {
	VerifyClaim commands.VerifyClaimUseCase
	Queries     queries.UseCase
	ScaleDigits int
	Logger      *slog.Logger
}

// VerifySnapshotHandler godoc
// @Summary Submit a snapshot claim
// @Description Verifies chain height, deadline, address, balance and signature, then records the claim.
// @Tags claim-service
// @Accept json
// @Produce json
// @Param signature header string true "Signature over the verbatim request body"
// @Param request body httptransport.VerifySnapshotRequest true "Claim submission"
// @Success 200 {object} httptransport.VerifySnapshotResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /verify-snapshot [post]
//
// rawBody is the verbatim request body; it is stored on the claim and
// used as the signed message.
func (h Handler) VerifySnapshotHandler(
	ctx context.Context,
	req httptransport.VerifySnapshotRequest,
	signature string,
	rawBody []byte,
) (httptransport.VerifySnapshotResponse, error) {
	logger := resolveLogger(h.Logger)

	balance, err := units.ParseUnits(req.ClaimedBalance.String())
	if err != nil {
		return httptransport.VerifySnapshotResponse{}, domainerrors.ErrInvalidInput
	}

	claim, err := h.VerifyClaim.Execute(ctx, commands.VerifyClaimCommand{
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		ClaimedBalance:     balance,
		Signature:          signature,
		RawPayload:         string(rawBody),
	})
	if err != nil {
		if domainerrors.IsRejection(err) {
			logger.Warn("claim submission rejected",
				"event", "claim_http_verify_rejected",
				"module", "snapshot-claims/claim-service",
				"layer", "adapter",
				"source_address", strings.TrimSpace(req.SourceAddress),
				"reason", err.Error(),
			)
		} else {
			logger.Error("claim submission failed",
				"event", "claim_http_verify_failed",
				"module", "snapshot-claims/claim-service",
				"layer", "adapter",
				"source_address", strings.TrimSpace(req.SourceAddress),
				"error", err.Error(),
			)
		}
		return httptransport.VerifySnapshotResponse{}, err
	}

	return httptransport.VerifySnapshotResponse{
		Status:             "success",
		SourceAddress:      claim.SourceAddress,
		DestinationAddress: claim.DestinationAddress,
		ClaimedBalance:     claim.ClaimedBalance.String(),
	}, nil
}

// CheckBalanceHandler godoc
// @Summary Check an address balance
// @Description Proxies the confirmed balance for an address from the chain node.
// @Tags claim-service
// @Produce json
// @Param address query string true "Chain address"
// @Success 200 {object} httptransport.BalanceResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /check-balance [get]
func (h Handler) CheckBalanceHandler(ctx context.Context, address string) (httptransport.BalanceResponse, error) {
	balance, err := h.Queries.CheckBalance(ctx, address)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		Address: strings.TrimSpace(address),
		Balance: balance.String(),
	}, nil
}

// VerifyAddressHandler godoc
// @Summary Validate an address
// @Description Returns address validity and witness status from the chain node.
// @Tags claim-service
// @Produce json
// @Param address query string true "Chain address"
// @Success 200 {object} httptransport.AddressResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /verify-address [get]
func (h Handler) VerifyAddressHandler(ctx context.Context, address string) (httptransport.AddressResponse, error) {
	status, err := h.Queries.VerifyAddress(ctx, address)
	if err != nil {
		return httptransport.AddressResponse{}, err
	}
	return httptransport.AddressResponse{
		Address:   strings.TrimSpace(address),
		IsValid:   status.IsValid,
		IsWitness: status.IsWitness,
	}, nil
}

// BlockHeightHandler godoc
// @Summary Get the chain tip
// @Description Returns the current tip hash and height from the chain node.
// @Tags claim-service
// @Produce json
// @Success 200 {object} httptransport.BlockHeightResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /get-blockheight [get]
func (h Handler) BlockHeightHandler(ctx context.Context) (httptransport.BlockHeightResponse, error) {
	tip, err := h.Queries.BlockHeight(ctx)
	if err != nil {
		return httptransport.BlockHeightResponse{}, err
	}
	return httptransport.BlockHeightResponse{TipHash: tip.Hash, TipHeight: tip.Height}, nil
}

// TotalClaimedHandler godoc
// @Summary Get claim totals
// @Description Returns the sum of verified claimed balances and the claim count.
// @Tags claim-service
// @Produce json
// @Success 200 {object} httptransport.TotalClaimedResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /total-claimed [get]
func (h Handler) TotalClaimedHandler(ctx context.Context) (httptransport.TotalClaimedResponse, error) {
	totals, err := h.Queries.TotalClaimed(ctx)
	if err != nil {
		return httptransport.TotalClaimedResponse{}, err
	}
	return httptransport.TotalClaimedResponse{
		TotalClaimed: totals.TotalClaimed.String(),
		TotalClaims:  totals.TotalClaims,
	}, nil
}

// ListClaimsHandler godoc
// @Summary List verified claims
// @Description Returns raw payloads and signatures of verified claims, newest first.
// @Tags claim-service
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 500)"
// @Success 200 {object} httptransport.ClaimsPageResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /claims [get]
func (h Handler) ListClaimsHandler(ctx context.Context, page, pageSize int) (httptransport.ClaimsPageResponse, error) {
	result, err := h.Queries.ListClaims(ctx, page, pageSize)
	if err != nil {
		return httptransport.ClaimsPageResponse{}, err
	}

	items := make([]httptransport.ClaimListItem, 0, len(result.Items))
	for _, claim := range result.Items {
		items = append(items, httptransport.ClaimListItem{
			RawPayload: claim.RawPayload,
			Signature:  claim.Signature,
		})
	}
	return httptransport.ClaimsPageResponse{
		Page:     result.Page,
		PageSize: result.PageSize,
		Items:    items,
	}, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
