package queries

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type Totals struct {
	TotalClaimed *big.Int
	TotalClaims  int64
}

type ClaimsPage struct {
	Page     int
	PageSize int
	Items    []entities.Claim
}

// UseCase serves the read-only surface: chain proxies and store aggregates.
type UseCase struct {
	Claims ports.ClaimRepository
	Chain  ports.ChainClient
	Logger *slog.Logger
}

func (uc UseCase) CheckBalance(ctx context.Context, address string) (*big.Int, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, domainerrors.ErrAddressRequired
	}
	status, err := uc.Chain.ValidateAddress(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("validate address: %w", err)
	}
	if !status.IsValid {
		return nil, domainerrors.ErrInvalidAddress
	}
	balance, err := uc.Chain.GetBalance(ctx, trimmed, 1)
	if err != nil {
		return nil, fmt.Errorf("query balance: %w", err)
	}
	return balance, nil
}

func (uc UseCase) VerifyAddress(ctx context.Context, address string) (ports.AddressStatus, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return ports.AddressStatus{}, domainerrors.ErrAddressRequired
	}
	status, err := uc.Chain.ValidateAddress(ctx, trimmed)
	if err != nil {
		return ports.AddressStatus{}, fmt.Errorf("validate address: %w", err)
	}
	return status, nil
}

func (uc UseCase) BlockHeight(ctx context.Context) (ports.TipStatus, error) {
	tip, err := uc.Chain.GetTipHeight(ctx)
	if err != nil {
		return ports.TipStatus{}, fmt.Errorf("query tip height: %w", err)
	}
	return tip, nil
}

func (uc UseCase) TotalClaimed(ctx context.Context) (Totals, error) {
	sum, err := uc.Claims.SumBalances(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("sum claimed balances: %w", err)
	}
	count, err := uc.Claims.Count(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("count claims: %w", err)
	}
	return Totals{TotalClaimed: sum, TotalClaims: count}, nil
}

func (uc UseCase) ListClaims(ctx context.Context, page, pageSize int) (ClaimsPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, err := uc.Claims.ListAll(ctx, ports.ListOptions{
		Order:  ports.OrderNewestFirst,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return ClaimsPage{}, fmt.Errorf("list claims: %w", err)
	}
	return ClaimsPage{Page: page, PageSize: pageSize, Items: items}, nil
}
