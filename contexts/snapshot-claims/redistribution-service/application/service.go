package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"claimerapi/contexts/snapshot-claims/redistribution-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/redistribution-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/redistribution-service/ports"
	"claimerapi/internal/shared/units"
)

// Params fixes the redistribution pool: the target cap in smallest units
// and the fixed-point scale shared by balances and the multiplier.
type Params struct {
	TargetCapUnits *big.Int
	Scale          *big.Int
	ScaleDigits    int
}

// NewParams derives the pool from configuration. The cap is
// totalSupply * capRatio, converted to smallest units and rounded half-up,
// entirely in integer arithmetic.
func NewParams(totalSupply, capRatioNum, capRatioDen int64, scaleDigits int) (Params, error) {
	if totalSupply < 0 || capRatioNum < 0 || capRatioDen <= 0 {
		return Params{}, errors.New("supply and cap ratio must be non-negative with a positive denominator")
	}
	if scaleDigits < 0 || scaleDigits > 18 {
		return Params{}, fmt.Errorf("unit scale of %d digits is out of range", scaleDigits)
	}

	scale := units.Pow10(scaleDigits)
	numerator := new(big.Int).Mul(big.NewInt(totalSupply), big.NewInt(capRatioNum))
	numerator.Mul(numerator, scale)

	den := big.NewInt(capRatioDen)
	targetCap, rem := new(big.Int).QuoRem(numerator, den, new(big.Int))
	if new(big.Int).Lsh(rem, 1).Cmp(den) >= 0 {
		targetCap.Add(targetCap, big.NewInt(1))
	}

	return Params{TargetCapUnits: targetCap, Scale: scale, ScaleDigits: scaleDigits}, nil
}

// Service computes supply-capped proportional payouts over the verified
// claim set. It is stateless and side-effect free apart from logging.
type Service struct {
	Source ports.ClaimSource
	Params Params
	Logger *slog.Logger
}

func (s Service) Compute(ctx context.Context) (entities.Result, error) {
	claims, err := s.Source.ListClaims(ctx)
	if err != nil {
		return entities.Result{}, fmt.Errorf("list claims: %w", err)
	}
	return s.computeFromClaims(claims)
}

// Detailed returns one audit row per source claim alongside the grouped
// result, both derived from a single read of the claim set.
func (s Service) Detailed(ctx context.Context) ([]entities.DetailedRow, entities.Result, error) {
	claims, err := s.Source.ListClaims(ctx)
	if err != nil {
		return nil, entities.Result{}, fmt.Errorf("list claims: %w", err)
	}
	result, err := s.computeFromClaims(claims)
	if err != nil {
		return nil, entities.Result{}, err
	}

	finalByDestination := make(map[string]*big.Int, len(result.Payouts))
	for _, payout := range result.Payouts {
		finalByDestination[payout.DestinationAddress] = payout.FinalBalance
	}
	percent := s.deductionPercent(result)

	rows := make([]entities.DetailedRow, 0, len(claims))
	for _, claim := range claims {
		final := finalByDestination[claim.DestinationAddress]
		if final == nil {
			final = new(big.Int)
		}
		deducted := new(big.Int).Sub(claim.ClaimedBalance, final)
		if deducted.Sign() < 0 {
			deducted.SetInt64(0)
		}
		rows = append(rows, entities.DetailedRow{
			SourceAddress:      claim.SourceAddress,
			DestinationAddress: claim.DestinationAddress,
			ClaimedBalance:     new(big.Int).Set(claim.ClaimedBalance),
			FinalBalance:       new(big.Int).Set(final),
			DeductedAmount:     deducted,
			DeductionPercent:   percent,
			Signature:          claim.Signature,
			RawPayload:         claim.RawPayload,
		})
	}
	return rows, result, nil
}

func (s Service) computeFromClaims(claims []ports.ClaimRecord) (entities.Result, error) {
	logger := resolveLogger(s.Logger)

	originalByDestination := make(map[string]*big.Int)
	for _, claim := range claims {
		if claim.ClaimedBalance == nil || claim.ClaimedBalance.Sign() < 0 {
			return entities.Result{}, fmt.Errorf("claim for %s carries an invalid balance", claim.SourceAddress)
		}
		current, ok := originalByDestination[claim.DestinationAddress]
		if !ok {
			current = new(big.Int)
			originalByDestination[claim.DestinationAddress] = current
		}
		current.Add(current, claim.ClaimedBalance)
	}

	// Lexicographic destination order pins both the payout sequence and the
	// identity of the remainder-absorbing last entry.
	destinations := make([]string, 0, len(originalByDestination))
	for destination := range originalByDestination {
		destinations = append(destinations, destination)
	}
	sort.Strings(destinations)

	totalOriginal := new(big.Int)
	for _, destination := range destinations {
		totalOriginal.Add(totalOriginal, originalByDestination[destination])
	}

	targetCap := s.Params.TargetCapUnits
	scale := s.Params.Scale
	result := entities.Result{
		TotalOriginalUnits: totalOriginal,
		TargetCapUnits:     new(big.Int).Set(targetCap),
		Scale:              new(big.Int).Set(scale),
	}

	if totalOriginal.Cmp(targetCap) <= 0 {
		// Below the cap nothing is scaled; full balances are paid. This
		// branch also covers the all-zero claim set without dividing.
		result.Multiplier = new(big.Int).Set(scale)
		for _, destination := range destinations {
			original := originalByDestination[destination]
			result.Payouts = append(result.Payouts, entities.DestinationPayout{
				DestinationAddress: destination,
				OriginalBalance:    new(big.Int).Set(original),
				FinalBalance:       new(big.Int).Set(original),
			})
		}
		return result, nil
	}

	result.Scaled = true
	result.Multiplier = new(big.Int).Mul(targetCap, scale)
	result.Multiplier.Quo(result.Multiplier, totalOriginal)

	assigned := new(big.Int)
	for i, destination := range destinations {
		original := originalByDestination[destination]
		scaledDown := new(big.Int).Mul(original, result.Multiplier)
		scaledDown.Quo(scaledDown, scale)

		final := scaledDown
		if i == len(destinations)-1 {
			remainder := new(big.Int).Sub(targetCap, assigned)
			if remainder.Sign() < 0 {
				// Only reachable through a rounding/config inconsistency;
				// keep output non-negative and say so.
				result.ConsistencyWarning = fmt.Sprintf(
					"remainder for %s is negative (%s); clamped to its scaled balance",
					destination, remainder.String(),
				)
				logger.Warn("redistribution remainder clamped",
					"event", "redistribution_remainder_clamped",
					"module", "snapshot-claims/redistribution-service",
					"layer", "application",
					"destination_address", destination,
					"remainder_units", remainder.String(),
				)
			} else {
				final = remainder
			}
		}
		if final.Sign() < 0 {
			return entities.Result{}, domainerrors.ErrConservationViolated
		}

		assigned.Add(assigned, final)
		result.Payouts = append(result.Payouts, entities.DestinationPayout{
			DestinationAddress: destination,
			OriginalBalance:    new(big.Int).Set(original),
			FinalBalance:       final,
		})
	}
	return result, nil
}

// deductionPercent renders (1 - multiplier/scale) as a percentage with two
// decimal places, computed in integer basis points.
func (s Service) deductionPercent(result entities.Result) string {
	if !result.Scaled {
		return "0.00"
	}
	basisPoints := new(big.Int).Sub(result.Scale, result.Multiplier)
	basisPoints.Mul(basisPoints, big.NewInt(10000))
	basisPoints.Quo(basisPoints, result.Scale)

	whole, frac := new(big.Int).QuoRem(basisPoints, big.NewInt(100), new(big.Int))
	return fmt.Sprintf("%s.%02d", whole.String(), frac.Int64())
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
