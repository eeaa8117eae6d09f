package application

import (
	"context"
	"math/big"
	"testing"

	"claimerapi/contexts/snapshot-claims/redistribution-service/ports"
)

type staticSource struct {
	claims []ports.ClaimRecord
}

func (s staticSource) ListClaims(context.Context) ([]ports.ClaimRecord, error) {
	return s.claims, nil
}

func claim(source, destination string, balance int64) ports.ClaimRecord {
	return ports.ClaimRecord{
		SourceAddress:      source,
		DestinationAddress: destination,
		ClaimedBalance:     big.NewInt(balance),
		Signature:          "sig-" + source,
		RawPayload:         `{"sourceAddress":"` + source + `"}`,
	}
}

func serviceWith(t *testing.T, totalSupply int64, claims ...ports.ClaimRecord) Service {
	t.Helper()
	params, err := NewParams(totalSupply, 1, 2, 8)
	if err != nil {
		t.Fatalf("NewParams returned error: %v", err)
	}
	return Service{
		Source: staticSource{claims: claims},
		Params: params,
	}
}

func TestComputeScaledPayouts(t *testing.T) {
	// Supply of 10 coins at scale 10^8 gives a pool of 5e8 units.
	service := serviceWith(t, 10,
		claim("src-a", "dest-a", 300_000_000),
		claim("src-b", "dest-b", 700_000_000),
	)

	result, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !result.Scaled {
		t.Fatal("expected scaled result for totals above the cap")
	}
	if got, want := result.Multiplier.String(), "50000000"; got != want {
		t.Fatalf("multiplier = %s, want %s", got, want)
	}
	if len(result.Payouts) != 2 {
		t.Fatalf("expected 2 payouts, got %d", len(result.Payouts))
	}
	if got, want := result.Payouts[0].FinalBalance.String(), "150000000"; got != want {
		t.Fatalf("dest-a final = %s, want %s", got, want)
	}
	if got, want := result.Payouts[1].FinalBalance.String(), "350000000"; got != want {
		t.Fatalf("dest-b final = %s, want %s", got, want)
	}
}

func TestComputeConservesCapExactly(t *testing.T) {
	cases := map[string][]ports.ClaimRecord{
		"single destination": {
			claim("src-a", "dest-a", 900_000_000),
		},
		"equal balances": {
			claim("src-a", "dest-a", 400_000_000),
			claim("src-b", "dest-b", 400_000_000),
			claim("src-c", "dest-c", 400_000_000),
		},
		"highly skewed": {
			claim("src-a", "dest-a", 1),
			claim("src-b", "dest-b", 7),
			claim("src-c", "dest-c", 1_999_999_991),
		},
		"consolidated destinations": {
			claim("src-a", "dest-shared", 333_333_333),
			claim("src-b", "dest-shared", 333_333_333),
			claim("src-c", "dest-z", 333_333_334),
		},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			service := serviceWith(t, 10, claims...)
			result, err := service.Compute(context.Background())
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if !result.Scaled {
				t.Fatal("expected scaled result")
			}

			total := new(big.Int)
			for _, payout := range result.Payouts {
				if payout.FinalBalance.Sign() < 0 {
					t.Fatalf("negative final balance for %s", payout.DestinationAddress)
				}
				total.Add(total, payout.FinalBalance)
			}
			if total.Cmp(result.TargetCapUnits) != 0 {
				t.Fatalf("sum of finals = %s, want cap %s", total.String(), result.TargetCapUnits.String())
			}
			if result.ConsistencyWarning != "" {
				t.Fatalf("unexpected consistency warning: %s", result.ConsistencyWarning)
			}
		})
	}
}

func TestComputeBelowCapPaysFullBalances(t *testing.T) {
	service := serviceWith(t, 10,
		claim("src-a", "dest-a", 100_000_000),
		claim("src-b", "dest-b", 200_000_000),
	)

	result, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if result.Scaled {
		t.Fatal("expected unscaled result below the cap")
	}
	if result.Multiplier.Cmp(result.Scale) != 0 {
		t.Fatalf("multiplier = %s, want scale %s", result.Multiplier.String(), result.Scale.String())
	}
	for _, payout := range result.Payouts {
		if payout.FinalBalance.Cmp(payout.OriginalBalance) != 0 {
			t.Fatalf("final %s differs from original %s for %s",
				payout.FinalBalance.String(), payout.OriginalBalance.String(), payout.DestinationAddress)
		}
	}
}

func TestComputeAllZeroBalances(t *testing.T) {
	service := serviceWith(t, 10,
		claim("src-a", "dest-a", 0),
		claim("src-b", "dest-b", 0),
	)

	result, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if result.Scaled {
		t.Fatal("all-zero set must take the multiplier-1 branch")
	}
	for _, payout := range result.Payouts {
		if payout.FinalBalance.Sign() != 0 {
			t.Fatalf("expected zero final balance, got %s", payout.FinalBalance.String())
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	service := serviceWith(t, 10,
		claim("src-1", "dest-m", 611_111_111),
		claim("src-2", "dest-a", 222_222_222),
		claim("src-3", "dest-z", 999_999_999),
		claim("src-4", "dest-k", 123_456_789),
	)

	first, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("first Compute returned error: %v", err)
	}
	second, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("second Compute returned error: %v", err)
	}

	if len(first.Payouts) != len(second.Payouts) {
		t.Fatalf("payout counts differ: %d vs %d", len(first.Payouts), len(second.Payouts))
	}
	for i := range first.Payouts {
		if first.Payouts[i].DestinationAddress != second.Payouts[i].DestinationAddress {
			t.Fatalf("payout order differs at %d", i)
		}
		if first.Payouts[i].FinalBalance.Cmp(second.Payouts[i].FinalBalance) != 0 {
			t.Fatalf("final balance differs at %d", i)
		}
	}

	// Address-sorted order pins the remainder to the lexicographically
	// last destination.
	if got, want := first.Payouts[len(first.Payouts)-1].DestinationAddress, "dest-z"; got != want {
		t.Fatalf("last payout destination = %s, want %s", got, want)
	}
}

func TestComputeHandlesBalancesBeyondInt64(t *testing.T) {
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
	service := serviceWith(t, 10)
	service.Source = staticSource{claims: []ports.ClaimRecord{
		{SourceAddress: "src-a", DestinationAddress: "dest-a", ClaimedBalance: huge},
		{SourceAddress: "src-b", DestinationAddress: "dest-b", ClaimedBalance: new(big.Int).Set(huge)},
	}}

	result, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	total := new(big.Int)
	for _, payout := range result.Payouts {
		total.Add(total, payout.FinalBalance)
	}
	if total.Cmp(result.TargetCapUnits) != 0 {
		t.Fatalf("sum of finals = %s, want cap %s", total.String(), result.TargetCapUnits.String())
	}
}

func TestDetailedRowsShareDestinationFinal(t *testing.T) {
	service := serviceWith(t, 10,
		claim("src-1", "dest-shared", 400_000_000),
		claim("src-2", "dest-shared", 400_000_000),
		claim("src-3", "dest-other", 200_000_000),
	)

	rows, result, err := service.Detailed(context.Background())
	if err != nil {
		t.Fatalf("Detailed returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected one detailed row per source claim, got %d", len(rows))
	}

	finalByDestination := make(map[string]*big.Int)
	for _, payout := range result.Payouts {
		finalByDestination[payout.DestinationAddress] = payout.FinalBalance
	}
	for _, row := range rows {
		if row.FinalBalance.Cmp(finalByDestination[row.DestinationAddress]) != 0 {
			t.Fatalf("row for %s does not carry its destination's final balance", row.SourceAddress)
		}
		if row.Signature == "" || row.RawPayload == "" {
			t.Fatalf("row for %s lost its audit fields", row.SourceAddress)
		}
	}

	// 50% deduction at 1/2 cap ratio with total 1e9 against cap 5e8.
	if got, want := rows[0].DeductionPercent, "50.00"; got != want {
		t.Fatalf("deduction percent = %s, want %s", got, want)
	}
}

func TestNewParamsRoundsHalfUp(t *testing.T) {
	// 3 coins at ratio 1/2 is 1.5 coins; scaled, an exact integer.
	params, err := NewParams(3, 1, 2, 8)
	if err != nil {
		t.Fatalf("NewParams returned error: %v", err)
	}
	if got, want := params.TargetCapUnits.String(), "150000000"; got != want {
		t.Fatalf("cap = %s, want %s", got, want)
	}

	// A ratio that does not divide evenly must round to nearest, not floor.
	params, err = NewParams(1, 1, 3, 0)
	if err != nil {
		t.Fatalf("NewParams returned error: %v", err)
	}
	if got, want := params.TargetCapUnits.String(), "0"; got != want {
		t.Fatalf("cap = %s, want %s", got, want)
	}
	params, err = NewParams(2, 1, 3, 0)
	if err != nil {
		t.Fatalf("NewParams returned error: %v", err)
	}
	if got, want := params.TargetCapUnits.String(), "1"; got != want {
		t.Fatalf("cap = %s, want %s", got, want)
	}
}
