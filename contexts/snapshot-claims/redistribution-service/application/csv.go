package application

import (
	"encoding/csv"
	"fmt"
	"io"

	"claimerapi/contexts/snapshot-claims/redistribution-service/domain/entities"
	"claimerapi/internal/shared/units"
)

// WriteCompactCSV writes one row per destination: address plus the final
// balance in units and in whole coins. encoding/csv applies standard
// escaping, so payload fields with delimiters or quotes round-trip intact.
func WriteCompactCSV(w io.Writer, result entities.Result, scaleDigits int) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"destination_address", "final_balance_units", "final_balance_coins"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, payout := range result.Payouts {
		record := []string{
			payout.DestinationAddress,
			payout.FinalBalance.String(),
			units.FormatCoins(payout.FinalBalance, scaleDigits),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDetailedCSV writes one audit row per original source claim.
func WriteDetailedCSV(w io.Writer, rows []entities.DetailedRow) error {
	writer := csv.NewWriter(w)
	header := []string{
		"source_address",
		"destination_address",
		"original_balance_units",
		"final_balance_units",
		"deducted_units",
		"deduction_percent",
		"signature",
		"raw_payload",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.SourceAddress,
			row.DestinationAddress,
			row.ClaimedBalance.String(),
			row.FinalBalance.String(),
			row.DeductedAmount.String(),
			row.DeductionPercent,
			row.Signature,
			row.RawPayload,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
