package httpadapter

import (
	"context"
	"io"
	"log/slog"

	"claimerapi/contexts/snapshot-claims/redistribution-service/application"
	"claimerapi/contexts/snapshot-claims/redistribution-service/domain/entities"
	httptransport "claimerapi/contexts/snapshot-claims/redistribution-service/transport/http"
	"claimerapi/internal/shared/units"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// RedistributionHandler godoc
// @Summary Compute the redistribution
// @Description Returns supply-capped proportional payouts over the verified claim set.
// @Tags redistribution-service
// @Produce json
// @Param detailed query bool false "Return one audit row per source claim"
// @Success 200 {object} httptransport.RedistributionResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /redistribution [get]
func (h Handler) RedistributionHandler(ctx context.Context, detailed bool) (httptransport.RedistributionResponse, error) {
	if detailed {
		rows, result, err := h.Service.Detailed(ctx)
		if err != nil {
			return httptransport.RedistributionResponse{}, err
		}
		resp := baseResponse(result)
		resp.Details = make([]httptransport.DetailedRowDTO, 0, len(rows))
		for _, row := range rows {
			resp.Details = append(resp.Details, httptransport.DetailedRowDTO{
				SourceAddress:      row.SourceAddress,
				DestinationAddress: row.DestinationAddress,
				OriginalBalance:    row.ClaimedBalance.String(),
				FinalBalance:       row.FinalBalance.String(),
				DeductedAmount:     row.DeductedAmount.String(),
				DeductionPercent:   row.DeductionPercent,
				Signature:          row.Signature,
				RawPayload:         row.RawPayload,
			})
		}
		return resp, nil
	}

	result, err := h.Service.Compute(ctx)
	if err != nil {
		return httptransport.RedistributionResponse{}, err
	}
	resp := baseResponse(result)
	resp.Payouts = make([]httptransport.PayoutDTO, 0, len(result.Payouts))
	for _, payout := range result.Payouts {
		resp.Payouts = append(resp.Payouts, httptransport.PayoutDTO{
			DestinationAddress: payout.DestinationAddress,
			OriginalBalance:    payout.OriginalBalance.String(),
			FinalBalance:       payout.FinalBalance.String(),
			FinalBalanceCoins:  units.FormatCoins(payout.FinalBalance, h.Service.Params.ScaleDigits),
		})
	}
	return resp, nil
}

// WriteCSV godoc
// @Summary Download the redistribution as CSV
// @Description Streams the payout table; detailed selects the per-claim audit schema.
// @Tags redistribution-service
// @Produce text/csv
// @Param detailed query bool false "Export one audit row per source claim"
// @Success 200 {string} string "CSV export"
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /download-csv [get]
func (h Handler) WriteCSV(ctx context.Context, w io.Writer, detailed bool) error {
	if detailed {
		rows, _, err := h.Service.Detailed(ctx)
		if err != nil {
			return err
		}
		return application.WriteDetailedCSV(w, rows)
	}

	result, err := h.Service.Compute(ctx)
	if err != nil {
		return err
	}
	return application.WriteCompactCSV(w, result, h.Service.Params.ScaleDigits)
}

func baseResponse(result entities.Result) httptransport.RedistributionResponse {
	return httptransport.RedistributionResponse{
		TargetCapUnits:     result.TargetCapUnits.String(),
		TotalOriginalUnits: result.TotalOriginalUnits.String(),
		Multiplier:         result.Multiplier.String(),
		Scaled:             result.Scaled,
		ConsistencyWarning: result.ConsistencyWarning,
	}
}
