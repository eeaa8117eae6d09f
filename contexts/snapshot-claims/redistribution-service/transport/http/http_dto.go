package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PayoutDTO struct {
	DestinationAddress string `json:"destinationAddress"`
	OriginalBalance    string `json:"originalBalance"`
	FinalBalance       string `json:"finalBalance"`
	FinalBalanceCoins  string `json:"finalBalanceCoins"`
}

type DetailedRowDTO struct {
	SourceAddress      string `json:"sourceAddress"`
	DestinationAddress string `json:"destinationAddress"`
	OriginalBalance    string `json:"originalBalance"`
	FinalBalance       string `json:"finalBalance"`
	DeductedAmount     string `json:"deductedAmount"`
	DeductionPercent   string `json:"deductionPercent"`
	Signature          string `json:"signature"`
	RawPayload         string `json:"rawPayload"`
}

type RedistributionResponse struct {
	TargetCapUnits     string           `json:"targetCapUnits"`
	TotalOriginalUnits string           `json:"totalOriginalUnits"`
	Multiplier         string           `json:"multiplier"`
	Scaled             bool             `json:"scaled"`
	ConsistencyWarning string           `json:"consistencyWarning,omitempty"`
	Payouts            []PayoutDTO      `json:"payouts,omitempty"`
	Details            []DetailedRowDTO `json:"details,omitempty"`
}
