package settings

import "errors"

// ErrInvalidRates indicates tax and processing-fee rates that don't leave a
// positive net multiplier.
var ErrInvalidRates = errors.New("invalid financial rates")

// Financials holds the workspace-level financial defaults. Only the two
// rates feed the metrics engine; currency and weekly target are display
// settings carried alongside them.
type Financials struct {
	TaxRate           float64 `json:"tax_rate"`
	ProcessingFeeRate float64 `json:"processing_fee_rate"`
	Currency          string  `json:"currency"`
	WeeklyTarget      float64 `json:"weekly_target"`
}

// NetMultiplier converts gross revenue to net.
func (f Financials) NetMultiplier() float64 {
	return 1 - f.TaxRate - f.ProcessingFeeRate
}

// Validate checks the rate fields.
func (f Financials) Validate() error {
	if f.TaxRate < 0 || f.ProcessingFeeRate < 0 || f.TaxRate+f.ProcessingFeeRate >= 1 {
		return ErrInvalidRates
	}
	return nil
}
