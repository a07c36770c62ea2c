package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Disposal records one matching step: a quantity of a sell trade taken from a
// single purchase lot.
//
// Amount is what the step contributed to the security totals: the discounted
// gain when GainOrLoss is positive, otherwise the absolute loss.
type Disposal struct {
	SecurityCode    string          `json:"security_code"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	SaleDate        time.Time       `json:"sale_date"`
	Quantity        int64           `json:"quantity"`
	CostBase        decimal.Decimal `json:"cost_base"`
	CapitalProceeds decimal.Decimal `json:"capital_proceeds"`
	GainOrLoss      decimal.Decimal `json:"gain_or_loss"`
	HoldingDays     int             `json:"holding_days"`
	Discounted      bool            `json:"discounted"`
	Amount          decimal.Decimal `json:"amount"`
}

// IsLoss reports whether the step produced a loss (or broke even).
func (d Disposal) IsLoss() bool {
	return !d.GainOrLoss.IsPositive()
}

// CalculationResult holds realized totals for one security.
//
// TotalGains is the sum of discounted gain fragments and TotalLosses the sum of
// absolute loss fragments; both are non-negative. Net figures and direction are
// derived from them.
type CalculationResult struct {
	SecurityCode string          `json:"security_code"`
	TotalGains   decimal.Decimal `json:"total_gains"`
	TotalLosses  decimal.Decimal `json:"total_losses"`
	Disposals    []Disposal      `json:"disposals,omitempty"`
}

// NetGain returns max(TotalGains - TotalLosses, 0).
func (r CalculationResult) NetGain() decimal.Decimal {
	return decimal.Max(r.TotalGains.Sub(r.TotalLosses), decimal.Zero)
}

// NetLoss returns max(TotalLosses - TotalGains, 0).
func (r CalculationResult) NetLoss() decimal.Decimal {
	return decimal.Max(r.TotalLosses.Sub(r.TotalGains), decimal.Zero)
}

// IsGain reports whether the security closed the period with a net gain.
func (r CalculationResult) IsGain() bool {
	return r.NetGain().GreaterThan(r.NetLoss())
}

// CalculationRun is one submission: the files that were read and the results
// computed from them.
type CalculationRun struct {
	ID         uuid.UUID           `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	Sources    []string            `json:"sources"`
	TradeCount int                 `json:"trade_count"`
	Results    []CalculationResult `json:"results"`
}
