package dto

import (
	"time"

	"github.com/guttosm/sharecgt/internal/domain/models"
)

// VersionResponse is returned by GET /api/v1/calculators/version.
type VersionResponse struct {
	Version string `json:"version" example:"1.0"`
}

// CalculationResponse is the JSON view of a calculation run.
//
// Monetary values are decimal strings so no precision is lost in transit.
type CalculationResponse struct {
	RunID      string              `json:"run_id" example:"0b7e3c9a-1f2d-4c5e-8a9b-7d6c5b4a3f21"`
	CreatedAt  time.Time           `json:"created_at" format:"date-time"`
	Sources    []string            `json:"sources" example:"2024.csv"`
	TradeCount int                 `json:"trade_count" example:"12"`
	Results    []SecurityResultDTO `json:"results"`
}

// SecurityResultDTO carries the realized totals of one security.
type SecurityResultDTO struct {
	SecurityCode string        `json:"security_code" example:"BHP"`
	TotalGains   string        `json:"total_gains" example:"237.50"`
	TotalLosses  string        `json:"total_losses" example:"0.00"`
	NetGain      string        `json:"net_gain" example:"237.50"`
	NetLoss      string        `json:"net_loss" example:"0.00"`
	IsGain       bool          `json:"is_gain" example:"true"`
	Disposals    []DisposalDTO `json:"disposals,omitempty"`
}

// DisposalDTO is one FIFO matching step.
type DisposalDTO struct {
	PurchaseDate    string `json:"purchase_date" example:"2023-01-01"`
	SaleDate        string `json:"sale_date" example:"2024-01-02"`
	Quantity        int64  `json:"quantity" example:"100"`
	CostBase        string `json:"cost_base" example:"1010.00"`
	CapitalProceeds string `json:"capital_proceeds" example:"1485.00"`
	GainOrLoss      string `json:"gain_or_loss" example:"475.00"`
	HoldingDays     int    `json:"holding_days" example:"366"`
	Discounted      bool   `json:"discounted" example:"true"`
	Amount          string `json:"amount" example:"237.50"`
}

const dateLayout = "2006-01-02"

// NewCalculationResponse maps a run to its API shape. Totals use at least two
// decimal places; more are kept when the value has them (e.g. a discounted
// half cent).
func NewCalculationResponse(run *models.CalculationRun) CalculationResponse {
	resp := CalculationResponse{
		RunID:      run.ID.String(),
		CreatedAt:  run.CreatedAt,
		Sources:    run.Sources,
		TradeCount: run.TradeCount,
		Results:    make([]SecurityResultDTO, 0, len(run.Results)),
	}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}

	for _, r := range run.Results {
		out := SecurityResultDTO{
			SecurityCode: r.SecurityCode,
			TotalGains:   money(r.TotalGains),
			TotalLosses:  money(r.TotalLosses),
			NetGain:      money(r.NetGain()),
			NetLoss:      money(r.NetLoss()),
			IsGain:       r.IsGain(),
		}
		for _, d := range r.Disposals {
			out.Disposals = append(out.Disposals, DisposalDTO{
				PurchaseDate:    d.PurchaseDate.Format(dateLayout),
				SaleDate:        d.SaleDate.Format(dateLayout),
				Quantity:        d.Quantity,
				CostBase:        money(d.CostBase),
				CapitalProceeds: money(d.CapitalProceeds),
				GainOrLoss:      money(d.GainOrLoss),
				HoldingDays:     d.HoldingDays,
				Discounted:      d.Discounted,
				Amount:          money(d.Amount),
			})
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}
