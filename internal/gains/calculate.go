package gains

import (
	"sort"

	"github.com/guttosm/sharecgt/internal/domain/models"
)

// Calculate groups trades by security and returns one result per security that
// has at least one sell. Results follow the order in which each security code
// first appears in trades.
//
// Within a security, trades are stably sorted by trade date so same-day trades
// keep their input order. Every security is matched against a fresh ledger.
// The first oversell aborts the whole calculation.
func Calculate(trades []models.Trade) ([]models.CalculationResult, error) {
	var order []string
	groups := make(map[string][]models.Trade)
	for _, tr := range trades {
		if _, seen := groups[tr.SecurityCode]; !seen {
			order = append(order, tr.SecurityCode)
		}
		groups[tr.SecurityCode] = append(groups[tr.SecurityCode], tr)
	}

	results := make([]models.CalculationResult, 0, len(order))
	for _, code := range order {
		group := groups[code]
		if !hasSell(group) {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].TradeDate.Before(group[j].TradeDate)
		})

		tally, err := MatchSecurity(group, NewLedger())
		if err != nil {
			return nil, err
		}

		results = append(results, models.CalculationResult{
			SecurityCode: code,
			TotalGains:   tally.Gains,
			TotalLosses:  tally.Losses,
			Disposals:    tally.Disposals,
		})
	}

	return results, nil
}

func hasSell(trades []models.Trade) bool {
	for _, tr := range trades {
		if tr.Side == models.SideSell {
			return true
		}
	}
	return false
}
