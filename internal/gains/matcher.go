package gains

import (
	"fmt"
	"time"

	"github.com/guttosm/sharecgt/internal/domain/models"
	"github.com/shopspring/decimal"
)

const (
	// discountHoldingDays is the holding period a lot must strictly exceed
	// before its gains are discounted.
	discountHoldingDays = 365

	centPlaces = 2
)

var discountRate = decimal.NewFromFloat(0.5)

// Tally is what matching one security's trades produced.
type Tally struct {
	Gains     decimal.Decimal
	Losses    decimal.Decimal
	Disposals []models.Disposal
}

// MatchSecurity walks one security's trades in the given order, opening a lot
// for every buy and matching every sell against the oldest open lots of ledger.
//
// trades must belong to a single security and be sorted by ascending trade
// date. The ledger is mutated in place. A sell that cannot be fully matched
// returns *OversellError and the partial tally is discarded.
func MatchSecurity(trades []models.Trade, ledger *Ledger) (Tally, error) {
	tally := Tally{Gains: decimal.Zero, Losses: decimal.Zero}

	for _, tr := range trades {
		switch tr.Side {
		case models.SideBuy:
			qty := abs(tr.Quantity)
			if qty == 0 {
				continue
			}
			ledger.Push(newLot(qty, tr.UnitPrice, tr.TradeDate, tr.Brokerage))

		case models.SideSell:
			if err := matchSell(tr, ledger, &tally); err != nil {
				return Tally{}, err
			}

		default:
			return Tally{}, fmt.Errorf("%w: %s on %s", ErrUnknownSide, tr.Side, tr.TradeDate.Format(time.DateOnly))
		}
	}

	return tally, nil
}

// matchSell consumes lots for one sell trade and adds its fragments to tally.
func matchSell(sell models.Trade, ledger *Ledger, tally *Tally) error {
	sellQty := abs(sell.Quantity)
	toMatch := sellQty

	for toMatch > 0 {
		if ledger.IsEmpty() {
			return &OversellError{
				SecurityCode: sell.SecurityCode,
				TradeDate:    sell.TradeDate,
				Unmatched:    toMatch,
			}
		}

		lot, err := ledger.PeekOldest()
		if err != nil {
			return err
		}
		matchQty := min(toMatch, lot.RemainingQuantity)
		q := decimal.NewFromInt(matchQty)

		// Fee per share is fixed by the lot's original size and by the whole
		// sell, however the quantities get split.
		purchaseFee := prorate(lot.Brokerage, matchQty, lot.OriginalQuantity)
		costBase := q.Mul(lot.UnitPrice).Add(purchaseFee)

		saleFee := prorate(sell.Brokerage, matchQty, sellQty)
		proceeds := q.Mul(sell.UnitPrice).Sub(saleFee)

		delta := proceeds.Sub(costBase)
		days := holdingDays(lot.PurchaseDate, sell.TradeDate)

		d := models.Disposal{
			SecurityCode:    sell.SecurityCode,
			PurchaseDate:    lot.PurchaseDate,
			SaleDate:        sell.TradeDate,
			Quantity:        matchQty,
			CostBase:        costBase,
			CapitalProceeds: proceeds,
			GainOrLoss:      delta,
			HoldingDays:     days,
		}

		if delta.IsPositive() {
			gain := delta.Round(centPlaces)
			if days > discountHoldingDays {
				gain = gain.Mul(discountRate)
				d.Discounted = true
			}
			d.Amount = gain
			tally.Gains = tally.Gains.Add(gain)
		} else {
			// Losses are summed unrounded.
			d.Amount = delta.Abs()
			tally.Losses = tally.Losses.Add(d.Amount)
		}
		tally.Disposals = append(tally.Disposals, d)

		ledger.ConsumeFromOldest(matchQty)
		toMatch -= matchQty
	}

	return nil
}

// prorate returns fee * part / whole rounded to cents.
func prorate(fee decimal.Decimal, part, whole int64) decimal.Decimal {
	return fee.Mul(decimal.NewFromInt(part)).
		Div(decimal.NewFromInt(whole)).
		Round(centPlaces)
}

// holdingDays counts calendar days between two trade dates, ignoring the time
// of day and zone offsets.
func holdingDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
