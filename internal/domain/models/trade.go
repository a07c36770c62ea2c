package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade. It is resolved once when a trade file is
// parsed; downstream code only ever sees SideBuy or SideSell.
type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

// ParseSide converts the "Type" column of a trade file into a Side.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("unknown trade type %q", s)
	}
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// MarshalText renders the side as "Buy" or "Sell" in JSON payloads.
func (s Side) MarshalText() ([]byte, error) {
	if s != SideBuy && s != SideSell {
		return nil, fmt.Errorf("invalid side %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// Trade represents a single row of a broker trade confirmation file.
//
// Column mapping:
//   - Code              → SecurityCode
//   - Company           → Company
//   - Date              → TradeDate (dd/MM/yyyy)
//   - Type              → Side
//   - Quantity          → Quantity (stored as a positive magnitude; sells are negative in files)
//   - Unit Price ($)    → UnitPrice
//   - Trade Value ($)   → TradeValue
//   - Brokerage+GST ($) → Brokerage
//   - GST ($)           → GST
//   - Contract Note     → ContractNote
//   - Total Value ($)   → TotalValue
//
// Only SecurityCode, TradeDate, Side, Quantity, UnitPrice and Brokerage take
// part in gain/loss calculation. The remaining columns are carried for display.
type Trade struct {
	SecurityCode string          `json:"security_code"`
	Company      string          `json:"company,omitempty"`
	TradeDate    time.Time       `json:"trade_date"`
	Side         Side            `json:"side"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TradeValue   decimal.Decimal `json:"trade_value"`
	Brokerage    decimal.Decimal `json:"brokerage"`
	GST          decimal.Decimal `json:"gst"`
	ContractNote string          `json:"contract_note,omitempty"`
	TotalValue   decimal.Decimal `json:"total_value"`
}
