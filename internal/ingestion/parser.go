package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/sharecgt/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidContent wraps every failure to turn a file into trades.
var ErrInvalidContent = errors.New("invalid trade file content")

// Broker export column names.
const (
	colCode         = "Code"
	colCompany      = "Company"
	colDate         = "Date"
	colType         = "Type"
	colQuantity     = "Quantity"
	colUnitPrice    = "Unit Price ($)"
	colTradeValue   = "Trade Value ($)"
	colBrokerage    = "Brokerage+GST ($)"
	colGST          = "GST ($)"
	colContractNote = "Contract Note"
	colTotalValue   = "Total Value ($)"
)

const tradeDateLayout = "02/01/2006" // dd/MM/yyyy

// requiredHeaders must all be present; other known columns are optional and
// unknown columns are ignored.
var requiredHeaders = []string{
	colCode,
	colDate,
	colType,
	colQuantity,
	colUnitPrice,
	colBrokerage,
}

// columns maps a header name to its position in the file.
type columns map[string]int

func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// ParseTrades reads a comma separated trade file with a header row.
//
// It fails on:
//   - a missing required column
//   - a row too short to hold every required column
//   - an unparsable date, side, quantity or amount
//   - a zero quantity, or a negative price or fee
//
// Every error wraps ErrInvalidContent and names the offending line.
func ParseTrades(ctx context.Context, r io.Reader) ([]models.Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length is checked against the header below
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidContent)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidContent, err)
	}

	cols, err := indexHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	var trades []models.Trade
	lineNumber := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: read line after %d: %v", ErrInvalidContent, lineNumber, err)
		}
		lineNumber++

		tr, err := recordToTrade(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidContent, lineNumber, err)
		}
		trades = append(trades, tr)
	}

	return trades, nil
}

func indexHeader(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var missing []string
	for _, h := range requiredHeaders {
		if _, ok := cols[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// recordToTrade converts one CSV record into a models.Trade.
//
// Column handling:
//
//	Code              → SecurityCode (required, upper-cased)
//	Company           → Company
//	Date              → TradeDate (dd/MM/yyyy, required)
//	Type              → Side (Buy|Sell, required)
//	Quantity          → Quantity (non-zero integer, stored as magnitude)
//	Unit Price ($)    → UnitPrice (required, >= 0)
//	Trade Value ($)   → TradeValue (empty → 0)
//	Brokerage+GST ($) → Brokerage (empty → 0, >= 0)
//	GST ($)           → GST (empty → 0)
//	Contract Note     → ContractNote
//	Total Value ($)   → TotalValue (empty → 0)
func recordToTrade(rec []string, cols columns) (models.Trade, error) {
	var t models.Trade

	for _, h := range requiredHeaders {
		if cols[h] >= len(rec) {
			return t, fmt.Errorf("expected at least %d columns, got %d", cols[h]+1, len(rec))
		}
	}

	t.SecurityCode = strings.ToUpper(cols.get(rec, colCode))
	if t.SecurityCode == "" {
		return t, errors.New("empty Code")
	}
	t.Company = cols.get(rec, colCompany)
	t.ContractNote = cols.get(rec, colContractNote)

	d, err := time.Parse(tradeDateLayout, cols.get(rec, colDate))
	if err != nil {
		return t, fmt.Errorf("invalid Date: %v", err)
	}
	t.TradeDate = d

	if t.Side, err = models.ParseSide(cols.get(rec, colType)); err != nil {
		return t, err
	}

	q, err := strconv.ParseInt(cols.get(rec, colQuantity), 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid Quantity: %v", err)
	}
	if q == 0 {
		return t, errors.New("zero Quantity")
	}
	if q < 0 {
		q = -q
	}
	t.Quantity = q

	if t.UnitPrice, err = parseAmount(cols.get(rec, colUnitPrice), true); err != nil {
		return t, fmt.Errorf("invalid %s: %v", colUnitPrice, err)
	}
	if t.UnitPrice.IsNegative() {
		return t, fmt.Errorf("negative %s", colUnitPrice)
	}

	if t.Brokerage, err = parseAmount(cols.get(rec, colBrokerage), false); err != nil {
		return t, fmt.Errorf("invalid %s: %v", colBrokerage, err)
	}
	if t.Brokerage.IsNegative() {
		return t, fmt.Errorf("negative %s", colBrokerage)
	}

	if t.TradeValue, err = parseAmount(cols.get(rec, colTradeValue), false); err != nil {
		return t, fmt.Errorf("invalid %s: %v", colTradeValue, err)
	}
	if t.GST, err = parseAmount(cols.get(rec, colGST), false); err != nil {
		return t, fmt.Errorf("invalid %s: %v", colGST, err)
	}
	if t.TotalValue, err = parseAmount(cols.get(rec, colTotalValue), false); err != nil {
		return t, fmt.Errorf("invalid %s: %v", colTotalValue, err)
	}

	return t, nil
}

// parseAmount parses a money cell such as "1,010.50" or "$15". An empty cell is
// zero unless required is set.
func parseAmount(s string, required bool) (decimal.Decimal, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		if required {
			return decimal.Zero, errors.New("empty value")
		}
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
