package gains

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an open purchase of a security.
//
// OriginalQuantity never changes after the lot is created and is the
// denominator for purchase fee proration. RemainingQuantity shrinks as sells
// consume the lot.
type Lot struct {
	OriginalQuantity  int64
	RemainingQuantity int64
	UnitPrice         decimal.Decimal
	PurchaseDate      time.Time
	Brokerage         decimal.Decimal
}

// newLot opens a lot holding the full quantity of a purchase.
func newLot(qty int64, unitPrice decimal.Decimal, date time.Time, brokerage decimal.Decimal) *Lot {
	return &Lot{
		OriginalQuantity:  qty,
		RemainingQuantity: qty,
		UnitPrice:         unitPrice,
		PurchaseDate:      date,
		Brokerage:         brokerage,
	}
}

// Ledger is a FIFO queue of open lots for one security. New lots join the tail;
// sells inspect and consume the head. A lot is dropped as soon as it is fully
// consumed, so the ledger never holds an empty lot.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	lots []*Lot
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Push appends a lot to the tail. Lots must be opened with
// RemainingQuantity == OriginalQuantity > 0.
func (l *Ledger) Push(lot *Lot) {
	l.lots = append(l.lots, lot)
}

// PeekOldest returns the head lot without removing it.
func (l *Ledger) PeekOldest() (*Lot, error) {
	if len(l.lots) == 0 {
		return nil, ErrEmptyLedger
	}
	return l.lots[0], nil
}

// ConsumeFromOldest takes qty shares from the head lot and drops the lot once
// it reaches zero. The caller guarantees 0 < qty <= head.RemainingQuantity.
func (l *Ledger) ConsumeFromOldest(qty int64) {
	head := l.lots[0]
	head.RemainingQuantity -= qty
	if head.RemainingQuantity == 0 {
		l.lots[0] = nil
		l.lots = l.lots[1:]
	}
}

// IsEmpty reports whether no open lots remain.
func (l *Ledger) IsEmpty() bool {
	return len(l.lots) == 0
}

// Len returns the number of open lots.
func (l *Ledger) Len() int {
	return len(l.lots)
}

// Open returns the total remaining quantity across all open lots.
func (l *Ledger) Open() int64 {
	var total int64
	for _, lot := range l.lots {
		total += lot.RemainingQuantity
	}
	return total
}
