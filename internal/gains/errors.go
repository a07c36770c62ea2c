package gains

import (
	"errors"
	"time"
)

// OversellMessage is the message carried by every OversellError.
const OversellMessage = "There are no holdings to sell."

var (
	// ErrEmptyLedger is returned when the oldest lot of an empty ledger is requested.
	ErrEmptyLedger = errors.New("gains: ledger has no open lots")

	// ErrUnknownSide signals a trade whose side is neither buy nor sell.
	ErrUnknownSide = errors.New("gains: unknown trade side")
)

// OversellError is returned when a sell trade needs more shares than the open
// lots of its security hold. It aborts the whole calculation.
type OversellError struct {
	SecurityCode string
	TradeDate    time.Time
	// Unmatched is the part of the sell quantity left over once every open lot
	// was consumed.
	Unmatched int64
}

func (e *OversellError) Error() string {
	return OversellMessage
}
