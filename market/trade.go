package market

import "time"

// Side of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trade represents a single fill event. Immutable once created.
type Trade struct {
	Timestamp    time.Time
	InstrumentID string
	Side         Side
	Quantity     float64
	Price        float64
}

// SignedQty returns the quantity with a sign: positive for BUY, negative
// for SELL.
func (t Trade) SignedQty() float64 {
	if t.Side == SideSell {
		return -t.Quantity
	}
	return t.Quantity
}

// PriceFn looks up the current price for an instrument id. It must fail
// with ErrUnknownInstrument for ids it has no price for.
type PriceFn func(instrumentID string) (float64, error)
