package orderbook

// Side of the book an order rests on.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Order is a pure domain entity: one resting order, exclusively owned by
// the book's live map.
type Order struct {
	ID    uint64
	Price uint32
	Qty   uint32
	Side  Side
}
