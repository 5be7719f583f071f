package event

import "lobreplay/domain/orderbook"

// Kind is the closed set of book-mutating message types.
type Kind uint8

const (
	Add Kind = iota
	Cancel
	Execute
	Replace
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Cancel:
		return "cancel"
	case Execute:
		return "execute"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// KindFromCode maps the wire codes "A", "C", "E", "U" to a Kind.
// Anything else is Unknown; the replay loop skips those rather than abort.
func KindFromCode(code string) Kind {
	switch code {
	case "A":
		return Add
	case "C":
		return Cancel
	case "E":
		return Execute
	case "U":
		return Replace
	default:
		return Unknown
	}
}

// Event is one decoded log row. It is consumed exactly once by the replay
// loop and never retained after apply.
type Event struct {
	Kind      Kind
	Timestamp uint64
	Symbol    string
	OrderID   uint64
	Side      orderbook.Side
	Price     uint32
	Qty       uint32

	// Replace only.
	NewOrderID uint64
	NewPrice   uint32
	NewQty     uint32
}
