package itch

import "lobreplay/infra/source"

/*
Converter turns order-flow messages into replay log rows.

Two normalizations happen here so the replay core sees its A/C/E/U
contract:

  - Symbols: only 'A'/'F' carry the ticker, so the converter keeps an
    order-ref → symbol table and stamps every downstream message with the
    resolved symbol. 'U' re-registers the new ref, 'D' drops the entry.
  - Codes: 'F' is an add; 'C' (executed with price) and 'X' (partial
    cancel) both reduce a resting quantity, which is exactly the book
    effect of an execution, so they are emitted as "E"; 'D' is the full
    cancel "C".
*/
type Converter struct {
	symbols map[uint64]string
	filter  string
}

// NewConverter builds a converter. A non-empty filter keeps only rows
// whose resolved symbol matches it.
func NewConverter(filter string) *Converter {
	return &Converter{
		symbols: make(map[uint64]string),
		filter:  filter,
	}
}

// Convert maps one message to a log row. ok is false when the row is
// dropped by the symbol filter.
func (c *Converter) Convert(m Message) (source.Row, bool) {
	row := source.Row{
		Ts:      m.Timestamp,
		OrderID: m.OrderRef,
		Side:    m.Side,
		Price:   m.Price,
		Qty:     m.Qty,
	}

	switch m.Type {
	case 'A', 'F':
		c.symbols[m.OrderRef] = m.Stock
		row.Kind = "A"
		row.Symbol = m.Stock
	case 'E', 'C', 'X':
		row.Kind = "E"
		row.Symbol = c.symbols[m.OrderRef]
	case 'D':
		row.Kind = "C"
		row.Symbol = c.symbols[m.OrderRef]
		delete(c.symbols, m.OrderRef)
	case 'U':
		row.Kind = "U"
		row.Symbol = c.symbols[m.OrderRef]
		row.NewOrderID = m.NewOrderRef
		row.NewPrice = m.Price
		row.NewQty = m.Qty
		row.Price = 0
		row.Qty = 0
		c.symbols[m.NewOrderRef] = row.Symbol
		delete(c.symbols, m.OrderRef)
	}

	if c.filter != "" && row.Symbol != c.filter {
		return source.Row{}, false
	}
	return row, true
}

// Tracked returns the number of order refs currently mapped to a symbol.
func (c *Converter) Tracked() int {
	return len(c.symbols)
}
