// Package source decodes the columnar event log the replay engine feeds
// on. The layout is the ten-column parquet schema written by the
// itch2parquet converter; every column is non-nullable and rows are
// already in sequence order.
package source

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"lobreplay/domain/event"
	"lobreplay/domain/orderbook"
)

// SideNA marks rows whose message type carries no side (the side is only
// meaningful on adds).
const SideNA uint8 = 255

// Row is one decoded log row, mirroring the parquet schema.
type Row struct {
	Ts      uint64 `parquet:"ts"`
	OrderID uint64 `parquet:"oid"`
	Side    uint8  `parquet:"side"`
	Price   uint32 `parquet:"px"`
	Qty     uint32 `parquet:"qty"`
	Kind    string `parquet:"m,dict"`
	Symbol  string `parquet:"stock,dict"`

	NewOrderID uint64 `parquet:"new_oid"`
	NewPrice   uint32 `parquet:"new_px"`
	NewQty     uint32 `parquet:"new_qty"`
}

// Event converts the row into its domain event. Rows with an unmapped
// message code come back with Kind == event.Unknown.
func (r *Row) Event() event.Event {
	side := orderbook.Bid
	if r.Side == 1 {
		side = orderbook.Ask
	}
	return event.Event{
		Kind:       event.KindFromCode(r.Kind),
		Timestamp:  r.Ts,
		Symbol:     r.Symbol,
		OrderID:    r.OrderID,
		Side:       side,
		Price:      r.Price,
		Qty:        r.Qty,
		NewOrderID: r.NewOrderID,
		NewPrice:   r.NewPrice,
		NewQty:     r.NewQty,
	}
}

// ReadFile loads the full event log into memory, like the original
// engine's single-table read. Replay cost then excludes decode cost.
func ReadFile(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// WriteFile writes an event log with the converter's parquet settings:
// zstd compression and bounded row groups.
func WriteFile(path string, rows []Row, rowGroupSize int64) error {
	if err := parquet.WriteFile(path, rows,
		parquet.Compression(&parquet.Zstd),
		parquet.MaxRowsPerRowGroup(rowGroupSize),
	); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
