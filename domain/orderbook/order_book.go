package orderbook

// OrderBook tracks resting orders for one symbol: the live map keyed by
// order ID, plus per-side aggregates of resting quantity by price level.
//
// It is single-writer and deterministic. Every level entry stays equal to
// the sum of live-order quantities at that (side, price) and is removed
// the moment it reaches zero.
type OrderBook struct {
	live map[uint64]Order
	bids map[uint32]uint64
	asks map[uint32]uint64
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		live: make(map[uint64]Order),
		bids: make(map[uint32]uint64),
		asks: make(map[uint32]uint64),
	}
}

func (b *OrderBook) levels(s Side) map[uint32]uint64 {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

// Add inserts a new resting order and bumps its price level.
// Duplicate IDs are rejected outright: the live order and the aggregate
// are never updated independently of each other.
func (b *OrderBook) Add(id uint64, side Side, price, qty uint32) {
	if _, ok := b.live[id]; ok {
		return
	}
	b.live[id] = Order{ID: id, Price: price, Qty: qty, Side: side}
	b.levels(side)[price] += uint64(qty)
}

// Cancel removes a resting order entirely. Unknown IDs are a no-op.
func (b *OrderBook) Cancel(id uint64) {
	o, ok := b.live[id]
	if !ok {
		return
	}
	b.reduceLevel(o.Side, o.Price, uint64(o.Qty))
	delete(b.live, id)
}

// Execute fills up to qty shares of a resting order, removing it once
// fully filled. Unknown IDs and zero quantities are no-ops.
func (b *OrderBook) Execute(id uint64, qty uint32) {
	o, ok := b.live[id]
	if !ok {
		return
	}
	decr := min(qty, o.Qty)
	if decr == 0 {
		return
	}
	b.reduceLevel(o.Side, o.Price, uint64(decr))
	o.Qty -= decr
	if o.Qty == 0 {
		delete(b.live, id)
	} else {
		b.live[id] = o
	}
}

// Replace cancels a resting order and re-adds it under new ID, price and
// quantity, inheriting the original side. If the original ID is not live
// the whole operation is a no-op and no new order appears.
func (b *OrderBook) Replace(id, newID uint64, newPrice, newQty uint32) {
	o, ok := b.live[id]
	if !ok {
		return
	}
	b.Cancel(id)
	b.Add(newID, o.Side, newPrice, newQty)
}

func (b *OrderBook) reduceLevel(side Side, price uint32, qty uint64) {
	lvl := b.levels(side)
	rest := lvl[price] - qty
	if rest == 0 {
		delete(lvl, price)
	} else {
		lvl[price] = rest
	}
}

// ---- read-only helpers ----

// Order returns the live order for id, if any.
func (b *OrderBook) Order(id uint64) (Order, bool) {
	o, ok := b.live[id]
	return o, ok
}

// LevelQty returns the resting quantity at (side, price), zero if the
// level is absent.
func (b *OrderBook) LevelQty(side Side, price uint32) uint64 {
	return b.levels(side)[price]
}

// LevelCount returns the number of populated price levels on one side.
func (b *OrderBook) LevelCount(side Side) int {
	return len(b.levels(side))
}

// LiveCount returns the number of resting orders.
func (b *OrderBook) LiveCount() int {
	return len(b.live)
}

// OrdersWalk visits every live order in unspecified iteration order.
func (b *OrderBook) OrdersWalk(fn func(Order)) {
	for _, o := range b.live {
		fn(o)
	}
}

// LevelsWalk visits every populated price level on one side.
func (b *OrderBook) LevelsWalk(side Side, fn func(price uint32, qty uint64)) {
	for px, qty := range b.levels(side) {
		fn(px, qty)
	}
}
