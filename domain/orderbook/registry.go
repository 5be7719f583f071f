package orderbook

// Registry maps symbols to their order books. Books are created lazily on
// first reference and live for the whole replay run; there is no eviction,
// so the registry is bounded by the distinct symbol count of the input.
type Registry struct {
	books map[string]*OrderBook
}

func NewRegistry() *Registry {
	return &Registry{books: make(map[string]*OrderBook)}
}

// Resolve returns the book for symbol, creating an empty one on first use.
func (r *Registry) Resolve(symbol string) *OrderBook {
	b, ok := r.books[symbol]
	if !ok {
		b = NewOrderBook()
		r.books[symbol] = b
	}
	return b
}

// Len returns the number of distinct symbols seen so far.
func (r *Registry) Len() int {
	return len(r.books)
}

// Walk visits every (symbol, book) pair in unspecified order.
func (r *Registry) Walk(fn func(symbol string, b *OrderBook)) {
	for sym, b := range r.books {
		fn(sym, b)
	}
}
