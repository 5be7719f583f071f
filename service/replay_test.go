package service

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobreplay/domain/orderbook"
	"lobreplay/infra/instrumentation"
	"lobreplay/infra/source"
	"lobreplay/stats"
)

func newTestReplayer(metrics *instrumentation.Metrics) (*Replayer, *orderbook.Registry) {
	reg := orderbook.NewRegistry()
	r := NewReplayer(reg, stats.NewAggregator(64), metrics, zerolog.Nop())
	return r, reg
}

func TestRunAppliesEventsInOrder(t *testing.T) {
	r, reg := newTestReplayer(nil)

	result := r.Run([]source.Row{
		{Ts: 1, OrderID: 1, Side: 0, Price: 100, Qty: 50, Kind: "A", Symbol: "AAPL"},
		{Ts: 2, OrderID: 1, Qty: 30, Kind: "E", Symbol: "AAPL"},
		{Ts: 3, OrderID: 2, Side: 1, Price: 200, Qty: 10, Kind: "A", Symbol: "MSFT"},
		{Ts: 4, OrderID: 2, Kind: "C", Symbol: "MSFT"},
		{Ts: 5, OrderID: 3, Side: 0, Price: 150, Qty: 40, Kind: "A", Symbol: "AAPL"},
		{Ts: 6, OrderID: 3, Kind: "U", Symbol: "AAPL", NewOrderID: 4, NewPrice: 151, NewQty: 15},
	})

	assert.EqualValues(t, 6, result.Rows)
	assert.EqualValues(t, 6, result.Applied)
	assert.EqualValues(t, 0, result.Ignored)
	assert.Equal(t, 2, result.Books)

	aapl := reg.Resolve("AAPL")
	o, ok := aapl.Order(1)
	require.True(t, ok)
	assert.EqualValues(t, 20, o.Qty)
	assert.EqualValues(t, 20, aapl.LevelQty(orderbook.Bid, 100))

	_, ok = aapl.Order(3)
	assert.False(t, ok, "replaced order should be gone")
	repl, ok := aapl.Order(4)
	require.True(t, ok)
	assert.Equal(t, orderbook.Bid, repl.Side)
	assert.EqualValues(t, 151, repl.Price)

	msft := reg.Resolve("MSFT")
	assert.Zero(t, msft.LiveCount())
	assert.Zero(t, msft.LevelCount(orderbook.Ask))
}

func TestRunSkipsUnrecognizedKinds(t *testing.T) {
	promReg := prometheus.NewRegistry()
	metrics := instrumentation.New(promReg)
	r, reg := newTestReplayer(metrics)

	result := r.Run([]source.Row{
		{OrderID: 1, Side: 0, Price: 100, Qty: 50, Kind: "A", Symbol: "AAPL"},
		{OrderID: 2, Kind: "P", Symbol: "AAPL"},
		{OrderID: 3, Kind: "Q", Symbol: "AAPL"},
		{OrderID: 1, Kind: "C", Symbol: "AAPL"},
	})

	assert.EqualValues(t, 4, result.Rows)
	assert.EqualValues(t, 2, result.Applied)
	assert.EqualValues(t, 2, result.Ignored)
	assert.Zero(t, reg.Resolve("AAPL").LiveCount())

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.UnrecognizedTotal), 0)
}

func TestRunRecordsOneSamplePerAppliedEvent(t *testing.T) {
	agg := stats.NewAggregator(8)
	r := NewReplayer(orderbook.NewRegistry(), agg, nil, zerolog.Nop())

	r.Run([]source.Row{
		{OrderID: 1, Side: 0, Price: 100, Qty: 1, Kind: "A", Symbol: "X"},
		{OrderID: 2, Kind: "P", Symbol: "X"},
		{OrderID: 1, Kind: "C", Symbol: "X"},
	})

	assert.Equal(t, 2, agg.Len(), "skipped rows must not produce latency samples")
}

func TestRunEmptyLog(t *testing.T) {
	r, _ := newTestReplayer(nil)
	result := r.Run(nil)

	assert.Zero(t, result.Rows)
	assert.Zero(t, result.Books)
	assert.Zero(t, result.Report.Throughput)
	assert.Zero(t, result.Report.Max)
}

func TestRunThroughputUsesAllRows(t *testing.T) {
	r, _ := newTestReplayer(nil)

	result := r.Run([]source.Row{
		{OrderID: 1, Side: 0, Price: 100, Qty: 1, Kind: "A", Symbol: "X"},
		{OrderID: 2, Kind: "P", Symbol: "X"},
	})

	// Throughput covers the whole stream, skips included.
	assert.EqualValues(t, 2, result.Report.Rows)
	assert.Positive(t, result.Report.Throughput)
}
