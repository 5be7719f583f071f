package service

import (
	"time"

	"lobreplay/domain/event"
	"lobreplay/domain/orderbook"
	"lobreplay/infra/instrumentation"
	"lobreplay/infra/log"
	"lobreplay/infra/source"
	"lobreplay/stats"
)

/*
Replayer drives the decoded event log through the per-symbol books.

The source is trusted to deliver rows in sequence order; nothing here
reorders or validates ordering. Each row is applied exactly once, and the
timed region covers precisely the book resolution plus the dispatch,
never the timer bookkeeping or the metrics updates around it.
*/
type Replayer struct {
	registry *orderbook.Registry
	agg      *stats.Aggregator
	metrics  *instrumentation.Metrics // optional
	log      log.Logger
}

// Result is what one full run produces.
type Result struct {
	Rows    int64
	Applied int64
	Ignored int64
	Books   int
	Wall    time.Duration
	Report  stats.Report
}

// NewReplayer wires all dependencies. metrics may be nil.
func NewReplayer(
	registry *orderbook.Registry,
	agg *stats.Aggregator,
	metrics *instrumentation.Metrics,
	logger log.Logger,
) *Replayer {
	return &Replayer{
		registry: registry,
		agg:      agg,
		metrics:  metrics,
		log:      logger,
	}
}

// Run replays every row in order and returns the summarized result.
func (r *Replayer) Run(rows []source.Row) Result {
	var applied, ignored int64

	wallStart := time.Now()

	for i := range rows {
		ev := rows[i].Event()

		if ev.Kind == event.Unknown {
			// Lenient by design: schema drift must not abort a replay.
			ignored++
			if r.metrics != nil {
				r.metrics.ObserveUnrecognized()
			}
			continue
		}

		start := time.Now()
		book := r.registry.Resolve(ev.Symbol)
		dispatch(book, &ev)
		elapsed := time.Since(start)

		r.agg.Record(elapsed)
		applied++
		if r.metrics != nil {
			r.metrics.ObserveApplied(ev.Kind)
		}
	}

	wall := time.Since(wallStart)

	if r.metrics != nil {
		r.metrics.SetBooks(r.registry.Len())
	}
	if ignored > 0 {
		r.log.Warn().
			Int64("ignored", ignored).
			Msg("skipped rows with unrecognized message kind")
	}

	return Result{
		Rows:    int64(len(rows)),
		Applied: applied,
		Ignored: ignored,
		Books:   r.registry.Len(),
		Wall:    wall,
		Report:  r.agg.Summarize(int64(len(rows)), wall),
	}
}

func dispatch(book *orderbook.OrderBook, ev *event.Event) {
	switch ev.Kind {
	case event.Add:
		book.Add(ev.OrderID, ev.Side, ev.Price, ev.Qty)
	case event.Cancel:
		book.Cancel(ev.OrderID)
	case event.Execute:
		book.Execute(ev.OrderID, ev.Qty)
	case event.Replace:
		book.Replace(ev.OrderID, ev.NewOrderID, ev.NewPrice, ev.NewQty)
	}
}
