// Package stats aggregates per-event apply latencies into a distribution
// summary for the replay report.
package stats

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// Aggregator collects latency samples in processing order. Recording is a
// plain append; all sorting is deferred to Summarize, after the run.
type Aggregator struct {
	samples []time.Duration
}

// NewAggregator preallocates room for capacity samples so recording stays
// allocation-free on the hot path.
func NewAggregator(capacity int) *Aggregator {
	if capacity < 0 {
		capacity = 0
	}
	return &Aggregator{samples: make([]time.Duration, 0, capacity)}
}

// Record appends one sample.
func (a *Aggregator) Record(d time.Duration) {
	a.samples = append(a.samples, d)
}

// Len returns the number of recorded samples.
func (a *Aggregator) Len() int {
	return len(a.samples)
}

// Report is the run summary: throughput over the whole stream plus the
// latency distribution of the recorded samples.
type Report struct {
	Rows        int64
	WallSeconds float64
	Throughput  float64 // events per second
	P50         time.Duration
	P95         time.Duration
	P99         time.Duration
	Max         time.Duration
}

// Summarize computes the final report. It sorts the samples in place, so
// the per-event ordering is gone afterwards; only the distribution
// survives. With no samples it reports zeros instead of failing.
func (a *Aggregator) Summarize(rows int64, wall time.Duration) Report {
	rep := Report{Rows: rows, WallSeconds: wall.Seconds()}
	if wall > 0 {
		rep.Throughput = float64(rows) / wall.Seconds()
	}
	if len(a.samples) == 0 {
		return rep
	}

	slices.Sort(a.samples)
	rep.P50 = a.percentile(0.50)
	rep.P95 = a.percentile(0.95)
	rep.P99 = a.percentile(0.99)
	// percentile(1.0) would index one past the end; the maximum is the
	// last sorted element, read directly.
	rep.Max = a.samples[len(a.samples)-1]
	return rep
}

// percentile returns the sample at index floor(p*N) of the ascending
// sorted sequence. Valid for 0 <= p < 1 and N >= 1.
func (a *Aggregator) percentile(p float64) time.Duration {
	return a.samples[int(p*float64(len(a.samples)))]
}

// WriteText renders the six report figures in the layout the replay tool
// prints on stdout.
func (r Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "LOB Replay Metrics\n")
	fmt.Fprintf(w, "------------------\n")
	fmt.Fprintf(w, "Rows processed     : %d\n", r.Rows)
	fmt.Fprintf(w, "Total wall time (s): %.4f\n", r.WallSeconds)
	fmt.Fprintf(w, "Throughput (msg/s) : %.3f M\n", r.Throughput/1e6)
	fmt.Fprintf(w, "Latency (ns) - p50 : %d\n", r.P50.Nanoseconds())
	fmt.Fprintf(w, "Latency (ns) - p95 : %d\n", r.P95.Nanoseconds())
	fmt.Fprintf(w, "Latency (ns) - p99 : %d\n", r.P99.Nanoseconds())
	fmt.Fprintf(w, "Latency (ns) - max : %d\n", r.Max.Nanoseconds())
}
