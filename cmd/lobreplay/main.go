package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lobreplay/domain/orderbook"
	"lobreplay/infra/config"
	"lobreplay/infra/instrumentation"
	"lobreplay/infra/log"
	"lobreplay/infra/source"
	"lobreplay/service"
	"lobreplay/stats"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lobreplay <events.parquet>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lobreplay: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, cfg.LogPretty)

	// ---------------- Metrics ----------------

	var metrics *instrumentation.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = instrumentation.New(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics listener exited")
			}
		}()
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
	}

	// ---------------- Source ----------------

	path := os.Args[1]
	logger.Info().Str("path", path).Msg("loading event log")

	rows, err := source.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Msg("cannot load event log")
		os.Exit(1)
	}
	logger.Info().Int("rows", len(rows)).Msg("event log loaded")

	// ---------------- Replay ----------------

	replayer := service.NewReplayer(
		orderbook.NewRegistry(),
		stats.NewAggregator(max(cfg.SampleCapacity, len(rows))),
		metrics,
		logger,
	)

	result := replayer.Run(rows)

	logger.Info().
		Int64("applied", result.Applied).
		Int64("ignored", result.Ignored).
		Int("books", result.Books).
		Dur("wall", result.Wall).
		Msg("replay complete")

	result.Report.WriteText(os.Stdout)
}
