package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"lobreplay/infra/config"
	"lobreplay/infra/itch"
	"lobreplay/infra/log"
	"lobreplay/infra/source"
)

func main() {
	symbol := flag.String("symbol", "", "keep only rows for this ticker")
	rowGroup := flag.Int64("row-group", 1_000_000, "parquet row-group size")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: itch2parquet [flags] <session.itch[.gz]> <out.parquet>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "itch2parquet: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(cfg.LogLevel, cfg.LogPretty)

	if err := run(flag.Arg(0), flag.Arg(1), *symbol, *rowGroup, logger); err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		os.Exit(1)
	}
}

func run(inPath, outPath, symbol string, rowGroup int64, logger log.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var r io.Reader = in
	if strings.HasSuffix(inPath, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	logger.Info().Str("in", inPath).Str("out", outPath).Msg("decoding session")
	start := time.Now()

	parser := itch.NewParser(r)
	conv := itch.NewConverter(symbol)

	var rows []source.Row
	for {
		msg, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		if row, ok := conv.Convert(msg); ok {
			rows = append(rows, row)
		}
	}
	elapsed := time.Since(start)

	if len(rows) == 0 {
		return fmt.Errorf("no rows captured; wrong file or overly strict symbol filter")
	}

	logger.Info().
		Uint64("messages", parser.Total()).
		Int("rows", len(rows)).
		Float64("msg_per_sec", float64(parser.Total())/elapsed.Seconds()).
		Dur("elapsed", elapsed).
		Msg("session decoded")
	for typ, n := range parser.Counts() {
		logger.Debug().Str("type", string(rune(typ))).Uint64("count", n).Msg("message type")
	}

	if err := source.WriteFile(outPath, rows, rowGroup); err != nil {
		return err
	}
	logger.Info().Str("out", outPath).Int("rows", len(rows)).Msg("parquet written")
	return nil
}
