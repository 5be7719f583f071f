package service

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"lobreplay/domain/orderbook"
	"lobreplay/infra/source"
	"lobreplay/stats"
)

func syntheticLog(n int) []source.Row {
	rng := rand.New(rand.NewSource(1))
	rows := make([]source.Row, 0, n)
	live := make([]uint64, 0, n)

	for i := 0; i < n; i++ {
		sym := "SYM" + strconv.Itoa(rng.Intn(16))
		switch {
		case len(live) == 0 || rng.Intn(3) == 0:
			id := uint64(i) + 1
			rows = append(rows, source.Row{
				OrderID: id,
				Side:    uint8(rng.Intn(2)),
				Price:   uint32(90 + rng.Intn(20)),
				Qty:     uint32(1 + rng.Intn(100)),
				Kind:    "A",
				Symbol:  sym,
			})
			live = append(live, id)
		case rng.Intn(2) == 0:
			rows = append(rows, source.Row{
				OrderID: live[rng.Intn(len(live))],
				Qty:     uint32(1 + rng.Intn(50)),
				Kind:    "E",
				Symbol:  sym,
			})
		default:
			rows = append(rows, source.Row{
				OrderID: live[rng.Intn(len(live))],
				Kind:    "C",
				Symbol:  sym,
			})
		}
	}
	return rows
}

func BenchmarkReplay(b *testing.B) {
	rows := syntheticLog(100_000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewReplayer(
			orderbook.NewRegistry(),
			stats.NewAggregator(len(rows)),
			nil,
			zerolog.Nop(),
		)
		r.Run(rows)
	}
}
