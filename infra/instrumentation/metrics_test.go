package instrumentation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"lobreplay/domain/event"
)

func TestCountersByKind(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveApplied(event.Add)
	m.ObserveApplied(event.Add)
	m.ObserveApplied(event.Cancel)
	m.ObserveUnrecognized()
	m.SetBooks(3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.EventsTotal.WithLabelValues("add")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EventsTotal.WithLabelValues("cancel")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("replace")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.UnrecognizedTotal), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.Books), 0)
}
