package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

func TestRecordStockOperation(t *testing.T) {
	m := metrics.New("test")
	m.RecordStockOperation("STOCK_OUT", "ok")
	m.RecordStockOperation("STOCK_OUT", "ok")
	m.RecordStockOperation("STOCK_OUT", "insufficient")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StockOperations.WithLabelValues("STOCK_OUT", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockOperations.WithLabelValues("STOCK_OUT", "insufficient")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordStockOperation("STOCK_IN", "ok")
		m.RecordNotification("publish", "ok")
		m.RecordRateLimit("/x", "allowed")
	})
}

func TestNew_InstanciasIndependientes(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("a")
		metrics.New("a")
	}, "cada instancia usa su propio registry")
}
