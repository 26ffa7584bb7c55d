package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/internal/infrastructure/metrics"
)

func TestRegistry_CountsReportsAndFailures(t *testing.T) {
	r := metrics.New()
	r.ReportGenerated("ok", 50*time.Millisecond)
	r.ReportGenerated("ok", 20*time.Millisecond)
	r.ReportGenerated("no_data", 0)
	r.ArtifactFailed("chart")
	r.OrderNotified()

	n, err := testutil.GatherAndCount(r.Gatherer(), "wbbot_reports_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // dos series: ok y no_data

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `wbbot_reports_total{outcome="ok"} 2`)
	assert.Contains(t, string(body), `wbbot_artifact_failures_total{kind="chart"} 1`)
	assert.Contains(t, string(body), `wbbot_orders_notified_total 1`)
}
