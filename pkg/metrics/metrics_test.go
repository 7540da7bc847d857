package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorder(t *testing.T) {
	m := New()

	m.ObserveBuild("inventory", 120*time.Millisecond, nil)
	m.ObserveBuild("inventory", 80*time.Millisecond, errors.New("falha"))
	m.ObserveDetailFetch("payments", 10*time.Millisecond, nil)
	m.ObserveDetailFetch("payments", 10*time.Millisecond, nil)
	m.AddRows("payments", "listed", 7)
	m.AddRows("payments", "kept", 3)
	m.ObserveHTTPRequest(http.MethodGet, "/v1/reports/:kind", http.StatusOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("inventory", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("inventory", statusError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.detailFetches.WithLabelValues("payments", statusSuccess)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rows.WithLabelValues("payments", "listed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("payments", "kept")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.buildDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/v1/reports/:kind", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AddRows("inventory", "listed", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `erp_report_rows_total{kind="inventory",stage="listed"} 2`)
	assert.Contains(t, string(body), "go_goroutines")
}
