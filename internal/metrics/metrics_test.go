package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New(false)
	m.ObserveRequest("/quote", 200, 15*time.Millisecond)
	m.ObserveRequest("/quote", 200, 5*time.Millisecond)
	m.ObserveRequest("/quote", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/quote", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/quote", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestQuoteAndDegradedCounters(t *testing.T) {
	m := New(false)
	m.QuoteComputed("bundle")
	m.QuoteComputed("bundle")
	m.DegradedLookup("unknown_add_on")

	want := `
# HELP studio_quote_quotes_total Quotes computed by service type.
# TYPE studio_quote_quotes_total counter
studio_quote_quotes_total{service="bundle"} 2
`
	require.NoError(t, testutil.CollectAndCompare(m.quotes, strings.NewReader(want)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.degraded.WithLabelValues("unknown_add_on")))
}

func TestGatherFamilies(t *testing.T) {
	m := New(false)
	m.ObserveRequest("/catalog", 200, time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}
	require.Contains(t, byName, "studio_quote_requests_total")
	assert.Equal(t, dto.MetricType_COUNTER, byName["studio_quote_requests_total"].GetType())
	require.Contains(t, byName, "studio_quote_request_duration_seconds")
	assert.Equal(t, dto.MetricType_HISTOGRAM, byName["studio_quote_request_duration_seconds"].GetType())
	assert.NotContains(t, byName, "go_goroutines")
}

func TestHandlerServesExposition(t *testing.T) {
	m := New(true)
	m.QuoteComputed("mixing")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `studio_quote_quotes_total{service="mixing"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
