package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Pipeline(t *testing.T) {
	m := New()

	m.QuoteRequested()
	m.QuoteRequested()
	m.AttemptFinished("retry")
	m.AttemptFinished("success")
	m.QuoteFinished("processed", 3*time.Second)
	m.QueueDepth(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quoteRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("retry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("processed")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.queueDepth))
	assert.Equal(t, 1, testutil.CollectAndCount(m.computation))
}

func TestMetrics_ToolCalls(t *testing.T) {
	m := New()
	m.ToolCalled("identify_customer", "success")
	m.ToolCalled("identify_customer", "validation_error")
	m.ToolCalled("identify_customer", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("identify_customer", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("identify_customer", "validation_error")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.QuoteRequested()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "quote_requests_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
