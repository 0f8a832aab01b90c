package metrics

import (
	"net/http"
	"time"

	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricQuoteRequestsTotal  = "quote_requests_total"
	MetricQuoteAttemptsTotal  = "quote_attempts_total"
	MetricQuoteOutcomesTotal  = "quote_outcomes_total"
	MetricQuoteComputeSeconds = "quote_computation_seconds"
	MetricQuoteQueueDepth     = "quote_queue_depth"
	MetricToolCallsTotal      = "tool_calls_total"
)

// Metrics records pipeline and tool activity on its own registry, so tests
// and multiple instances in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	quoteRequests prometheus.Counter
	attempts      *prometheus.CounterVec
	outcomes      *prometheus.CounterVec
	computation   prometheus.Histogram
	queueDepth    prometheus.Gauge
	toolCalls     *prometheus.CounterVec
}

var _ interfaces.IPipelineMetrics = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quoteRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricQuoteRequestsTotal,
			Help: "Pending quotes created.",
		}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricQuoteAttemptsTotal,
			Help: "Quote computation attempts by outcome.",
		}, []string{"outcome"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricQuoteOutcomesTotal,
			Help: "Quotes that reached a terminal status.",
		}, []string{"status"}),
		computation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricQuoteComputeSeconds,
			Help:    "Time from dequeue to terminal status, retries included.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricQuoteQueueDepth,
			Help: "Quote ids waiting for a worker.",
		}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricToolCallsTotal,
			Help: "Agent tool invocations by tool and result.",
		}, []string{"tool", "result"}),
	}

	m.registry.MustRegister(
		m.quoteRequests,
		m.attempts,
		m.outcomes,
		m.computation,
		m.queueDepth,
		m.toolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) QuoteRequested() {
	m.quoteRequests.Inc()
}

func (m *Metrics) AttemptFinished(outcome string) {
	m.attempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) QuoteFinished(status string, elapsed time.Duration) {
	m.outcomes.WithLabelValues(status).Inc()
	m.computation.Observe(elapsed.Seconds())
}

func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// ToolCalled counts one tool invocation. result is "success" or an error code.
func (m *Metrics) ToolCalled(tool, result string) {
	m.toolCalls.WithLabelValues(tool, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
