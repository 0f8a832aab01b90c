package usecase

import (
	"time"

	"cotizador_seguros/internal/usecase/interfaces"
)

type nopMetrics struct{}

func (nopMetrics) QuoteRequested() {}
func (nopMetrics) AttemptFinished(string) {}
func (nopMetrics) QuoteFinished(string, time.Duration) {}
func (nopMetrics) QueueDepth(int) {}

var _ interfaces.IPipelineMetrics = nopMetrics{}

func metricsOrNop(m interfaces.IPipelineMetrics) interfaces.IPipelineMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
