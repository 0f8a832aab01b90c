package interfaces

import "time"

// IPipelineMetrics records quote pipeline activity.
type IPipelineMetrics interface {
	QuoteRequested()
	AttemptFinished(outcome string)
	QuoteFinished(status string, elapsed time.Duration)
	QueueDepth(n int)
}
