package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	attemptOutcomeSuccess = "success"
	attemptOutcomeError   = "error"
)

// QuoteWorkerConfig sizes the worker pool and the pricing lifecycle.
type QuoteWorkerConfig struct {
	Policy    RetryPolicy
	Expiry    time.Duration
	Workers   int
	QueueSize int
}

type QuoteWorkerOption func(*QuoteWorker)

func WithSleeper(s Sleeper) QuoteWorkerOption {
	return func(w *QuoteWorker) {
		w.sleep = s
	}
}

func WithWorkerClock(now func() time.Time) QuoteWorkerOption {
	return func(w *QuoteWorker) {
		w.now = now
	}
}

func WithWorkerMetrics(m interfaces.IPipelineMetrics) QuoteWorkerOption {
	return func(w *QuoteWorker) {
		w.metrics = metricsOrNop(m)
	}
}

// QuoteWorker prices pending quotes asynchronously. Each task receives only
// a quote id and reads the frozen snapshot from storage.
type QuoteWorker struct {
	quotes    interfaces.IQuoteRepository
	simulator interfaces.IMarketSimulator
	notifier  interfaces.IQuoteNotifier
	metrics   interfaces.IPipelineMetrics
	cfg       QuoteWorkerConfig
	logger    *zap.Logger
	sleep     Sleeper
	now       func() time.Time

	queue chan string
	done  chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
	started  bool
	stopped  bool
}

var _ interfaces.IQuoteDispatcher = (*QuoteWorker)(nil)

func NewQuoteWorker(
	quotes interfaces.IQuoteRepository,
	simulator interfaces.IMarketSimulator,
	notifier interfaces.IQuoteNotifier,
	cfg QuoteWorkerConfig,
	logger *zap.Logger,
	opts ...QuoteWorkerOption,
) *QuoteWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Policy.MaxAttempts <= 0 {
		cfg.Policy = DefaultRetryPolicy(time.Second)
	}

	w := &QuoteWorker{
		quotes:    quotes,
		simulator: simulator,
		notifier:  notifier,
		metrics:   nopMetrics{},
		cfg:       cfg,
		logger:    logger.Named("quote.worker"),
		sleep:     sleepContext,
		now:       utcNow,
		queue:     make(chan string, cfg.QueueSize),
		done:      make(chan struct{}),
		inflight:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the worker goroutines. Tasks are detached from ctx
// cancellation: a running computation always completes, retries or fails.
func (w *QuoteWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true

	runCtx := context.WithoutCancel(ctx)
	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.loop(runCtx)
	}
	w.logger.Info("quote worker started", zap.Int("workers", w.cfg.Workers), zap.Int("queue_size", w.cfg.QueueSize))
}

// Stop stops accepting tasks and waits for running ones or ctx.
func (w *QuoteWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.done)
	}
	w.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		w.logger.Info("quote worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch enqueues quoteID without blocking. A quote that is already queued
// or running is not enqueued twice.
func (w *QuoteWorker) Dispatch(ctx context.Context, quoteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWorkerStopped
	}
	if _, ok := w.inflight[quoteID]; ok {
		return nil
	}

	select {
	case w.queue <- quoteID:
		w.inflight[quoteID] = struct{}{}
		w.metrics.QueueDepth(len(w.queue))
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *QuoteWorker) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case quoteID := <-w.queue:
			w.metrics.QueueDepth(len(w.queue))
			w.run(ctx, quoteID)
		}
	}
}

func (w *QuoteWorker) run(ctx context.Context, quoteID string) {
	defer func() {
		w.mu.Lock()
		delete(w.inflight, quoteID)
		w.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("quote task panicked", zap.String("quote_id", quoteID), zap.Any("panic", r))
		}
	}()

	if _, err := w.Process(ctx, quoteID); err != nil {
		w.logger.Error("quote task finished with error", zap.String("quote_id", quoteID), zap.Error(err))
	}
}

// Process prices one pending quote under the retry policy. Quotes that are
// no longer pending are skipped. On exhaustion the quote is marked failed
// and the last computation error is returned.
func (w *QuoteWorker) Process(ctx context.Context, quoteID string) (entities.Quote, error) {
	q, err := w.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusPending {
		w.logger.Debug("quote already settled", zap.String("quote_id", q.ID), zap.String("status", string(q.Status)))
		return q, nil
	}

	started := w.now()
	var lastErr *ComputationError
	attempt := 0
	for {
		attempt++
		processed, err := w.attempt(ctx, q)
		if err == nil {
			w.metrics.AttemptFinished(attemptOutcomeSuccess)
			w.metrics.QuoteFinished(string(entities.QuoteStatusProcessed), w.now().Sub(started))
			w.logger.Info("quote processed",
				zap.String("quote_id", q.ID),
				zap.Int("attempt", attempt),
				zap.String("external_ref_id", processed.ExternalRefID),
			)
			w.notify(ctx, processed.ID)
			return processed, nil
		}

		w.metrics.AttemptFinished(attemptOutcomeError)
		lastErr = &ComputationError{QuoteID: q.ID, Attempt: attempt, Err: err}

		decision := w.cfg.Policy.Decide(attempt, err)
		if !decision.Retry {
			break
		}
		w.logger.Warn("quote attempt failed, retrying",
			zap.String("quote_id", q.ID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", decision.Delay),
			zap.Error(err),
		)
		if err := w.sleep(ctx, decision.Delay); err != nil {
			break
		}
	}

	return w.fail(ctx, q, lastErr, started)
}

func (w *QuoteWorker) attempt(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	snapshot, err := w.quotes.GetSnapshot(ctx, q.RiskSnapshotID)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snapshot.ID == "" {
		return entities.Quote{}, Permanent(ErrSnapshotNotFound)
	}

	result, err := w.simulator.GenerateAlternatives(ctx, snapshot)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("market simulator: %w", err)
	}

	saved, err := w.quotes.SaveSimulationResults(ctx, q.ID, result, w.now().Add(w.cfg.Expiry))
	if err != nil {
		return entities.Quote{}, fmt.Errorf("save simulation results: %w", err)
	}
	if saved.ID == "" {
		return entities.Quote{}, Permanent(ErrQuoteNotFound)
	}
	return saved, nil
}

func (w *QuoteWorker) fail(ctx context.Context, q entities.Quote, cause *ComputationError, started time.Time) (entities.Quote, error) {
	reason := cause.Err.Error()
	failed, err := w.quotes.MarkFailed(ctx, q.ID, reason, cause.Attempt, w.now())
	if err != nil {
		w.logger.Error("could not mark quote as failed",
			zap.String("quote_id", q.ID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return entities.Quote{}, errors.Join(cause, err)
	}

	w.metrics.QuoteFinished(string(entities.QuoteStatusFailed), w.now().Sub(started))
	w.logger.Error("quote computation failed",
		zap.String("quote_id", q.ID),
		zap.Int("attempts", cause.Attempt),
		zap.String("reason", reason),
	)
	return failed, cause
}

func (w *QuoteWorker) notify(ctx context.Context, quoteID string) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.Publish(ctx, quoteID); err != nil {
		w.logger.Error("quote ready notification failed", zap.String("quote_id", quoteID), zap.Error(err))
	}
}
