package usecase

import (
	"context"
	"errors"
	"time"

	"cotizador_seguros/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultSweepBatch = 100

// QuoteSweeper re-dispatches quotes left pending longer than staleAfter,
// which happens when a dispatch was refused or the process restarted.
type QuoteSweeper struct {
	quotes     interfaces.IQuoteRepository
	dispatcher interfaces.IQuoteDispatcher
	staleAfter time.Duration
	batch      int
	logger     *zap.Logger
	now        func() time.Time
}

func NewQuoteSweeper(quotes interfaces.IQuoteRepository, dispatcher interfaces.IQuoteDispatcher, staleAfter time.Duration, logger *zap.Logger) *QuoteSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteSweeper{
		quotes:     quotes,
		dispatcher: dispatcher,
		staleAfter: staleAfter,
		batch:      defaultSweepBatch,
		logger:     logger.Named("quote.sweeper"),
		now:        utcNow,
	}
}

// Sweep returns how many stale quotes were handed back to the dispatcher.
func (s *QuoteSweeper) Sweep(ctx context.Context) (int, error) {
	stale, err := s.quotes.ListPendingBefore(ctx, s.now().Add(-s.staleAfter), s.batch)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, q := range stale {
		if err := s.dispatcher.Dispatch(ctx, q.ID); err != nil {
			if errors.Is(err, ErrQueueFull) {
				s.logger.Warn("quote queue full, sweep postponed", zap.Int("remaining", len(stale)-dispatched))
				break
			}
			return dispatched, err
		}
		dispatched++
	}

	if dispatched > 0 {
		s.logger.Info("stale pending quotes re-dispatched", zap.Int("count", dispatched))
	}
	return dispatched, nil
}
