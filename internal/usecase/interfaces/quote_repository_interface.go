package interfaces

import (
	"context"
	"time"

	"cotizador_seguros/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote, its RiskSnapshot and its
// alternatives.
//
// The quote pipeline is the only writer after CreatePending:
//   - CreatePending writes snapshot + pending quote in one transaction
//   - SaveSimulationResults deletes the previous alternatives, updates the
//     header and inserts the new set in one transaction
//   - MarkFailed records the terminal error in the quote metadata
type IQuoteRepository interface {
	CreatePending(ctx context.Context, snapshot entities.RiskSnapshot, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	GetSnapshot(ctx context.Context, id string) (entities.RiskSnapshot, error)
	SaveSimulationResults(ctx context.Context, quoteID string, result entities.SimulationResult, expiresAt time.Time) (entities.Quote, error)
	MarkFailed(ctx context.Context, quoteID string, reason string, attempts int, at time.Time) (entities.Quote, error)
	// ListAlternatives returns the current generation ordered by price ascending.
	ListAlternatives(ctx context.Context, quoteID string) ([]entities.QuoteAlternative, error)
	ListByConversation(ctx context.Context, conversationID string) ([]entities.Quote, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]entities.Quote, error)
}
