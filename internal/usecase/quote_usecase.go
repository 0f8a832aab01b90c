package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteDetails is a quote with its frozen snapshot and current alternatives.
type QuoteDetails struct {
	Quote        entities.Quote
	Status       entities.QuoteStatus
	Snapshot     entities.RiskSnapshot
	Alternatives []entities.QuoteAlternative
}

// IQuoteUseCase exposes the request side of the quote pipeline.
type IQuoteUseCase interface {
	CreatePendingQuote(ctx context.Context, conv entities.Conversation, customer entities.Customer, vehicle entities.Vehicle) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (QuoteDetails, error)
	ListByConversation(ctx context.Context, externalConversationID string) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	quotes        interfaces.IQuoteRepository
	conversations interfaces.IConversationRepository
	dispatcher    interfaces.IQuoteDispatcher
	snapshots     *RiskSnapshotFactory
	metrics       interfaces.IPipelineMetrics
	logger        *zap.Logger
	now           func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	conversations interfaces.IConversationRepository,
	dispatcher interfaces.IQuoteDispatcher,
	metrics interfaces.IPipelineMetrics,
	logger *zap.Logger,
) *QuoteUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteUseCase{
		quotes:        quotes,
		conversations: conversations,
		dispatcher:    dispatcher,
		snapshots:     NewRiskSnapshotFactory(),
		metrics:       metricsOrNop(metrics),
		logger:        logger.Named("quote.usecase"),
		now:           utcNow,
	}
}

// CreatePendingQuote freezes the risk snapshot and stores it together with a
// pending quote, then hands the quote to the worker. It does not wait for
// pricing. A failed dispatch leaves the quote pending for the sweeper.
func (u *QuoteUseCase) CreatePendingQuote(ctx context.Context, conv entities.Conversation, customer entities.Customer, vehicle entities.Vehicle) (entities.Quote, error) {
	if conv.ID == "" || customer.ID == "" || vehicle.ID == "" {
		return entities.Quote{}, fmt.Errorf("create pending quote: conversation, customer and vehicle are required")
	}

	snapshot := u.snapshots.Freeze(customer, vehicle)
	now := u.now()
	q := entities.Quote{
		ID:             uuid.NewString(),
		RiskSnapshotID: snapshot.ID,
		ConversationID: conv.ID,
		Status:         entities.QuoteStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.quotes.CreatePending(ctx, snapshot, q)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("create pending quote: %w", err)
	}
	u.metrics.QuoteRequested()
	u.logger.Info("pending quote created",
		zap.String("quote_id", created.ID),
		zap.String("risk_snapshot_id", snapshot.ID),
		zap.String("conversation_id", conv.ID),
		zap.String("vehicle_id", vehicle.ID),
	)

	if err := u.dispatcher.Dispatch(ctx, created.ID); err != nil {
		u.logger.Warn("quote dispatch deferred to sweeper",
			zap.String("quote_id", created.ID),
			zap.Error(err),
		)
	}
	return created, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (QuoteDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return QuoteDetails{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return QuoteDetails{}, err
	}
	if q.ID == "" {
		return QuoteDetails{}, ErrQuoteNotFound
	}

	snapshot, err := u.quotes.GetSnapshot(ctx, q.RiskSnapshotID)
	if err != nil {
		return QuoteDetails{}, err
	}
	if snapshot.ID == "" {
		return QuoteDetails{}, fmt.Errorf("quote %s: %w", q.ID, ErrSnapshotNotFound)
	}
	alternatives, err := u.quotes.ListAlternatives(ctx, q.ID)
	if err != nil {
		return QuoteDetails{}, err
	}

	return QuoteDetails{
		Quote:        q,
		Status:       q.EffectiveStatus(u.now()),
		Snapshot:     snapshot,
		Alternatives: alternatives,
	}, nil
}

func (u *QuoteUseCase) ListByConversation(ctx context.Context, externalConversationID string) ([]entities.Quote, error) {
	externalConversationID = strings.TrimSpace(externalConversationID)
	if externalConversationID == "" {
		return nil, newValidationError("external_conversation_id", "El campo external_conversation_id es requerido")
	}

	conv, err := u.conversations.GetByExternalID(ctx, externalConversationID)
	if err != nil {
		return nil, err
	}
	if conv.ID == "" {
		return nil, ErrConversationNotFound
	}

	quotes, err := u.quotes.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i := range quotes {
		quotes[i].Status = quotes[i].EffectiveStatus(now)
	}
	return quotes, nil
}
