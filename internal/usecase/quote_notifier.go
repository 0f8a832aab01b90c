package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const DefaultChannelPrefix = "chat."

// ConversationChannel is the channel that carries events for one conversation.
func ConversationChannel(prefix, externalConversationID string) string {
	return prefix + externalConversationID
}

// BuildQuoteReadyEvent summarizes a processed quote for the agent.
func BuildQuoteReadyEvent(q entities.Quote, alternatives int) entities.QuoteReadyEvent {
	return entities.QuoteReadyEvent{
		Type:                entities.QuoteReadyType,
		QuoteID:             q.ID,
		Summary:             fmt.Sprintf("%d opciones", alternatives),
		RequiresAIInjection: true,
		AIPayload: entities.QuoteReadyAIData{
			Event:  entities.QuotesReceivedEvent,
			Source: entities.QuoteEventSourceName,
			Data:   q.RawResponse,
		},
	}
}

// QuoteNotifier publishes the quote-ready event on the owning conversation's
// channel. It refuses quotes whose alternatives are not persisted yet.
type QuoteNotifier struct {
	quotes        interfaces.IQuoteRepository
	conversations interfaces.IConversationRepository
	publisher     interfaces.IEventPublisher
	channelPrefix string
	logger        *zap.Logger
}

var _ interfaces.IQuoteNotifier = (*QuoteNotifier)(nil)

func NewQuoteNotifier(
	quotes interfaces.IQuoteRepository,
	conversations interfaces.IConversationRepository,
	publisher interfaces.IEventPublisher,
	channelPrefix string,
	logger *zap.Logger,
) *QuoteNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if channelPrefix == "" {
		channelPrefix = DefaultChannelPrefix
	}
	return &QuoteNotifier{
		quotes:        quotes,
		conversations: conversations,
		publisher:     publisher,
		channelPrefix: channelPrefix,
		logger:        logger.Named("quote.notifier"),
	}
}

func (n *QuoteNotifier) Publish(ctx context.Context, quoteID string) error {
	q, err := n.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if q.ID == "" {
		return ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusProcessed {
		return fmt.Errorf("quote %s is %s: %w", q.ID, q.Status, ErrQuoteNotReady)
	}

	alternatives, err := n.quotes.ListAlternatives(ctx, q.ID)
	if err != nil {
		return err
	}
	conv, err := n.conversations.GetByID(ctx, q.ConversationID)
	if err != nil {
		return err
	}
	if conv.ID == "" {
		return ErrConversationNotFound
	}

	event, err := json.Marshal(BuildQuoteReadyEvent(q, len(alternatives)))
	if err != nil {
		return fmt.Errorf("marshal quote ready event: %w", err)
	}
	channel := ConversationChannel(n.channelPrefix, conv.ExternalID)
	envelope, err := json.Marshal(entities.EventEnvelope{
		Event:   entities.QuoteReadyEventName,
		Channel: channel,
		Payload: event,
	})
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	if err := n.publisher.Publish(ctx, channel, envelope); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	n.logger.Info("quote ready event published",
		zap.String("quote_id", q.ID),
		zap.String("channel", channel),
		zap.Int("alternatives", len(alternatives)),
	)
	return nil
}
