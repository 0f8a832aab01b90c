package usecase

import (
	"context"
	"strings"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const previousConversationsLimit = 5

// ConversationRegistry owns the conversation side of the identity graph.
type ConversationRegistry struct {
	conversations interfaces.IConversationRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewConversationRegistry(conversations interfaces.IConversationRepository, logger *zap.Logger) *ConversationRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationRegistry{
		conversations: conversations,
		logger:        logger.Named("conversation.registry"),
		now:           utcNow,
	}
}

// FindOrCreate is an upsert keyed by the external conversation id.
func (r *ConversationRegistry) FindOrCreate(ctx context.Context, externalID, externalUserID string) (entities.Conversation, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return entities.Conversation{}, newValidationError("external_conversation_id", "El campo external_conversation_id es requerido")
	}

	now := r.now()
	return r.conversations.FindOrCreate(ctx, entities.Conversation{
		ID:             uuid.NewString(),
		ExternalID:     externalID,
		ExternalUserID: strings.TrimSpace(externalUserID),
		Status:         entities.ConversationStatusAnonymous,
		LastActivityAt: &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (r *ConversationRegistry) GetByExternalID(ctx context.Context, externalID string) (entities.Conversation, error) {
	c, err := r.conversations.GetByExternalID(ctx, strings.TrimSpace(externalID))
	if err != nil {
		return entities.Conversation{}, err
	}
	if c.ID == "" {
		return entities.Conversation{}, ErrConversationNotFound
	}
	return c, nil
}

// LinkCustomer is unconditional: the last identified customer wins.
func (r *ConversationRegistry) LinkCustomer(ctx context.Context, conv entities.Conversation, customerID string) (entities.Conversation, error) {
	if conv.HasCustomer() && conv.CustomerID != customerID {
		r.logger.Warn("conversation ownership changed",
			zap.String("conversation_id", conv.ID),
			zap.String("external_conversation_id", conv.ExternalID),
			zap.String("from_customer_id", conv.CustomerID),
			zap.String("to_customer_id", customerID),
		)
	}

	linked, err := r.conversations.LinkCustomer(ctx, conv.ID, customerID, r.now())
	if err != nil {
		return entities.Conversation{}, err
	}
	if linked.ID == "" {
		return entities.Conversation{}, ErrConversationNotFound
	}
	return linked, nil
}

func (r *ConversationRegistry) AttachVehicle(ctx context.Context, conversationID, vehicleID string, primary bool) error {
	return r.conversations.AttachVehicle(ctx, conversationID, vehicleID, primary)
}

func (r *ConversationRegistry) TouchActivity(ctx context.Context, conversationID string) error {
	return r.conversations.TouchActivity(ctx, conversationID, r.now())
}

// PreviousConversations lists up to five identified conversations of the
// customer, newest first, excluding the current one.
func (r *ConversationRegistry) PreviousConversations(ctx context.Context, customerID, excludeID string) ([]entities.ConversationSummary, error) {
	convs, err := r.conversations.ListByCustomer(ctx, customerID, excludeID, previousConversationsLimit)
	if err != nil {
		return nil, err
	}

	out := make([]entities.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		count, err := r.conversations.CountVehicles(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		date := c.CreatedAt
		if c.LastActivityAt != nil {
			date = *c.LastActivityAt
		}
		out = append(out, entities.ConversationSummary{
			ExternalID:   c.ExternalID,
			Date:         date,
			Status:       c.Status,
			VehicleCount: count,
		})
	}
	return out, nil
}
