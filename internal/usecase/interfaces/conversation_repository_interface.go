package interfaces

import (
	"context"
	"time"

	"cotizador_seguros/internal/domain/entities"
)

// IConversationRepository abstracts persistence for Conversation and its
// vehicle pivot.
//
// FindOrCreate must converge on a single row for concurrent callers using the
// same external id; implementations rely on a storage uniqueness constraint.
type IConversationRepository interface {
	FindOrCreate(ctx context.Context, c entities.Conversation) (entities.Conversation, error)
	GetByID(ctx context.Context, id string) (entities.Conversation, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Conversation, error)
	LinkCustomer(ctx context.Context, conversationID, customerID string, at time.Time) (entities.Conversation, error)
	TouchActivity(ctx context.Context, conversationID string, at time.Time) error
	AttachVehicle(ctx context.Context, conversationID, vehicleID string, primary bool) error
	CountVehicles(ctx context.Context, conversationID string) (int, error)
	// ListByCustomer returns newest first, skipping anonymous conversations and excludeID.
	ListByCustomer(ctx context.Context, customerID, excludeID string, limit int) ([]entities.Conversation, error)
}
