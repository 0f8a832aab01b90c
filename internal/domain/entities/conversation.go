package entities

import "time"

type ConversationStatus string

const (
	ConversationStatusAnonymous  ConversationStatus = "anonymous"
	ConversationStatusIdentified ConversationStatus = "identified"
	ConversationStatusActive     ConversationStatus = "active"
	ConversationStatusCompleted  ConversationStatus = "completed"
	ConversationStatusAbandoned  ConversationStatus = "abandoned"
)

// Conversation is one external chat thread.
//
// Storage model:
//   - gorm: table conversations, unique(external_conversation_id); pivot conversation_vehicles unique(conversation_id, vehicle_id)
//   - DynamoDB: PK id; unique-key item per external id; GSI customer_id-index; pivot table PK conversation_id + SK vehicle_id
//
// ExternalID is the idempotency key: resolving the same id twice always
// returns the same row.
type Conversation struct {
	ID             string             `json:"id"`
	ExternalID     string             `json:"external_conversation_id"`
	ExternalUserID string             `json:"external_user_id,omitempty"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Status         ConversationStatus `json:"status"`
	LastActivityAt *time.Time         `json:"last_activity_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (c Conversation) HasCustomer() bool {
	return c.CustomerID != ""
}

// ConversationSummary is the short form listed as a customer's history.
type ConversationSummary struct {
	ExternalID   string             `json:"thread_id"`
	Date         time.Time          `json:"date"`
	Status       ConversationStatus `json:"status"`
	VehicleCount int                `json:"vehicle_count"`
}
