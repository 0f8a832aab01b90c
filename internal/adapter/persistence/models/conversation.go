package models

import (
	"time"

	"cotizador_seguros/internal/domain/entities"
)

// ConversationModel is the GORM model for the conversations table.
type ConversationModel struct {
	ID             string     `gorm:"type:varchar(36);primaryKey"`
	ExternalID     string     `gorm:"column:external_conversation_id;type:varchar(255);uniqueIndex;not null"`
	ExternalUserID string     `gorm:"column:external_user_id;type:varchar(255)"`
	CustomerID     *string    `gorm:"column:customer_id;type:varchar(36);index"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (ConversationModel) TableName() string {
	return "conversations"
}

func (m *ConversationModel) ToDomain() entities.Conversation {
	return entities.Conversation{
		ID:             m.ID,
		ExternalID:     m.ExternalID,
		ExternalUserID: m.ExternalUserID,
		CustomerID:     derefString(m.CustomerID),
		Status:         entities.ConversationStatus(m.Status),
		LastActivityAt: m.LastActivityAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ConversationModelFromDomain(c entities.Conversation) *ConversationModel {
	status := c.Status
	if status == "" {
		status = entities.ConversationStatusAnonymous
	}
	return &ConversationModel{
		ID:             c.ID,
		ExternalID:     c.ExternalID,
		ExternalUserID: c.ExternalUserID,
		CustomerID:     NullableString(c.CustomerID),
		Status:         string(status),
		LastActivityAt: c.LastActivityAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ConversationVehicleModel is the conversation/vehicle pivot. The composite
// primary key makes the pair unique.
type ConversationVehicleModel struct {
	ConversationID string    `gorm:"column:conversation_id;type:varchar(36);primaryKey"`
	VehicleID      string    `gorm:"column:vehicle_id;type:varchar(36);primaryKey"`
	IsPrimary      bool      `gorm:"column:is_primary;not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (ConversationVehicleModel) TableName() string {
	return "conversation_vehicles"
}
