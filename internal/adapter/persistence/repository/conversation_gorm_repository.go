package repository

import (
	"context"
	"time"

	"cotizador_seguros/internal/adapter/persistence/models"
	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationGormRepository persists conversations and the
// conversation/vehicle pivot through GORM.
type ConversationGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IConversationRepository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

// FindOrCreate inserts c unless its external id already exists and returns
// the stored row either way.
func (r *ConversationGormRepository) FindOrCreate(ctx context.Context, c entities.Conversation) (entities.Conversation, error) {
	m := models.ConversationModelFromDomain(c)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_conversation_id"}},
			DoNothing: true,
		}).
		Create(m).Error; err != nil {
		return entities.Conversation{}, translateGormError(err)
	}
	return r.GetByExternalID(ctx, c.ExternalID)
}

func (r *ConversationGormRepository) GetByID(ctx context.Context, id string) (entities.Conversation, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *ConversationGormRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Conversation, error) {
	return r.first(r.db.WithContext(ctx).Where("external_conversation_id = ?", externalID))
}

func (r *ConversationGormRepository) LinkCustomer(ctx context.Context, conversationID, customerID string, at time.Time) (entities.Conversation, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Updates(map[string]any{
			"customer_id": customerID,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				string(entities.ConversationStatusAnonymous), string(entities.ConversationStatusIdentified)),
			"last_activity_at": at,
			"updated_at":       at,
		})
	if res.Error != nil {
		return entities.Conversation{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Conversation{}, nil
	}
	return r.GetByID(ctx, conversationID)
}

func (r *ConversationGormRepository) TouchActivity(ctx context.Context, conversationID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Updates(map[string]any{"last_activity_at": at, "updated_at": at}).Error
}

// AttachVehicle is idempotent on the pair. Marking a vehicle primary clears
// the flag on the conversation's other vehicles.
func (r *ConversationGormRepository) AttachVehicle(ctx context.Context, conversationID, vehicleID string, primary bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if primary {
			if err := tx.Model(&models.ConversationVehicleModel{}).
				Where("conversation_id = ? AND vehicle_id <> ?", conversationID, vehicleID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}

		link := models.ConversationVehicleModel{
			ConversationID: conversationID,
			VehicleID:      vehicleID,
			IsPrimary:      primary,
			CreatedAt:      time.Now().UTC(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "vehicle_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_primary"}),
		}).Create(&link).Error
	})
}

func (r *ConversationGormRepository) CountVehicles(ctx context.Context, conversationID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConversationVehicleModel{}).
		Where("conversation_id = ?", conversationID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *ConversationGormRepository) ListByCustomer(ctx context.Context, customerID, excludeID string, limit int) ([]entities.Conversation, error) {
	var rows []models.ConversationModel
	q := r.db.WithContext(ctx).
		Where("customer_id = ? AND status <> ?", customerID, string(entities.ConversationStatusAnonymous))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("COALESCE(last_activity_at, created_at) DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.Conversation, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *ConversationGormRepository) first(q *gorm.DB) (entities.Conversation, error) {
	var m models.ConversationModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return entities.Conversation{}, nil
		}
		return entities.Conversation{}, err
	}
	return m.ToDomain(), nil
}
