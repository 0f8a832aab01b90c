package repository

import (
	"context"
	"time"

	"cotizador_seguros/internal/adapter/persistence/models"
	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuoteGormRepository persists quotes, their risk snapshots and their
// alternatives through GORM.
type QuoteGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IQuoteRepository = (*QuoteGormRepository)(nil)

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

func (r *QuoteGormRepository) CreatePending(ctx context.Context, snapshot entities.RiskSnapshot, q entities.Quote) (entities.Quote, error) {
	qm := models.QuoteModelFromDomain(q)
	qm.RiskSnapshotID = snapshot.ID
	qm.Status = string(entities.QuoteStatusPending)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.RiskSnapshotModelFromDomain(snapshot)).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(qm).Error
	})
	if err != nil {
		return entities.Quote{}, translateGormError(err)
	}
	return qm.ToDomain(), nil
}

func (r *QuoteGormRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var m models.QuoteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	return m.ToDomain(), nil
}

func (r *QuoteGormRepository) GetSnapshot(ctx context.Context, id string) (entities.RiskSnapshot, error) {
	var m models.RiskSnapshotModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return entities.RiskSnapshot{}, nil
		}
		return entities.RiskSnapshot{}, err
	}
	return m.ToDomain(), nil
}

// SaveSimulationResults replaces the alternative set and marks the quote
// processed in a single transaction.
func (r *QuoteGormRepository) SaveSimulationResults(ctx context.Context, quoteID string, result entities.SimulationResult, expiresAt time.Time) (entities.Quote, error) {
	now := time.Now().UTC()
	found := true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.QuoteModel
		if err := tx.Where("id = ?", quoteID).First(&current).Error; err != nil {
			if isNotFound(err) {
				found = false
				return nil
			}
			return err
		}

		if err := tx.Where("quote_id = ?", quoteID).Delete(&models.QuoteAlternativeModel{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.QuoteModel{}).Where("id = ?", quoteID).Updates(map[string]any{
			"status":          string(entities.QuoteStatusProcessed),
			"external_ref_id": result.TaskID,
			"raw_response":    string(result.Raw),
			"expires_at":      expiresAt,
			"updated_at":      now,
		}).Error; err != nil {
			return err
		}

		if len(result.Alternatives) == 0 {
			return nil
		}
		rows := make([]models.QuoteAlternativeModel, len(result.Alternatives))
		for i, a := range result.Alternatives {
			if a.ID == "" {
				a.ID = uuid.NewString()
			}
			a.QuoteID = quoteID
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
			rows[i] = models.QuoteAlternativeModelFromDomain(a)
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if !found {
		return entities.Quote{}, nil
	}
	return r.GetByID(ctx, quoteID)
}

func (r *QuoteGormRepository) MarkFailed(ctx context.Context, quoteID string, reason string, attempts int, at time.Time) (entities.Quote, error) {
	current, err := r.GetByID(ctx, quoteID)
	if err != nil || current.ID == "" {
		return entities.Quote{}, err
	}

	meta := current.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	meta[entities.QuoteMetadataError] = reason
	meta[entities.QuoteMetadataAttempts] = attempts
	meta[entities.QuoteMetadataFailedAt] = at.UTC().Format(time.RFC3339)

	if err := r.db.WithContext(ctx).Model(&models.QuoteModel{}).Where("id = ?", quoteID).Updates(map[string]any{
		"status":     string(entities.QuoteStatusFailed),
		"metadata":   models.EncodeMetadata(meta),
		"updated_at": at,
	}).Error; err != nil {
		return entities.Quote{}, err
	}
	return r.GetByID(ctx, quoteID)
}

func (r *QuoteGormRepository) ListAlternatives(ctx context.Context, quoteID string) ([]entities.QuoteAlternative, error) {
	var rows []models.QuoteAlternativeModel
	if err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("precio ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.QuoteAlternative, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *QuoteGormRepository) ListByConversation(ctx context.Context, conversationID string) ([]entities.Quote, error) {
	var rows []models.QuoteModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return quotesToDomain(rows), nil
}

func (r *QuoteGormRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]entities.Quote, error) {
	var rows []models.QuoteModel
	q := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entities.QuoteStatusPending), before).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return quotesToDomain(rows), nil
}

func quotesToDomain(rows []models.QuoteModel) []entities.Quote {
	out := make([]entities.Quote, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
