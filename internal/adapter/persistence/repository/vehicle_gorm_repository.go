package repository

import (
	"context"
	"time"

	"cotizador_seguros/internal/adapter/persistence/models"
	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// VehicleGormRepository persists vehicles through GORM. The plate unique
// index is the single source of truth for vehicle identity.
type VehicleGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IVehicleRepository = (*VehicleGormRepository)(nil)

func NewVehicleGormRepository(db *gorm.DB) *VehicleGormRepository {
	return &VehicleGormRepository{db: db}
}

func (r *VehicleGormRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	m := models.VehicleModelFromDomain(v)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Vehicle{}, translateGormError(err)
	}
	return m.ToDomain(), nil
}

func (r *VehicleGormRepository) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *VehicleGormRepository) FindByPlate(ctx context.Context, plate string) (entities.Vehicle, error) {
	return r.first(r.db.WithContext(ctx).Where("patente = ?", plate))
}

func (r *VehicleGormRepository) Revise(ctx context.Context, id string, rev entities.VehicleRevision) (entities.Vehicle, error) {
	updates := map[string]any{
		"customer_id": models.NullableString(rev.CustomerID),
		"updated_at":  time.Now().UTC(),
	}
	if rev.PostalCode != "" {
		updates["codigo_postal"] = rev.PostalCode
	}
	if rev.Version != "" {
		updates["version"] = rev.Version
	}
	if rev.Fuel != nil {
		updates["combustible"] = string(*rev.Fuel)
	}
	// chassis facts only fill columns that were never recorded
	if rev.Make != "" {
		updates["marca"] = gorm.Expr("CASE WHEN marca IS NULL OR marca = '' THEN ? ELSE marca END", rev.Make)
	}
	if rev.Model != "" {
		updates["modelo"] = gorm.Expr("CASE WHEN modelo IS NULL OR modelo = '' THEN ? ELSE modelo END", rev.Model)
	}
	if rev.Year > 0 {
		updates["year"] = gorm.Expr("CASE WHEN year IS NULL OR year = 0 THEN ? ELSE year END", rev.Year)
	}

	res := r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return entities.Vehicle{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Vehicle{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *VehicleGormRepository) ListByCustomer(ctx context.Context, customerID string) ([]entities.Vehicle, error) {
	var rows []models.VehicleModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.Vehicle, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *VehicleGormRepository) first(q *gorm.DB) (entities.Vehicle, error) {
	var m models.VehicleModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return entities.Vehicle{}, nil
		}
		return entities.Vehicle{}, err
	}
	return m.ToDomain(), nil
}
