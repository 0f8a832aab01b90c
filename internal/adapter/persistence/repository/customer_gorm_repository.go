package repository

import (
	"context"
	"fmt"
	"time"

	"cotizador_seguros/internal/adapter/persistence/models"
	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// CustomerGormRepository persists customers through GORM.
type CustomerGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICustomerRepository = (*CustomerGormRepository)(nil)

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	m := models.CustomerModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Customer{}, translateGormError(err)
	}
	return m.ToDomain(), nil
}

func (r *CustomerGormRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *CustomerGormRepository) FindByIdentifier(ctx context.Context, id entities.Identifier) (entities.Customer, error) {
	q := r.db.WithContext(ctx)
	switch id.Kind {
	case entities.IdentifierDNI:
		q = q.Where("dni = ?", id.Value)
	case entities.IdentifierEmail:
		q = q.Where("email = ?", id.Value)
	case entities.IdentifierPhone:
		// phone is not unique; the oldest customer wins
		q = q.Where("phone = ?", id.Value).Order("created_at ASC")
	default:
		return entities.Customer{}, fmt.Errorf("customer lookup by %s is not supported", id.Kind)
	}
	return r.first(q)
}

func (r *CustomerGormRepository) CompleteAnonymous(ctx context.Context, id string, identifier entities.Identifier, at time.Time) (entities.Customer, error) {
	column, err := identifierColumn(identifier.Kind)
	if err != nil {
		return entities.Customer{}, err
	}

	res := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ? AND is_anonymous = ?", id, true).
		Updates(map[string]any{
			column:         identifier.Value,
			"is_anonymous": false,
			"completed_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return entities.Customer{}, translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.Customer{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *CustomerGormRepository) first(q *gorm.DB) (entities.Customer, error) {
	var m models.CustomerModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return entities.Customer{}, nil
		}
		return entities.Customer{}, err
	}
	return m.ToDomain(), nil
}

func identifierColumn(kind entities.IdentifierKind) (string, error) {
	switch kind {
	case entities.IdentifierDNI:
		return "dni", nil
	case entities.IdentifierEmail:
		return "email", nil
	case entities.IdentifierPhone:
		return "phone", nil
	case entities.IdentifierPlate:
	}
	return "", fmt.Errorf("identifier %s is not a customer field", kind)
}
