package models

import (
	"encoding/json"
	"time"

	"cotizador_seguros/internal/domain/entities"

	"gorm.io/gorm"
)

// CustomerModel is the GORM model for the customers table.
// dni and email are nullable so the unique indexes only bind present values;
// the indexes skip soft-deleted rows.
type CustomerModel struct {
	ID          string         `gorm:"type:varchar(36);primaryKey"`
	DNI         *string        `gorm:"column:dni;type:varchar(20);uniqueIndex:idx_customers_dni,where:deleted_at IS NULL"`
	Email       *string        `gorm:"type:varchar(255);uniqueIndex:idx_customers_email,where:deleted_at IS NULL"`
	Phone       *string        `gorm:"type:varchar(20);index"`
	Name        string         `gorm:"type:varchar(200)"`
	IsAnonymous bool           `gorm:"column:is_anonymous;not null"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	Metadata    string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

func (m *CustomerModel) ToDomain() entities.Customer {
	c := entities.Customer{
		ID:          m.ID,
		DNI:         derefString(m.DNI),
		Email:       derefString(m.Email),
		Phone:       derefString(m.Phone),
		Name:        m.Name,
		IsAnonymous: m.IsAnonymous,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &c.Metadata)
	}
	return c
}

func CustomerModelFromDomain(c entities.Customer) *CustomerModel {
	m := &CustomerModel{
		ID:          c.ID,
		DNI:         NullableString(c.DNI),
		Email:       NullableString(c.Email),
		Phone:       NullableString(c.Phone),
		Name:        c.Name,
		IsAnonymous: c.IsAnonymous,
		CompletedAt: c.CompletedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if len(c.Metadata) > 0 {
		raw, _ := json.Marshal(c.Metadata)
		m.Metadata = string(raw)
	}
	return m
}

// VehicleModel is the GORM model for the vehicles table. The plate index
// skips soft-deleted rows.
type VehicleModel struct {
	ID         string         `gorm:"type:varchar(36);primaryKey"`
	CustomerID *string        `gorm:"column:customer_id;type:varchar(36);index"`
	Plate      string         `gorm:"column:patente;type:varchar(10);uniqueIndex:idx_vehicles_patente,where:deleted_at IS NULL;not null"`
	Make       string         `gorm:"column:marca;type:varchar(100)"`
	Model      string         `gorm:"column:modelo;type:varchar(100)"`
	Version    string         `gorm:"type:varchar(100)"`
	Year       int            `gorm:"column:year"`
	Fuel       string         `gorm:"column:combustible;type:varchar(20)"`
	Usage      string         `gorm:"column:uso;type:varchar(20);not null"`
	PostalCode string         `gorm:"column:codigo_postal;type:varchar(10)"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (VehicleModel) TableName() string {
	return "vehicles"
}

func (m *VehicleModel) ToDomain() entities.Vehicle {
	return entities.Vehicle{
		ID:         m.ID,
		CustomerID: derefString(m.CustomerID),
		Plate:      m.Plate,
		Make:       m.Make,
		Model:      m.Model,
		Version:    m.Version,
		Year:       m.Year,
		Fuel:       entities.Fuel(m.Fuel),
		Usage:      entities.VehicleUsage(m.Usage),
		PostalCode: m.PostalCode,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func VehicleModelFromDomain(v entities.Vehicle) *VehicleModel {
	usage := v.Usage
	if usage == "" {
		usage = entities.UsageParticular
	}
	return &VehicleModel{
		ID:         v.ID,
		CustomerID: NullableString(v.CustomerID),
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Version:    v.Version,
		Year:       v.Year,
		Fuel:       string(v.Fuel),
		Usage:      string(usage),
		PostalCode: v.PostalCode,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// NullableString maps the empty string to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
