package usecase

import (
	"time"

	"cotizador_seguros/internal/domain/entities"

	"github.com/google/uuid"
)

// FreezeRiskSnapshot copies the pricing-relevant fields of customer and
// vehicle into a new snapshot. It does not touch its inputs.
func FreezeRiskSnapshot(id string, customer entities.Customer, vehicle entities.Vehicle, at time.Time) entities.RiskSnapshot {
	usage := vehicle.Usage
	if usage == "" {
		usage = entities.UsageParticular
	}
	return entities.RiskSnapshot{
		ID:         id,
		CustomerID: customer.ID,
		VehicleID:  vehicle.ID,
		Plate:      vehicle.Plate,
		Make:       vehicle.Make,
		Model:      vehicle.Model,
		Version:    vehicle.Version,
		Year:       vehicle.Year,
		Fuel:       vehicle.Fuel,
		Usage:      usage,
		PostalCode: vehicle.PostalCode,
		DNI:        customer.DNI,
		CreatedAt:  at,
	}
}

// RiskSnapshotFactory stamps snapshots with a fresh id and the current time.
type RiskSnapshotFactory struct {
	now   func() time.Time
	newID func() string
}

func NewRiskSnapshotFactory() *RiskSnapshotFactory {
	return &RiskSnapshotFactory{now: utcNow, newID: uuid.NewString}
}

func (f *RiskSnapshotFactory) Freeze(customer entities.Customer, vehicle entities.Vehicle) entities.RiskSnapshot {
	return FreezeRiskSnapshot(f.newID(), customer, vehicle, f.now())
}
