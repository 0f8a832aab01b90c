package interfaces

import (
	"context"

	"cotizador_seguros/internal/domain/entities"
)

// IVehicleRepository abstracts persistence for Vehicle.
type IVehicleRepository interface {
	Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (entities.Vehicle, error)
	// Revise applies only the owner/postal code/version/fuel revision.
	Revise(ctx context.Context, id string, rev entities.VehicleRevision) (entities.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entities.Vehicle, error)
}
