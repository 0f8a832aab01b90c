package interfaces

import (
	"context"
	"time"

	"cotizador_seguros/internal/domain/entities"
)

// ICustomerRepository abstracts persistence for Customer.
//
// Lookups return the zero Customer (empty ID) when nothing matches.
type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	// FindByIdentifier handles dni, email and phone. Plates resolve through vehicles.
	FindByIdentifier(ctx context.Context, id entities.Identifier) (entities.Customer, error)
	// CompleteAnonymous copies the identifier onto an anonymous customer and
	// clears the anonymous flag. It returns the zero Customer when id is not
	// anonymous anymore.
	CompleteAnonymous(ctx context.Context, id string, identifier entities.Identifier, at time.Time) (entities.Customer, error)
}
