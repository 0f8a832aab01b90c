package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxVehicleTextLen = 100
	maxPostalCodeLen  = 10
	minVehicleYear    = 1900
)

// VehicleInput carries the raw vehicle fields submitted by the agent.
type VehicleInput struct {
	Plate      string
	Make       string
	Model      string
	Version    string
	Year       int
	Fuel       string
	PostalCode string
	Usage      string
}

// Normalize validates the input and returns it with the plate and fuel
// canonicalized. now bounds the accepted model year (current year + 1).
func (in VehicleInput) Normalize(now time.Time) (VehicleInput, error) {
	plate, err := entities.NormalizePlate(in.Plate)
	if err != nil {
		return VehicleInput{}, asValidationError(err)
	}
	in.Plate = plate

	for _, f := range []struct {
		field string
		value *string
	}{
		{"marca", &in.Make},
		{"modelo", &in.Model},
		{"version", &in.Version},
	} {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return VehicleInput{}, newValidationError(f.field, fmt.Sprintf("El campo %s es requerido", f.field))
		}
		if utf8.RuneCountInString(*f.value) > maxVehicleTextLen {
			return VehicleInput{}, newValidationError(f.field, fmt.Sprintf("El campo %s no puede superar %d caracteres", f.field, maxVehicleTextLen))
		}
	}

	if maxYear := now.Year() + 1; in.Year < minVehicleYear || in.Year > maxYear {
		return VehicleInput{}, newValidationError("year", fmt.Sprintf("El año debe estar entre %d y %d", minVehicleYear, maxYear))
	}

	if strings.TrimSpace(in.Fuel) != "" {
		fuel, err := entities.ParseFuel(in.Fuel)
		if err != nil {
			return VehicleInput{}, newValidationError("combustible", "Combustible inválido (nafta, diesel, gnc, electrico, hibrido)")
		}
		in.Fuel = string(fuel)
	} else {
		in.Fuel = ""
	}

	in.PostalCode = strings.TrimSpace(in.PostalCode)
	if utf8.RuneCountInString(in.PostalCode) > maxPostalCodeLen {
		return VehicleInput{}, newValidationError("codigo_postal", fmt.Sprintf("El código postal no puede superar %d caracteres", maxPostalCodeLen))
	}

	usage, err := entities.ParseVehicleUsage(in.Usage)
	if err != nil {
		return VehicleInput{}, newValidationError("uso", "Uso inválido (particular, comercial, taxi_remis, uber)")
	}
	in.Usage = string(usage)

	return in, nil
}

// VehicleResolver finds or creates vehicles by normalized plate and applies
// the restricted revision policy to vehicles that already exist.
type VehicleResolver struct {
	vehicles interfaces.IVehicleRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewVehicleResolver(vehicles interfaces.IVehicleRepository, logger *zap.Logger) *VehicleResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VehicleResolver{
		vehicles: vehicles,
		logger:   logger.Named("vehicle.resolver"),
		now:      utcNow,
	}
}

// Resolve returns the vehicle registered under in.Plate, creating it for
// customer when absent. The bool reports whether the vehicle was created.
// An existing vehicle is returned exactly as stored.
func (r *VehicleResolver) Resolve(ctx context.Context, customer entities.Customer, in VehicleInput) (entities.Vehicle, bool, error) {
	now := r.now()
	in, err := in.Normalize(now)
	if err != nil {
		return entities.Vehicle{}, false, err
	}

	existing, err := r.vehicles.FindByPlate(ctx, in.Plate)
	if err != nil {
		return entities.Vehicle{}, false, err
	}
	if existing.ID != "" {
		return existing, false, nil
	}

	v := entities.Vehicle{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Plate:      in.Plate,
		Make:       in.Make,
		Model:      in.Model,
		Version:    in.Version,
		Year:       in.Year,
		Fuel:       entities.Fuel(in.Fuel),
		Usage:      entities.VehicleUsage(in.Usage),
		PostalCode: in.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.create(ctx, v)
}

// ResolvePlate finds or creates a bare vehicle from a plate identifier. An
// unowned vehicle is assigned to customer.
func (r *VehicleResolver) ResolvePlate(ctx context.Context, customer entities.Customer, plate string) (entities.Vehicle, bool, error) {
	plate, err := entities.NormalizePlate(plate)
	if err != nil {
		return entities.Vehicle{}, false, asValidationError(err)
	}

	existing, err := r.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return entities.Vehicle{}, false, err
	}
	if existing.ID != "" {
		if existing.CustomerID != "" || customer.ID == "" {
			return existing, false, nil
		}
		claimed, err := r.vehicles.Revise(ctx, existing.ID, entities.VehicleRevision{CustomerID: customer.ID})
		return claimed, false, err
	}

	now := r.now()
	return r.create(ctx, entities.Vehicle{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Plate:      plate,
		Usage:      entities.UsageParticular,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Update revises an existing vehicle: owner and, when supplied, postal code,
// version and fuel. Make, model and year are written only where the stored
// vehicle never recorded them.
func (r *VehicleResolver) Update(ctx context.Context, vehicle entities.Vehicle, customer entities.Customer, in VehicleInput) (entities.Vehicle, error) {
	in, err := in.Normalize(r.now())
	if err != nil {
		return entities.Vehicle{}, err
	}

	rev := entities.VehicleRevision{
		CustomerID: customer.ID,
		PostalCode: in.PostalCode,
		Version:    in.Version,
		Make:       in.Make,
		Model:      in.Model,
		Year:       in.Year,
	}
	if in.Fuel != "" {
		fuel := entities.Fuel(in.Fuel)
		rev.Fuel = &fuel
	}

	updated, err := r.vehicles.Revise(ctx, vehicle.ID, rev)
	if err != nil {
		return entities.Vehicle{}, fmt.Errorf("revise vehicle: %w", err)
	}
	if updated.ID == "" {
		return entities.Vehicle{}, fmt.Errorf("vehicle %s disappeared during revision", vehicle.ID)
	}

	if vehicle.CustomerID != "" && vehicle.CustomerID != customer.ID {
		r.logger.Warn("vehicle ownership transferred",
			zap.String("vehicle_id", vehicle.ID),
			zap.String("patente", vehicle.Plate),
			zap.String("from_customer_id", vehicle.CustomerID),
			zap.String("to_customer_id", customer.ID),
		)
	}
	return updated, nil
}

func (r *VehicleResolver) ListByCustomer(ctx context.Context, customerID string) ([]entities.Vehicle, error) {
	return r.vehicles.ListByCustomer(ctx, customerID)
}

func (r *VehicleResolver) create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, bool, error) {
	created, err := r.vehicles.Create(ctx, v)
	if errors.Is(err, interfaces.ErrDuplicateKey) {
		winner, ferr := r.vehicles.FindByPlate(ctx, v.Plate)
		if ferr != nil {
			return entities.Vehicle{}, false, ferr
		}
		if winner.ID == "" {
			return entities.Vehicle{}, false, fmt.Errorf("vehicle %s missing after duplicate key: %w", v.Plate, err)
		}
		return winner, false, nil
	}
	if err != nil {
		return entities.Vehicle{}, false, fmt.Errorf("create vehicle: %w", err)
	}

	r.logger.Info("vehicle created",
		zap.String("vehicle_id", created.ID),
		zap.String("patente", created.Plate),
		zap.String("customer_id", created.CustomerID),
	)
	return created, true, nil
}
