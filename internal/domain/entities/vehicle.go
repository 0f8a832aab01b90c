package entities

import (
	"fmt"
	"strings"
	"time"
)

// Fuel is the declared fuel type of a vehicle.
type Fuel string

const (
	FuelNafta     Fuel = "nafta"
	FuelDiesel    Fuel = "diesel"
	FuelGNC       Fuel = "gnc"
	FuelElectrico Fuel = "electrico"
	FuelHibrido   Fuel = "hibrido"
)

var fuels = []Fuel{FuelNafta, FuelDiesel, FuelGNC, FuelElectrico, FuelHibrido}

// ParseFuel is case-insensitive and ignores surrounding whitespace.
func ParseFuel(raw string) (Fuel, error) {
	v := Fuel(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range fuels {
		if v == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("combustible inválido %q (valores: nafta, diesel, gnc, electrico, hibrido)", raw)
}

// VehicleUsage is the declared use of the vehicle, relevant for pricing.
type VehicleUsage string

const (
	UsageParticular VehicleUsage = "particular"
	UsageComercial  VehicleUsage = "comercial"
	UsageTaxiRemis  VehicleUsage = "taxi_remis"
	UsageUber       VehicleUsage = "uber"
)

// ParseVehicleUsage defaults to particular when raw is blank.
func ParseVehicleUsage(raw string) (VehicleUsage, error) {
	v := VehicleUsage(strings.ToLower(strings.TrimSpace(raw)))
	switch v {
	case "":
		return UsageParticular, nil
	case UsageParticular, UsageComercial, UsageTaxiRemis, UsageUber:
		return v, nil
	}
	return "", fmt.Errorf("uso inválido %q", raw)
}

// Vehicle is a physical car identified by its plate.
//
// Storage model:
//   - gorm: table vehicles, unique(patente), index(customer_id), soft delete
//   - DynamoDB: PK id; plate uniqueness through a unique-key item; GSI customer_id-index
//
// Make, model and year are chassis facts: once recorded they are never
// rewritten. Only the owner, postal code, version and fuel may be revised.
type Vehicle struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customer_id,omitempty"`
	Plate      string       `json:"patente"`
	Make       string       `json:"marca,omitempty"`
	Model      string       `json:"modelo,omitempty"`
	Version    string       `json:"version,omitempty"`
	Year       int          `json:"year,omitempty"`
	Fuel       Fuel         `json:"combustible,omitempty"`
	Usage      VehicleUsage `json:"uso"`
	PostalCode string       `json:"codigo_postal,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// IsComplete reports whether every pricing-relevant field is present.
func (v Vehicle) IsComplete() bool {
	return v.Make != "" &&
		v.Model != "" &&
		v.Version != "" &&
		v.Year > 0 &&
		v.Fuel != "" &&
		v.PostalCode != ""
}

// VehicleRevision is the bounded set of fields an existing vehicle accepts.
// Blank PostalCode and Version, and a nil Fuel, leave the stored value
// untouched. Make, Model and Year only fill chassis facts that were never
// recorded, as with a vehicle first registered from its plate alone.
type VehicleRevision struct {
	CustomerID string
	PostalCode string
	Version    string
	Fuel       *Fuel

	Make  string
	Model string
	Year  int
}

// Apply returns v with the revision applied.
func (r VehicleRevision) Apply(v Vehicle) Vehicle {
	v.CustomerID = r.CustomerID
	if r.PostalCode != "" {
		v.PostalCode = r.PostalCode
	}
	if r.Version != "" {
		v.Version = r.Version
	}
	if r.Fuel != nil {
		v.Fuel = *r.Fuel
	}
	if v.Make == "" {
		v.Make = r.Make
	}
	if v.Model == "" {
		v.Model = r.Model
	}
	if v.Year == 0 {
		v.Year = r.Year
	}
	return v
}
