package entities

import "time"

// RiskSnapshot freezes the pricing-relevant state of a customer and vehicle
// at quote-request time. It is written once and never updated.
//
// CustomerID and VehicleID are soft links: the referenced rows may be edited
// or retired later without affecting the snapshot.
type RiskSnapshot struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customer_id,omitempty"`
	VehicleID  string       `json:"vehicle_id,omitempty"`
	Plate      string       `json:"patente"`
	Make       string       `json:"marca"`
	Model      string       `json:"modelo"`
	Version    string       `json:"version"`
	Year       int          `json:"year"`
	Fuel       Fuel         `json:"combustible"`
	Usage      VehicleUsage `json:"uso"`
	PostalCode string       `json:"codigo_postal"`
	DNI        string       `json:"dni,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
