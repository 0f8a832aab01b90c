package entities

import "time"

// Customer is the canonical identity record behind one or more conversations.
//
// Storage model:
//   - gorm: table customers, unique(dni), unique(email), index(phone), soft delete
//   - DynamoDB: PK id; uniqueness of dni/email through unique-key items; GSI phone-index
//
// Empty strings mean "not provided". A customer created from a plate alone is
// anonymous and carries no legal or contact field until it is promoted.
type Customer struct {
	ID          string            `json:"id"`
	DNI         string            `json:"dni,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Name        string            `json:"name,omitempty"`
	IsAnonymous bool              `json:"is_anonymous"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

const (
	MetadataInitialIdentifier = "initial_identifier"
	MetadataInitialValue      = "initial_value"
)

// HasContactIdentifier reports whether any of dni, email or phone is set.
func (c Customer) HasContactIdentifier() bool {
	return c.DNI != "" || c.Email != "" || c.Phone != ""
}

// DisplayName falls back to the strongest identifier when no name is known.
func (c Customer) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Email != "":
		return c.Email
	case c.DNI != "":
		return c.DNI
	default:
		return c.Phone
	}
}

// WithIdentifier returns a copy of c with the identifier's field set.
// Plates are not customer fields and leave c unchanged.
func (c Customer) WithIdentifier(id Identifier) Customer {
	switch id.Kind {
	case IdentifierDNI:
		c.DNI = id.Value
	case IdentifierEmail:
		c.Email = id.Value
	case IdentifierPhone:
		c.Phone = id.Value
	case IdentifierPlate:
	}
	return c
}
