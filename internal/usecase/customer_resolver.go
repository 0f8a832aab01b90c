package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerResolution is the outcome of resolving an identifier.
type CustomerResolution struct {
	Customer entities.Customer
	IsNew    bool
	// WasAnonymous is set when this call promoted the conversation's anonymous customer.
	WasAnonymous bool
}

// Message is the greeting shown to the agent for this resolution.
func (r CustomerResolution) Message() string {
	switch {
	case r.WasAnonymous:
		return fmt.Sprintf("Perfecto %s, ya te he identificado completamente.", r.Customer.DisplayName())
	case r.IsNew:
		return "¡Bienvenido! Eres un cliente nuevo"
	case r.Customer.Name != "":
		return fmt.Sprintf("Bienvenido de vuelta, %s!", r.Customer.Name)
	default:
		return "Cliente identificado correctamente"
	}
}

// CustomerResolver maps a typed identifier onto exactly one Customer,
// creating or promoting one when needed. It never mutates a customer that
// was found by the identifier.
type CustomerResolver struct {
	customers interfaces.ICustomerRepository
	vehicles  interfaces.IVehicleRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewCustomerResolver(customers interfaces.ICustomerRepository, vehicles interfaces.IVehicleRepository, logger *zap.Logger) *CustomerResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerResolver{
		customers: customers,
		vehicles:  vehicles,
		logger:    logger.Named("customer.resolver"),
		now:       utcNow,
	}
}

func (r *CustomerResolver) Get(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}
	c, err := r.customers.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

// Resolve finds the customer for identifier in the context of conv.
//
//  1. an existing customer owning the identifier is returned unchanged
//  2. otherwise an anonymous customer already linked to conv is promoted
//     (or reused as-is when the identifier is a plate)
//  3. otherwise a new customer is created; plates yield anonymous customers
func (r *CustomerResolver) Resolve(ctx context.Context, conv entities.Conversation, identifier entities.Identifier) (CustomerResolution, error) {
	existing, err := r.lookup(ctx, identifier)
	if err != nil {
		return CustomerResolution{}, err
	}
	if existing.ID != "" {
		return CustomerResolution{Customer: existing}, nil
	}

	if conv.HasCustomer() {
		res, ok, err := r.fromConversationCustomer(ctx, conv, identifier)
		if err != nil || ok {
			return res, err
		}
	}

	created, err := r.customers.Create(ctx, newCustomerFor(identifier, r.now()))
	if errors.Is(err, interfaces.ErrDuplicateKey) {
		return r.converge(ctx, identifier)
	}
	if err != nil {
		return CustomerResolution{}, fmt.Errorf("create customer: %w", err)
	}

	r.logger.Info("customer created",
		zap.String("customer_id", created.ID),
		zap.String("identifier_type", identifier.Kind.String()),
		zap.Bool("is_anonymous", created.IsAnonymous),
	)
	return CustomerResolution{Customer: created, IsNew: true}, nil
}

func (r *CustomerResolver) fromConversationCustomer(ctx context.Context, conv entities.Conversation, identifier entities.Identifier) (CustomerResolution, bool, error) {
	current, err := r.customers.GetByID(ctx, conv.CustomerID)
	if err != nil {
		return CustomerResolution{}, false, err
	}
	if current.ID == "" || !current.IsAnonymous {
		return CustomerResolution{}, false, nil
	}
	if identifier.Kind == entities.IdentifierPlate {
		return CustomerResolution{Customer: current}, true, nil
	}

	promoted, err := r.customers.CompleteAnonymous(ctx, current.ID, identifier, r.now())
	if errors.Is(err, interfaces.ErrDuplicateKey) {
		res, err := r.converge(ctx, identifier)
		return res, err == nil, err
	}
	if err != nil {
		return CustomerResolution{}, false, fmt.Errorf("promote anonymous customer: %w", err)
	}
	if promoted.ID == "" {
		// promoted concurrently by another request; create a fresh customer instead
		return CustomerResolution{}, false, nil
	}

	r.logger.Info("anonymous customer promoted",
		zap.String("customer_id", promoted.ID),
		zap.String("conversation_id", conv.ID),
		zap.String("identifier_type", identifier.Kind.String()),
	)
	return CustomerResolution{Customer: promoted, WasAnonymous: true}, true, nil
}

// converge re-reads after losing a unique-key race to a concurrent writer.
func (r *CustomerResolver) converge(ctx context.Context, identifier entities.Identifier) (CustomerResolution, error) {
	winner, err := r.lookup(ctx, identifier)
	if err != nil {
		return CustomerResolution{}, err
	}
	if winner.ID == "" {
		return CustomerResolution{}, fmt.Errorf("customer for %s missing after duplicate key: %w", identifier.Kind, interfaces.ErrDuplicateKey)
	}
	return CustomerResolution{Customer: winner}, nil
}

func (r *CustomerResolver) lookup(ctx context.Context, identifier entities.Identifier) (entities.Customer, error) {
	switch identifier.Kind {
	case entities.IdentifierDNI, entities.IdentifierEmail, entities.IdentifierPhone:
		return r.customers.FindByIdentifier(ctx, identifier)
	case entities.IdentifierPlate:
		v, err := r.vehicles.FindByPlate(ctx, identifier.Value)
		if err != nil || v.ID == "" || v.CustomerID == "" {
			return entities.Customer{}, err
		}
		return r.customers.GetByID(ctx, v.CustomerID)
	}
	return entities.Customer{}, fmt.Errorf("unsupported identifier kind %s", identifier.Kind)
}

func newCustomerFor(identifier entities.Identifier, now time.Time) entities.Customer {
	c := entities.Customer{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if identifier.Kind == entities.IdentifierPlate {
		c.IsAnonymous = true
		c.Metadata = map[string]string{
			entities.MetadataInitialIdentifier: "patente",
			entities.MetadataInitialValue:      identifier.Value,
		}
		return c
	}
	c = c.WithIdentifier(identifier)
	completed := now
	c.CompletedAt = &completed
	return c
}
